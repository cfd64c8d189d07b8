// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	DateLayout = "2006-01-02"

	// diisi middleware di main (lokasi dari APP_TIMEZONE)
	LocAppLoc = "app_loc"
)

// GetAppLocation: *time.Location dari locals, fallback Asia/Jakarta lalu UTC.
func GetAppLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocAppLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	return time.UTC
}

// UseLocation menaruh loc di locals untuk handler berikutnya.
func UseLocation(loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocAppLoc, loc)
		return c.Next()
	}
}

// DateOnly: tanggal kalender t (di loc) sebagai 00:00 UTC, cocok untuk kolom DATE.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today di loc.
func Today(loc *time.Location) time.Time {
	return DateOnly(time.Now(), loc)
}

// ParseDate menerima "YYYY-MM-DD" atau RFC3339. Kosong → zero time, nil.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOnly(t, loc), nil
	}
	return time.Time{}, fmt.Errorf("format tanggal tidak valid (pakai YYYY-MM-DD): %q", s)
}

// DateRange: ?from=&to= (inklusif). Salah satu boleh kosong.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

func ParseDateRange(c *fiber.Ctx) (DateRange, error) {
	loc := GetAppLocation(c)
	from, err := ParseDate(c.Query("from"), loc)
	if err != nil {
		return DateRange{}, err
	}
	to, err := ParseDate(c.Query("to"), loc)
	if err != nil {
		return DateRange{}, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return DateRange{}, fmt.Errorf("to harus >= from")
	}
	return DateRange{From: from, To: to}, nil
}
