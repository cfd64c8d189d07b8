package dbtime

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	jkt := time.FixedZone("WIB", 7*3600)

	// 20:00 UTC = 03:00 WIB hari berikutnya
	ts := time.Date(2025, 3, 31, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), DateOnly(ts, jkt))
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), DateOnly(ts, nil))
}

func TestParseDate(t *testing.T) {
	jkt := time.FixedZone("WIB", 7*3600)

	d, err := ParseDate("2025-02-14", jkt)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-02-14T22:30:00Z", jkt)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("  ", jkt)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("14/02/2025", jkt)
	assert.Error(t, err)
}

func TestParseDateRange(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		rng, err := ParseDateRange(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		if rng.IsZero() {
			return c.SendString("all")
		}
		return c.SendString(rng.From.Format(DateLayout) + ".." + rng.To.Format(DateLayout))
	})

	cases := []struct {
		url    string
		status int
	}{
		{"/", fiber.StatusOK},
		{"/?from=2025-01-01&to=2025-01-31", fiber.StatusOK},
		{"/?from=2025-01-01", fiber.StatusOK},
		{"/?from=2025-02-01&to=2025-01-01", fiber.StatusBadRequest},
		{"/?to=besok", fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.url, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.url)
	}
}

func TestUseLocation(t *testing.T) {
	loc := time.FixedZone("WITA", 8*3600)
	app := fiber.New()
	app.Use(UseLocation(loc))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetAppLocation(c).String())
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.NotNil(t, GetAppLocation(nil))
}
