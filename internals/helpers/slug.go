package helper

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

const DefaultSlugMaxLen = 160

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify: teks bebas → [a-z0-9-], diakritik dibuang ("Masjid Al-Ikhlâs" → "masjid-al-ikhlas").
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = reNonAlnum.ReplaceAllString(string(buf), "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxLen {
		s = strings.Trim(string([]rune(s)[:maxLen]), "-")
	}
	return s
}

type SlugOptions struct {
	Table       string
	SlugColumn  string
	MaxLen      int
	DefaultBase string // fallback kalau base kosong setelah dinormalisasi
}

// GenerateUniqueSlug: coba base, lalu base-2, base-3, ... (case-insensitive).
func GenerateUniqueSlug(ctx context.Context, db *gorm.DB, opts SlugOptions, base string) (string, error) {
	if opts.Table == "" || opts.SlugColumn == "" {
		return "", errors.New("slug options: table/slug column required")
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLen
	}

	base = Slugify(base, maxLen)
	if base == "" {
		base = Slugify(opts.DefaultBase, maxLen)
	}
	if base == "" {
		base = "item"
	}

	for i := 1; i < 10000; i++ {
		candidate := base
		if i > 1 {
			suf := fmt.Sprintf("-%d", i)
			if len(candidate)+len(suf) > maxLen {
				candidate = strings.Trim(candidate[:maxLen-len(suf)], "-")
			}
			candidate += suf
		}

		var cnt int64
		if err := db.WithContext(ctx).Table(opts.Table).
			Where(fmt.Sprintf("lower(%s) = lower(?)", opts.SlugColumn), candidate).
			Count(&cnt).Error; err != nil {
			return "", err
		}
		if cnt == 0 {
			return candidate, nil
		}
	}
	return "", errors.New("failed to generate unique slug after many attempts")
}
