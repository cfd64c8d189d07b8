package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapPGError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		ok     bool
	}{
		{"nil", nil, 0, false},
		{"pgx unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), fiber.StatusConflict, true},
		{"pq fk", &pq.Error{Code: "23503"}, fiber.StatusBadRequest, true},
		{"pq check", &pq.Error{Code: "23514"}, fiber.StatusBadRequest, true},
		{"gorm duplicated", gorm.ErrDuplicatedKey, fiber.StatusConflict, true},
		{"sqlite unique", errors.New("UNIQUE constraint failed: beneficiaries.code"), fiber.StatusConflict, true},
		{"other pg", &pgconn.PgError{Code: "40001"}, 0, false},
		{"plain", errors.New("connection reset"), 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg, ok := MapPGError(tc.err)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.status, status)
			if ok {
				assert.NotEmpty(t, msg)
			}
		})
	}
}
