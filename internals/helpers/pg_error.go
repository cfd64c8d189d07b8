package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// kode SQLSTATE yang dipetakan
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MapPGError: error constraint DB → (status, pesan). ok=false berarti bukan error constraint.
func MapPGError(err error) (int, string, bool) {
	if err == nil {
		return 0, "", false
	}
	code := ""

	// pgx
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		code = pgxErr.Code
	}
	// lib/pq
	var pqErr *pq.Error
	if code == "" && errors.As(err, &pqErr) {
		code = string(pqErr.Code)
	}
	if code == "" {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			code = pgUniqueViolation
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			code = pgForeignKeyViolation
		// sqlite (test): cek substring
		case strings.Contains(err.Error(), "UNIQUE constraint failed"):
			code = pgUniqueViolation
		case strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
			code = pgForeignKeyViolation
		}
	}

	switch code {
	case pgUniqueViolation:
		return fiber.StatusConflict, "Data duplikat (unique violation).", true
	case pgForeignKeyViolation:
		return fiber.StatusBadRequest, "Referensi tidak ditemukan (FK violation).", true
	case pgCheckViolation:
		return fiber.StatusBadRequest, "Data melanggar constraint.", true
	}
	return 0, "", false
}
