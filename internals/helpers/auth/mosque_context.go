// file: internals/helpers/auth/mosque_context.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
)

// Key Locals (diisi AuthMiddleware)
const (
	LocalUserID       = "user_id"
	LocalUserRole     = "userRole"
	LocalUserEmail    = "user_email"
	LocalMosqueIDs    = "mosque_ids"
	LocalCapabilities = "capabilities"
	LocalRawToken     = "raw_token"
)

var (
	ErrUnauthenticated      = fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	ErrMosqueForbidden      = fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses ke masjid ini.")
	ErrMosqueContextMissing = fiber.NewError(fiber.StatusBadRequest, "mosque_id wajib diisi.")
	ErrMosqueAmbiguous      = fiber.NewError(fiber.StatusBadRequest, "Akun terhubung ke lebih dari satu masjid. Sertakan mosque_id.")
)

// CurrentUser: identitas + role + tenant yang sudah di-resolve dari token.
type CurrentUser struct {
	ID           uuid.UUID
	Email        string
	Role         string
	MosqueIDs    []uuid.UUID
	Capabilities constants.CapabilitySet
}

func (u CurrentUser) Can(c constants.Capability) bool {
	return u.Capabilities.Has(c)
}

func SetCurrentUser(c *fiber.Ctx, u CurrentUser) {
	if u.Capabilities == nil {
		u.Capabilities = constants.Capabilities(u.Role)
	}
	c.Locals(LocalUserID, u.ID.String())
	c.Locals(LocalUserEmail, u.Email)
	c.Locals(LocalUserRole, u.Role)
	c.Locals(LocalMosqueIDs, u.MosqueIDs)
	c.Locals(LocalCapabilities, u.Capabilities)
}

func GetCurrentUser(c *fiber.Ctx) (CurrentUser, bool) {
	idStr, _ := c.Locals(LocalUserID).(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return CurrentUser{}, false
	}
	role, _ := c.Locals(LocalUserRole).(string)
	email, _ := c.Locals(LocalUserEmail).(string)
	ids, _ := c.Locals(LocalMosqueIDs).([]uuid.UUID)
	caps, ok := c.Locals(LocalCapabilities).(constants.CapabilitySet)
	if !ok {
		caps = constants.Capabilities(role)
	}
	return CurrentUser{ID: id, Email: email, Role: role, MosqueIDs: ids, Capabilities: caps}, true
}

/* ============================
   Scope (tenant filter)
============================ */

type Scope struct {
	All       bool
	MosqueIDs []uuid.UUID
}

func ScopeFor(u CurrentUser) Scope {
	if u.Can(constants.CapViewAllMosques) {
		return Scope{All: true}
	}
	return Scope{MosqueIDs: append([]uuid.UUID(nil), u.MosqueIDs...)}
}

func (s Scope) Allows(mosqueID uuid.UUID) bool {
	if s.All {
		return true
	}
	for _, id := range s.MosqueIDs {
		if id == mosqueID {
			return true
		}
	}
	return false
}

// Narrow ke satu masjid; error kalau di luar scope.
func (s Scope) Narrow(mosqueID uuid.UUID) (Scope, error) {
	if !s.Allows(mosqueID) {
		return Scope{}, ErrMosqueForbidden
	}
	return Scope{MosqueIDs: []uuid.UUID{mosqueID}}, nil
}

// Apply menambahkan filter tenant pada column (mis. "mosque_id").
// Postgres pakai "= ANY(array)" supaya bind-nya satu parameter.
func (s Scope) Apply(db *gorm.DB, column string) *gorm.DB {
	if s.All {
		return db
	}
	if len(s.MosqueIDs) == 0 {
		return db.Where("1 = 0")
	}
	if db.Dialector != nil && db.Dialector.Name() == "postgres" {
		ids := make([]string, len(s.MosqueIDs))
		for i, id := range s.MosqueIDs {
			ids[i] = id.String()
		}
		return db.Where(column+" = ANY(?)", pq.Array(ids))
	}
	return db.Where(column+" IN ?", s.MosqueIDs)
}

// ResolveScope: scope dari user + opsional ?mosque_id= untuk mempersempit.
func ResolveScope(c *fiber.Ctx) (Scope, error) {
	u, ok := GetCurrentUser(c)
	if !ok {
		return Scope{}, ErrUnauthenticated
	}
	scope := ScopeFor(u)

	raw := strings.TrimSpace(c.Query("mosque_id"))
	if raw == "" {
		return scope, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return Scope{}, fiber.NewError(fiber.StatusBadRequest, "mosque_id tidak valid")
	}
	return scope.Narrow(id)
}

// ResolveWriteMosque menentukan masjid tujuan untuk operasi tulis.
// requested nil → satu-satunya masjid user (kalau cuma satu).
func ResolveWriteMosque(c *fiber.Ctx, requested *uuid.UUID) (uuid.UUID, error) {
	u, ok := GetCurrentUser(c)
	if !ok {
		return uuid.Nil, ErrUnauthenticated
	}
	scope := ScopeFor(u)

	if requested != nil && *requested != uuid.Nil {
		if !scope.Allows(*requested) {
			return uuid.Nil, ErrMosqueForbidden
		}
		return *requested, nil
	}
	if scope.All {
		return uuid.Nil, ErrMosqueContextMissing
	}
	switch len(scope.MosqueIDs) {
	case 0:
		return uuid.Nil, ErrMosqueForbidden
	case 1:
		return scope.MosqueIDs[0], nil
	default:
		return uuid.Nil, ErrMosqueAmbiguous
	}
}
