// Package authtest: pasang CurrentUser langsung ke context untuk test handler
// tanpa JWT.
package authtest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"zakatconnect_backend/internals/constants"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

func As(u helpersAuth.CurrentUser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		helpersAuth.SetCurrentUser(c, u)
		return c.Next()
	}
}

func SuperAdmin() helpersAuth.CurrentUser {
	return helpersAuth.CurrentUser{ID: uuid.New(), Role: constants.RoleSuperAdmin}
}

func Admin(mosqueIDs ...uuid.UUID) helpersAuth.CurrentUser {
	return helpersAuth.CurrentUser{ID: uuid.New(), Role: constants.RoleAdmin, MosqueIDs: mosqueIDs}
}

func Clerk(mosqueIDs ...uuid.UUID) helpersAuth.CurrentUser {
	return helpersAuth.CurrentUser{ID: uuid.New(), Role: constants.RoleClerk, MosqueIDs: mosqueIDs}
}
