package controller

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/databases/dbtest"
	"zakatconnect_backend/internals/features/mosques/mosque_admins/model"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
	"zakatconnect_backend/internals/helpers/auth/authtest"
)

func newApp(db *gorm.DB, u helpersAuth.CurrentUser) *fiber.App {
	ctrl := NewMosqueAdminController(db, nil)
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(authtest.As(u))
	app.Post("/mosque-admins", ctrl.AddAdmin)
	app.Get("/mosque-admins", ctrl.GetAdminsByMosque)
	app.Put("/mosque-admins/revoke", ctrl.RevokeAdmin)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	res, err := app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

func link(mosqueID, userID uuid.UUID) string {
	return `{"mosque_id":"` + mosqueID.String() + `","user_id":"` + userID.String() + `"}`
}

func TestAddAdmin_ConflictAndReactivate(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	clerk := dbtest.SeedUser(t, db, "clerk@alfalah.id", "rahasia123", constants.RoleClerk)
	app := newApp(db, authtest.Admin(mosqueID))

	code, body := do(t, app, http.MethodPost, "/mosque-admins", link(mosqueID, clerk.ID))
	require.Equal(t, fiber.StatusCreated, code, string(body))

	code, _ = do(t, app, http.MethodPost, "/mosque-admins", link(mosqueID, clerk.ID))
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = do(t, app, http.MethodPut, "/mosque-admins/revoke", link(mosqueID, clerk.ID))
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = do(t, app, http.MethodPut, "/mosque-admins/revoke", link(mosqueID, clerk.ID))
	assert.Equal(t, fiber.StatusNotFound, code)

	// tautan lama diaktifkan lagi, bukan baris baru
	code, body = do(t, app, http.MethodPost, "/mosque-admins", link(mosqueID, clerk.ID))
	require.Equal(t, fiber.StatusCreated, code, string(body))

	var rows []model.MosqueAdminModel
	require.NoError(t, db.Where("user_id = ?", clerk.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsActive)
}

func TestAddAdmin_Rejections(t *testing.T) {
	db := dbtest.New(t)
	own := dbtest.SeedMosque(t, db, "alfalah")
	foreign := dbtest.SeedMosque(t, db, "annur")
	clerk := dbtest.SeedUser(t, db, "clerk@alfalah.id", "rahasia123", constants.RoleClerk)
	root := dbtest.SeedUser(t, db, "root@zakat.id", "rahasia123", constants.RoleSuperAdmin)
	app := newApp(db, authtest.Admin(own))

	code, _ := do(t, app, http.MethodPost, "/mosque-admins", link(foreign, clerk.ID))
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = do(t, app, http.MethodPost, "/mosque-admins", link(own, uuid.New()))
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = do(t, app, http.MethodPost, "/mosque-admins", link(own, root.ID))
	assert.Equal(t, fiber.StatusBadRequest, code)

	var count int64
	require.NoError(t, db.Model(&model.MosqueAdminModel{}).Count(&count).Error)
	assert.Zero(t, count)
}
