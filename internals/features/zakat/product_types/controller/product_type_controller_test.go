package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/databases/dbtest"
	"zakatconnect_backend/internals/features/zakat/product_types/model"
	helper "zakatconnect_backend/internals/helpers"
)

func newApp(db *gorm.DB) *fiber.App {
	ctrl := NewProductTypeController(db, nil)
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Get("/product-types", ctrl.List)
	app.Post("/product-types", ctrl.Create)
	app.Patch("/product-types/:id", ctrl.Update)
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

func TestCreateProductType(t *testing.T) {
	db := dbtest.New(t)
	app := newApp(db)

	code, body := do(t, app, http.MethodPost, "/product-types", `{"name":"Beras","unit":"kg","price":-1}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Contains(t, string(body), "price")

	code, _ = do(t, app, http.MethodPost, "/product-types", `{"name":"","price":1000}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	var count int64
	require.NoError(t, db.Model(&model.ProductTypeModel{}).Count(&count).Error)
	assert.Zero(t, count)

	code, body = do(t, app, http.MethodPost, "/product-types", `{"name":" Beras ","unit":"kg","price":"15000.456"}`)
	require.Equal(t, fiber.StatusCreated, code, string(body))
	var out struct {
		Data struct {
			ID    uuid.UUID       `json:"id"`
			Name  string          `json:"name"`
			Price decimal.Decimal `json:"price"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Beras", out.Data.Name)
	assert.True(t, decimal.RequireFromString("15000.46").Equal(out.Data.Price), out.Data.Price.String())

	// harga nol boleh
	code, _ = do(t, app, http.MethodPost, "/product-types", `{"name":"Sarung","price":0}`)
	assert.Equal(t, fiber.StatusCreated, code)
}

func TestUpdateProductType(t *testing.T) {
	db := dbtest.New(t)
	rice := model.ProductTypeModel{Name: "Beras", Unit: "kg", Price: decimal.NewFromInt(15000)}
	require.NoError(t, db.Create(&rice).Error)
	app := newApp(db)

	code, _ := do(t, app, http.MethodPatch, "/product-types/"+rice.ID.String(), `{"price":-500}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	code, _ = do(t, app, http.MethodPatch, "/product-types/"+rice.ID.String(), `{}`)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = do(t, app, http.MethodPatch, "/product-types/"+uuid.NewString(), `{"price":100}`)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, body := do(t, app, http.MethodPatch, "/product-types/"+rice.ID.String(), `{"price":16000}`)
	require.Equal(t, fiber.StatusOK, code, string(body))

	var got model.ProductTypeModel
	require.NoError(t, db.First(&got, "id = ?", rice.ID).Error)
	assert.True(t, decimal.NewFromInt(16000).Equal(got.Price))
	assert.Equal(t, "kg", got.Unit)
}
