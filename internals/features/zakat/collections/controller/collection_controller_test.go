package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/databases/dbtest"
	"zakatconnect_backend/internals/features/zakat/collections/model"
	giverModel "zakatconnect_backend/internals/features/zakat/givers/model"
	productTypeModel "zakatconnect_backend/internals/features/zakat/product_types/model"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
	"zakatconnect_backend/internals/helpers/auth/authtest"
	"zakatconnect_backend/internals/helpers/dbtime"
	"zakatconnect_backend/internals/helpers/events"
)

type recorder struct {
	mu  sync.Mutex
	evs []events.Event
}

func (r *recorder) Publish(_ context.Context, evs ...events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evs = append(r.evs, evs...)
}

type listResp struct {
	Data []struct {
		ID    string          `json:"id"`
		Type  string          `json:"type"`
		Value decimal.Decimal `json:"value"`
	} `json:"data"`
	Pagination helper.Pagination `json:"pagination"`
}

func newApp(db *gorm.DB, pub events.Publisher, u helpersAuth.CurrentUser) *fiber.App {
	ctrl := NewCollectionController(db, pub, nil)
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(authtest.As(u))
	app.Get("/collections", ctrl.List)
	app.Get("/collections/:id", ctrl.Get)
	app.Post("/collections", ctrl.Create)
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

func TestCreateCollection_Validation(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	app := newApp(db, nil, authtest.Clerk(mosqueID))

	cases := map[string]string{
		"unknown type":         `{"type":"gold","amount":10}`,
		"zero cash":            `{"type":"cash","amount":0}`,
		"negative in kind":     `{"type":"in_kind","amount":-2}`,
		"cash with product":    `{"type":"cash","amount":10,"product_type_id":"` + uuid.NewString() + `"}`,
		"bad date":             `{"type":"cash","amount":10,"collection_date":"31/12/2024"}`,
		"unknown product type": `{"type":"in_kind","amount":3,"product_type_id":"` + uuid.NewString() + `"}`,
		"unknown giver":        `{"type":"cash","amount":10,"giver_id":"` + uuid.NewString() + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			code, _ := do(t, app, http.MethodPost, "/collections", body)
			assert.Equal(t, fiber.StatusUnprocessableEntity, code)
		})
	}

	var count int64
	require.NoError(t, db.Model(&model.CollectionModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateCollection_InKindValueAndEvent(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	rice := productTypeModel.ProductTypeModel{Name: "Beras", Unit: "kg", Price: decimal.NewFromInt(15000)}
	require.NoError(t, db.Create(&rice).Error)
	mid := mosqueID
	giver := giverModel.GiverModel{MosqueID: &mid, Name: "Hamba Allah"}
	require.NoError(t, db.Create(&giver).Error)

	pub := &recorder{}
	app := newApp(db, pub, authtest.Clerk(mosqueID))

	code, body := do(t, app, http.MethodPost, "/collections",
		`{"type":"in_kind","amount":2.5,"product_type_id":"`+rice.ID.String()+`","giver_id":"`+giver.ID.String()+`","collection_date":"2024-03-10"}`)
	require.Equal(t, fiber.StatusCreated, code, string(body))

	var out struct {
		Data struct {
			Value          decimal.Decimal `json:"value"`
			CollectionDate string          `json:"collection_date"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, decimal.NewFromInt(37500).Equal(out.Data.Value))
	assert.Equal(t, "2024-03-10", out.Data.CollectionDate)

	require.Len(t, pub.evs, 1)
	assert.Equal(t, events.TopicCollections, pub.evs[0].Type)
	assert.Equal(t, mosqueID, pub.evs[0].MosqueID)
}

func TestCreateCollection_ValueMatchesReadPath(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	dates := productTypeModel.ProductTypeModel{Name: "Kurma", Unit: "kg", Price: decimal.NewFromInt(40000)}
	require.NoError(t, db.Create(&dates).Error)
	app := newApp(db, nil, authtest.Clerk(mosqueID))

	code, body := do(t, app, http.MethodPost, "/collections",
		`{"type":"in_kind","amount":1.5,"product_type_id":"`+dates.ID.String()+`"}`)
	require.Equal(t, fiber.StatusCreated, code, string(body))

	var created struct {
		Data struct {
			ID    string          `json:"id"`
			Value decimal.Decimal `json:"value"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.True(t, decimal.NewFromInt(60000).Equal(created.Data.Value))

	code, body = do(t, app, http.MethodGet, "/collections/"+created.Data.ID, "")
	require.Equal(t, fiber.StatusOK, code, string(body))
	var got struct {
		Data struct {
			Value decimal.Decimal `json:"value"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, created.Data.Value.Equal(got.Data.Value))

	code, body = do(t, app, http.MethodGet, "/collections", "")
	require.Equal(t, fiber.StatusOK, code, string(body))
	var list listResp
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Data, 1)
	assert.True(t, created.Data.Value.Equal(list.Data[0].Value))

	// cash tetap amount
	code, body = do(t, app, http.MethodPost, "/collections", `{"type":"cash","amount":25000}`)
	require.Equal(t, fiber.StatusCreated, code, string(body))
	require.NoError(t, json.Unmarshal(body, &created))
	assert.True(t, decimal.NewFromInt(25000).Equal(created.Data.Value))
}

func TestListCollections_ScopeAndFilters(t *testing.T) {
	db := dbtest.New(t)
	mine := dbtest.SeedMosque(t, db, "mine")
	other := dbtest.SeedMosque(t, db, "other")

	seed := func(mosqueID uuid.UUID, typ string, amount int64, day string) {
		on, err := dbtime.ParseDate(day, time.UTC)
		require.NoError(t, err)
		require.NoError(t, db.Create(&model.CollectionModel{MosqueID: mosqueID, Type: typ, Amount: decimal.NewFromInt(amount), CollectedOn: on}).Error)
	}
	seed(mine, model.CollectionTypeCash, 100, "2024-01-05")
	seed(mine, model.CollectionTypeInKind, 3, "2024-02-05")
	seed(mine, model.CollectionTypeCash, 50, "2024-03-05")
	seed(other, model.CollectionTypeCash, 999, "2024-01-05")

	app := newApp(db, nil, authtest.Admin(mine))

	code, body := do(t, app, http.MethodGet, "/collections", "")
	require.Equal(t, fiber.StatusOK, code)
	var all listResp
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Len(t, all.Data, 3)
	assert.EqualValues(t, 3, all.Pagination.Total)

	code, body = do(t, app, http.MethodGet, "/collections?type=cash&from=2024-02-01", "")
	require.Equal(t, fiber.StatusOK, code)
	var filtered listResp
	require.NoError(t, json.Unmarshal(body, &filtered))
	require.Len(t, filtered.Data, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(filtered.Data[0].Value))

	code, _ = do(t, app, http.MethodGet, "/collections?mosque_id="+other.String(), "")
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = do(t, app, http.MethodGet, "/collections?from=2024-03-01&to=2024-01-01", "")
	assert.Equal(t, fiber.StatusBadRequest, code)
}
