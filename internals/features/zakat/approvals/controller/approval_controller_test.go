package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/databases/dbtest"
	"zakatconnect_backend/internals/features/zakat/approvals/service"
	beneficiaryModel "zakatconnect_backend/internals/features/zakat/beneficiaries/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
	"zakatconnect_backend/internals/helpers/auth/authtest"
)

type statusResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func newApp(t *testing.T, db *gorm.DB, u helpersAuth.CurrentUser) *fiber.App {
	t.Helper()
	ctrl := NewApprovalController(service.New(service.NewGormStore(db), nil, nil), nil)
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(authtest.As(u))
	app.Post("/beneficiaries/update-status", ctrl.UpdateBeneficiaryStatus)
	app.Patch("/distributions/:id/status", ctrl.UpdateDistributionStatus)
	return app
}

func postForm(t *testing.T, app *fiber.App, form url.Values) (int, statusResp) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/beneficiaries/update-status", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	res, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	var out statusResp
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return res.StatusCode, out
}

func TestUpdateBeneficiaryStatus_Approve(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	b := dbtest.SeedBeneficiary(t, db, mosqueID, "Pak Ahmad")
	app := newApp(t, db, authtest.Admin(mosqueID))

	code, out := postForm(t, app, url.Values{"id": {b.ID.String()}, "status": {"approved"}, "amount": {"150000"}})
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, out.Success)

	var got beneficiaryModel.BeneficiaryModel
	require.NoError(t, db.First(&got, "id = ?", b.ID).Error)
	assert.Equal(t, beneficiaryModel.BeneficiaryStatusApproved, got.Status)

	var dists []distributionModel.DistributionModel
	require.NoError(t, db.Where("beneficiary_id = ?", b.ID).Find(&dists).Error)
	require.Len(t, dists, 1)
	assert.Equal(t, "150000.00", dists[0].Amount.StringFixed(2))
}

func TestUpdateBeneficiaryStatus_BadInput(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	b := dbtest.SeedBeneficiary(t, db, mosqueID, "Bu Siti")
	app := newApp(t, db, authtest.Admin(mosqueID))

	cases := []struct {
		name string
		form url.Values
	}{
		{"missing id", url.Values{"status": {"approved"}, "amount": {"10"}}},
		{"missing status", url.Values{"id": {b.ID.String()}}},
		{"approve without amount", url.Values{"id": {b.ID.String()}, "status": {"approved"}}},
		{"negative amount", url.Values{"id": {b.ID.String()}, "status": {"approved"}, "amount": {"-5"}}},
		{"non numeric amount", url.Values{"id": {b.ID.String()}, "status": {"approved"}, "amount": {"abc"}}},
		{"unknown status", url.Values{"id": {b.ID.String()}, "status": {"archived"}}},
		{"malformed id", url.Values{"id": {"not-a-uuid"}, "status": {"rejected"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, out := postForm(t, app, tc.form)
			assert.Equal(t, fiber.StatusBadRequest, code)
			assert.False(t, out.Success)
			assert.NotEmpty(t, out.Message)
		})
	}

	var count int64
	require.NoError(t, db.Model(&distributionModel.DistributionModel{}).Count(&count).Error)
	assert.Zero(t, count)

	var got beneficiaryModel.BeneficiaryModel
	require.NoError(t, db.First(&got, "id = ?", b.ID).Error)
	assert.Equal(t, beneficiaryModel.BeneficiaryStatusPending, got.Status)
}

func TestUpdateBeneficiaryStatus_NotFoundAndScope(t *testing.T) {
	db := dbtest.New(t)
	mine := dbtest.SeedMosque(t, db, "mine")
	other := dbtest.SeedMosque(t, db, "other")
	foreign := dbtest.SeedBeneficiary(t, db, other, "Orang Lain")
	app := newApp(t, db, authtest.Admin(mine))

	code, out := postForm(t, app, url.Values{"id": {uuid.NewString()}, "status": {"approved"}, "amount": {"10"}})
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.False(t, out.Success)

	code, _ = postForm(t, app, url.Values{"id": {foreign.ID.String()}, "status": {"approved"}, "amount": {"10"}})
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestUpdateBeneficiaryStatus_RejectGating(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	b := dbtest.SeedBeneficiary(t, db, mosqueID, "Pak Umar")
	app := newApp(t, db, authtest.Admin(mosqueID))

	// pending: tombol reject tidak ditawarkan
	code, _ := postForm(t, app, url.Values{"id": {b.ID.String()}, "status": {"rejected"}})
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = postForm(t, app, url.Values{"id": {b.ID.String()}, "status": {"approved"}, "amount": {"25"}})
	require.Equal(t, fiber.StatusOK, code)

	code, out := postForm(t, app, url.Values{"id": {b.ID.String()}, "status": {"rejected"}})
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, out.Success)
}

func TestUpdateDistributionStatus(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	b := dbtest.SeedBeneficiary(t, db, mosqueID, "Pak Ali")
	d := distributionModel.DistributionModel{MosqueID: mosqueID, BeneficiaryID: b.ID, Status: distributionModel.DistributionStatusPending}
	require.NoError(t, db.Create(&d).Error)
	app := newApp(t, db, authtest.Admin(mosqueID))

	patch := func(id, body string) int {
		req := httptest.NewRequest(http.MethodPatch, "/distributions/"+id+"/status", strings.NewReader(body))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		res, err := app.Test(req)
		require.NoError(t, err)
		return res.StatusCode
	}

	assert.Equal(t, fiber.StatusUnprocessableEntity, patch(d.ID.String(), `{"status":"archived"}`))
	assert.Equal(t, fiber.StatusNotFound, patch(uuid.NewString(), `{"status":"approved"}`))
	assert.Equal(t, fiber.StatusOK, patch(d.ID.String(), `{"status":"approved"}`))
	assert.Equal(t, fiber.StatusConflict, patch(d.ID.String(), `{"status":"rejected"}`))

	var got distributionModel.DistributionModel
	require.NoError(t, db.First(&got, "id = ?", d.ID).Error)
	assert.Equal(t, distributionModel.DistributionStatusApproved, got.Status)
}
