package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	beneficiaryModel "zakatconnect_backend/internals/features/zakat/beneficiaries/model"
	"zakatconnect_backend/internals/features/zakat/approvals/service"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

type ApprovalController struct {
	Svc *service.Service
	Log *zap.Logger
}

func NewApprovalController(svc *service.Service, log *zap.Logger) *ApprovalController {
	if log == nil {
		log = zap.NewNop()
	}
	return &ApprovalController{Svc: svc, Log: log.Named("approvals")}
}

// form-encoded: id, status, amount
type updateStatusForm struct {
	ID     string `form:"id"`
	Status string `form:"status"`
	Amount string `form:"amount"`
}

/* =========================================================
   POST /api/a/beneficiaries/update-status
   Body: application/x-www-form-urlencoded {id, status, amount}
   Resp: {success, message}
========================================================= */
func (ctrl *ApprovalController) UpdateBeneficiaryStatus(c *fiber.Ctx) error {
	var form updateStatusForm
	if err := c.BodyParser(&form); err != nil {
		return helper.JsonStatus(c, fiber.StatusBadRequest, false, "Invalid request body")
	}
	form.ID = strings.TrimSpace(form.ID)
	form.Status = strings.ToLower(strings.TrimSpace(form.Status))
	form.Amount = strings.TrimSpace(form.Amount)

	if form.ID == "" || form.Status == "" {
		return helper.JsonStatus(c, fiber.StatusBadRequest, false, "Missing required fields")
	}
	id, err := uuid.Parse(form.ID)
	if err != nil {
		return helper.JsonStatus(c, fiber.StatusBadRequest, false, "Invalid beneficiary id")
	}

	u, ok := helpersAuth.GetCurrentUser(c)
	if !ok {
		return helper.JsonStatus(c, fiber.StatusUnauthorized, false, "Unauthorized")
	}

	// tenant guard sebelum write
	b, err := ctrl.Svc.Beneficiary(c.UserContext(), id)
	if err != nil {
		return ctrl.fail(c, err)
	}
	if !helpersAuth.ScopeFor(u).Allows(b.MosqueID) {
		return helper.JsonStatus(c, fiber.StatusForbidden, false, "Anda tidak memiliki akses ke masjid ini.")
	}

	switch form.Status {
	case beneficiaryModel.BeneficiaryStatusApproved:
		if form.Amount == "" {
			return helper.JsonStatus(c, fiber.StatusBadRequest, false, "Missing required fields")
		}
		actor := u.ID
		if _, err := ctrl.Svc.Approve(c.UserContext(), id, form.Amount, &actor); err != nil {
			return ctrl.fail(c, err)
		}
		return helper.JsonStatus(c, fiber.StatusOK, true, "Beneficiary approved and distribution recorded")

	case beneficiaryModel.BeneficiaryStatusRejected:
		if _, err := ctrl.Svc.Reject(c.UserContext(), id); err != nil {
			return ctrl.fail(c, err)
		}
		return helper.JsonStatus(c, fiber.StatusOK, true, "Beneficiary rejected")

	default:
		return helper.JsonStatus(c, fiber.StatusBadRequest, false, "Invalid status")
	}
}

type updateDistributionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

/* =========================================================
   PATCH /api/a/distributions/:id/status
   Body: {"status": "approved" | "rejected" | "pending"}
========================================================= */
func (ctrl *ApprovalController) UpdateDistributionStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID distribusi tidak valid")
	}

	var req updateDistributionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	current, err := ctrl.Svc.Distribution(c.UserContext(), id)
	if err != nil {
		return ctrl.failJSON(c, err)
	}
	if !scope.Allows(current.MosqueID) {
		return helper.FromFiberError(c, helpersAuth.ErrMosqueForbidden)
	}

	updated, err := ctrl.Svc.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return ctrl.failJSON(c, err)
	}
	return helper.JsonUpdated(c, "Status distribusi diperbarui", updated)
}

// fail → envelope {success, message} untuk endpoint form.
func (ctrl *ApprovalController) fail(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return helper.JsonStatus(c, fiber.StatusBadRequest, false, ve.Message)
	case errors.Is(err, service.ErrBeneficiaryNotFound):
		return helper.JsonStatus(c, fiber.StatusNotFound, false, "Beneficiary not found")
	case errors.Is(err, service.ErrActionNotAllowed):
		return helper.JsonStatus(c, fiber.StatusBadRequest, false, "Status change not allowed")
	default:
		ctrl.Log.Error("update beneficiary status gagal", zap.Error(err))
		return helper.JsonStatus(c, fiber.StatusInternalServerError, false, "Failed to update status")
	}
}

func (ctrl *ApprovalController) failJSON(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return helper.JsonValidationError(c, map[string][]string{ve.Field: {ve.Message}})
	case errors.Is(err, service.ErrDistributionNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Distribusi tidak ditemukan")
	case errors.Is(err, service.ErrInvalidTransition):
		return helper.JsonError(c, fiber.StatusConflict, "Perubahan status tidak diizinkan")
	default:
		ctrl.Log.Error("update distribution status gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui status distribusi")
	}
}
