package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"zakatconnect_backend/internals/features/zakat/payments/dto"
	"zakatconnect_backend/internals/features/zakat/payments/model"
	"zakatconnect_backend/internals/features/zakat/payments/service"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

type PaymentController struct {
	Svc *service.Service
	Log *zap.Logger
}

func NewPaymentController(svc *service.Service, log *zap.Logger) *PaymentController {
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentController{Svc: svc, Log: log.Named("payments")}
}

// 🔓 POST /api/public/zakat-payments
func (ctrl *PaymentController) Create(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	if fe := req.AmountErrors(); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	co, err := ctrl.Svc.Create(c.UserContext(), service.CreateInput{
		MosqueID:   req.MosqueID,
		GiverName:  req.Name,
		GiverEmail: req.Email,
		Amount:     req.Amount,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrSnapDisabled):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Pembayaran online belum tersedia")
	case errors.Is(err, service.ErrMosqueNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Masjid tidak ditemukan")
	default:
		ctrl.Log.Error("create zakat payment gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membuat token pembayaran")
	}

	return helper.JsonCreated(c, "Silakan lanjutkan pembayaran", dto.CheckoutResponse{
		OrderID:     co.Payment.OrderID,
		Amount:      co.Payment.Amount,
		SnapToken:   co.SnapToken,
		RedirectURL: co.RedirectURL,
	})
}

// 🔓 GET /api/public/zakat-payments/:order_id
func (ctrl *PaymentController) Status(c *fiber.Ctx) error {
	p, err := ctrl.Svc.GetByOrderID(c.UserContext(), strings.TrimSpace(c.Params("order_id")))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pembayaran tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}
	return helper.JsonOK(c, "ok", dto.StatusFromModel(p))
}

// 🔓 POST /api/public/zakat-payments/notification
// Midtrans kirim JSON; tombol "Test" dashboard kadang form-urlencoded.
func (ctrl *PaymentController) Notification(c *fiber.Ctx) error {
	var n service.Notification
	if err := c.BodyParser(&n); err != nil {
		ctrl.Log.Warn("parse notifikasi midtrans gagal",
			zap.String("content_type", string(c.Request().Header.ContentType())),
			zap.Error(err),
		)
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if strings.TrimSpace(n.OrderID) == "" || strings.TrimSpace(n.TransactionStatus) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order_id dan transaction_status wajib")
	}

	out, err := ctrl.Svc.HandleNotification(c.UserContext(), n)
	switch {
	case err == nil:
		return helper.JsonOK(c, "Notifikasi diproses", out)
	case errors.Is(err, service.ErrInvalidSignature):
		ctrl.Log.Warn("⚠️ signature midtrans tidak valid", zap.String("order_id", n.OrderID))
		return helper.JsonError(c, fiber.StatusForbidden, "Signature tidak valid")
	case errors.Is(err, service.ErrPaymentNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Pembayaran tidak ditemukan")
	case errors.Is(err, service.ErrAmountMismatch):
		ctrl.Log.Warn("gross_amount tidak cocok", zap.String("order_id", n.OrderID), zap.String("gross_amount", n.GrossAmount))
		return helper.JsonError(c, fiber.StatusBadRequest, "gross_amount tidak cocok")
	default:
		// 5xx → Midtrans akan retry
		ctrl.Log.Error("proses notifikasi midtrans gagal", zap.String("order_id", n.OrderID), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses notifikasi")
	}
}

// GET /api/a/zakat-payments?status=&mosque_id=&page=&per_page=
func (ctrl *PaymentController) List(c *fiber.Ctx) error {
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := scope.Apply(ctrl.Svc.DB.WithContext(c.UserContext()).Model(&model.ZakatPaymentModel{}), "mosque_id")
	if st := strings.ToLower(strings.TrimSpace(c.Query("status"))); st != "" {
		q = q.Where("status = ?", st)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pembayaran")
	}
	var rows []model.ZakatPaymentModel
	if err := q.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		ctrl.Log.Error("list zakat payments gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}
