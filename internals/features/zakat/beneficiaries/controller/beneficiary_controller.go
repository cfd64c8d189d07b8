package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/features/zakat/beneficiaries/dto"
	"zakatconnect_backend/internals/features/zakat/beneficiaries/model"
	"zakatconnect_backend/internals/features/zakat/beneficiaries/service"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
	"zakatconnect_backend/internals/helpers/events"
)

type BeneficiaryController struct {
	DB  *gorm.DB
	Pub events.Publisher
	Log *zap.Logger
}

func NewBeneficiaryController(db *gorm.DB, pub events.Publisher, log *zap.Logger) *BeneficiaryController {
	if log == nil {
		log = zap.NewNop()
	}
	return &BeneficiaryController{DB: db, Pub: events.OrNop(pub), Log: log.Named("beneficiaries")}
}

// ✅ GET /api/a/beneficiaries?status=&q=&mosque_id=&page=&per_page=
func (ctrl *BeneficiaryController) List(c *fiber.Ctx) error {
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := scope.Apply(ctrl.DB.WithContext(c.UserContext()).Model(&model.BeneficiaryModel{}), "mosque_id")
	if st := strings.ToLower(strings.TrimSpace(c.Query("status"))); st != "" {
		switch st {
		case model.BeneficiaryStatusPending, model.BeneficiaryStatusApproved, model.BeneficiaryStatusRejected:
			q = q.Where("status = ?", st)
		default:
			return helper.JsonError(c, fiber.StatusBadRequest, "status harus pending, approved, atau rejected")
		}
	}
	if s := strings.ToLower(strings.TrimSpace(c.Query("q"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung mustahik")
	}
	var rows []model.BeneficiaryModel
	if err := q.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		ctrl.Log.Error("list beneficiaries gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil mustahik")
	}

	derived := ctrl.derivedStatuses(c, rows)
	out := make([]dto.BeneficiaryResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, dto.FromModel(b, derived[b.ID.String()]))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}

// derivedStatuses: status turunan dari distribusi; gagal baca → default untuk semua.
func (ctrl *BeneficiaryController) derivedStatuses(c *fiber.Ctx, rows []model.BeneficiaryModel) map[string]string {
	ids := make([]string, 0, len(rows))
	uids := make([]uuid.UUID, 0, len(rows))
	for _, b := range rows {
		ids = append(ids, b.ID.String())
		uids = append(uids, b.ID)
	}
	byBeneficiary := map[string][]string{}
	if len(uids) > 0 {
		var dists []distributionModel.DistributionModel
		if err := ctrl.DB.WithContext(c.UserContext()).
			Select("beneficiary_id", "status").
			Where("beneficiary_id IN ?", uids).
			Find(&dists).Error; err != nil {
			ctrl.Log.Warn("baca distribusi untuk derived status gagal", zap.Error(err))
		}
		for _, d := range dists {
			k := d.BeneficiaryID.String()
			byBeneficiary[k] = append(byBeneficiary[k], d.Status)
		}
	}
	return service.DeriveStatuses(ids, byBeneficiary)
}

// ✅ GET /api/a/beneficiaries/:id (termasuk riwayat distribusi)
func (ctrl *BeneficiaryController) Get(c *fiber.Ctx) error {
	b, err := ctrl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var dists []distributionModel.DistributionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("beneficiary_id = ?", b.ID).
		Order("distribution_date DESC, created_at DESC").
		Find(&dists).Error; err != nil {
		ctrl.Log.Error("get distributions gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil distribusi")
	}
	statuses := make([]string, 0, len(dists))
	for _, d := range dists {
		statuses = append(statuses, d.Status)
	}

	resp := dto.WithDistributions(dto.FromModel(b, service.DeriveStatus(statuses)), dists)
	return helper.JsonOK(c, "ok", resp)
}

// ✅ POST /api/a/beneficiaries
func (ctrl *BeneficiaryController) Create(c *fiber.Ctx) error {
	var req dto.CreateBeneficiaryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	mosqueID, err := helpersAuth.ResolveWriteMosque(c, req.MosqueID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	b := req.ToModel(mosqueID)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&b).Error; err != nil {
		if status, msg, ok := helper.MapPGError(err); ok {
			return helper.JsonError(c, status, msg)
		}
		ctrl.Log.Error("create beneficiary gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat mustahik")
	}

	ctrl.Log.Info("beneficiary created", zap.String("id", b.ID.String()), zap.String("code", b.Code))
	ctrl.Pub.Publish(c.UserContext(), events.NewEvent(events.TopicBeneficiaries, b.MosqueID, b.ID))
	return helper.JsonCreated(c, "Mustahik berhasil dibuat", dto.FromModel(b, service.DefaultDerivedStatus))
}

// ✅ PATCH /api/a/beneficiaries/:id
func (ctrl *BeneficiaryController) Update(c *fiber.Ctx) error {
	var req dto.UpdateBeneficiaryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if fe := helper.ValidateStruct(req); fe != nil {
		return helper.JsonValidationError(c, fe)
	}
	updates := req.Updates()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	b, err := ctrl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ctrl.DB.WithContext(c.UserContext())
	if err := db.Model(&b).Updates(updates).Error; err != nil {
		ctrl.Log.Error("update beneficiary gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui mustahik")
	}
	if err := db.First(&b, "id = ?", b.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil mustahik")
	}

	ctrl.Pub.Publish(c.UserContext(), events.NewEvent(events.TopicBeneficiaries, b.MosqueID, b.ID))
	return helper.JsonUpdated(c, "Mustahik diperbarui", dto.FromModel(b, ctrl.derivedStatuses(c, []model.BeneficiaryModel{b})[b.ID.String()]))
}

func (ctrl *BeneficiaryController) findScoped(c *fiber.Ctx) (model.BeneficiaryModel, error) {
	var b model.BeneficiaryModel
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return b, fiber.NewError(fiber.StatusBadRequest, "ID mustahik tidak valid")
	}
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return b, err
	}
	if err := ctrl.DB.WithContext(c.UserContext()).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b, fiber.NewError(fiber.StatusNotFound, "Mustahik tidak ditemukan")
		}
		ctrl.Log.Error("get beneficiary gagal", zap.Error(err))
		return b, err
	}
	if !scope.Allows(b.MosqueID) {
		return b, helpersAuth.ErrMosqueForbidden
	}
	return b, nil
}
