package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	beneficiaryModel "zakatconnect_backend/internals/features/zakat/beneficiaries/model"
	"zakatconnect_backend/internals/features/zakat/distributions/dto"
	"zakatconnect_backend/internals/features/zakat/distributions/model"
	helper "zakatconnect_backend/internals/helpers"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
	"zakatconnect_backend/internals/helpers/dbtime"
	"zakatconnect_backend/internals/helpers/events"
)

type DistributionController struct {
	DB  *gorm.DB
	Pub events.Publisher
	Log *zap.Logger
}

func NewDistributionController(db *gorm.DB, pub events.Publisher, log *zap.Logger) *DistributionController {
	if log == nil {
		log = zap.NewNop()
	}
	return &DistributionController{DB: db, Pub: events.OrNop(pub), Log: log.Named("distributions")}
}

// GET /api/a/distributions?status=&beneficiary_id=&from=&to=&mosque_id=&page=&per_page=
func (ctrl *DistributionController) List(c *fiber.Ctx) error {
	scope, err := helpersAuth.ResolveScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rng, err := dbtime.ParseDateRange(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	p := helper.ResolvePaging(c, 20, 200)

	q := scope.Apply(ctrl.DB.WithContext(c.UserContext()).Model(&model.DistributionModel{}), "mosque_id")
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		st = model.NormalizeStatus(st)
		if !model.IsValidStatus(st) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status harus pending, approved, atau rejected")
		}
		// data lama "completed" ikut terhitung approved
		if st == model.DistributionStatusApproved {
			q = q.Where("LOWER(status) IN ?", []string{"approved", "completed"})
		} else {
			q = q.Where("LOWER(status) = ?", st)
		}
	}
	if raw := strings.TrimSpace(c.Query("beneficiary_id")); raw != "" {
		bid, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "beneficiary_id tidak valid")
		}
		q = q.Where("beneficiary_id = ?", bid)
	}
	if !rng.From.IsZero() {
		q = q.Where("distribution_date >= ?", rng.From)
	}
	if !rng.To.IsZero() {
		q = q.Where("distribution_date <= ?", rng.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung distribusi")
	}
	var rows []model.DistributionModel
	if err := q.Order("distribution_date DESC, created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		ctrl.Log.Error("list distributions gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil distribusi")
	}

	names := ctrl.beneficiaryNames(c, rows)
	out := make([]dto.DistributionResponse, 0, len(rows))
	for _, r := range rows {
		d := dto.FromModel(r)
		d.BeneficiaryName = names[r.BeneficiaryID]
		out = append(out, d)
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}

func (ctrl *DistributionController) beneficiaryNames(c *fiber.Ctx, rows []model.DistributionModel) map[uuid.UUID]string {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.BeneficiaryID)
	}
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out
	}
	var bs []beneficiaryModel.BeneficiaryModel
	if err := ctrl.DB.WithContext(c.UserContext()).Select("id", "name").Where("id IN ?", ids).Find(&bs).Error; err != nil {
		ctrl.Log.Warn("baca nama mustahik gagal", zap.Error(err))
		return out
	}
	for _, b := range bs {
		out[b.ID] = b.Name
	}
	return out
}

// POST /api/a/distributions
func (ctrl *DistributionController) Create(c *fiber.Ctx) error {
	u, ok := helpersAuth.GetCurrentUser(c)
	if !ok {
		return helper.FromFiberError(c, helpersAuth.ErrUnauthenticated)
	}

	var req dto.CreateDistributionRequest
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

	loc := dbtime.GetAppLocation(c)
	on, err := dbtime.ParseDate(req.Date, loc)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"distribution_date": {err.Error()}})
	}
	if on.IsZero() {
		on = dbtime.Today(loc)
	}

	scope := helpersAuth.ScopeFor(u)
	var m model.DistributionModel
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		// masjid distribusi = masjid mustahik
		var b beneficiaryModel.BeneficiaryModel
		if err := tx.Select("id", "mosque_id").First(&b, "id = ?", req.BeneficiaryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "Mustahik tidak ditemukan")
			}
			return err
		}
		if !scope.Allows(b.MosqueID) {
			return helpersAuth.ErrMosqueForbidden
		}
		m = req.ToModel(b.MosqueID, on, u.ID)
		return tx.Create(&m).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.FromFiberError(c, err)
		}
		ctrl.Log.Error("create distribution gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat distribusi")
	}

	ctrl.Log.Info("distribution recorded",
		zap.String("id", m.ID.String()),
		zap.String("beneficiary_id", m.BeneficiaryID.String()),
		zap.String("amount", m.Amount.StringFixed(2)),
	)
	ctrl.Pub.Publish(c.UserContext(),
		events.NewEvent(events.TopicDistributions, m.MosqueID, m.ID),
		events.NewEvent(events.TopicBeneficiaries, m.MosqueID, m.BeneficiaryID),
	)
	return helper.JsonCreated(c, "Distribusi dicatat", dto.FromModel(m))
}
