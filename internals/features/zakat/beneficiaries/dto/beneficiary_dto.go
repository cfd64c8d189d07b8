package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	approvalService "zakatconnect_backend/internals/features/zakat/approvals/service"
	"zakatconnect_backend/internals/features/zakat/beneficiaries/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
)

/* =========================================================
   REQUEST DTO
========================================================= */

type CreateBeneficiaryRequest struct {
	MosqueID      *uuid.UUID `json:"mosque_id"`
	Name          string     `json:"name" validate:"required,min=2,max=150"`
	Address       string     `json:"address"`
	City          string     `json:"city" validate:"omitempty,max=100"`
	FamilyMembers int        `json:"family_members" validate:"omitempty,min=1,max=100"`
}

func (r *CreateBeneficiaryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	if r.FamilyMembers == 0 {
		r.FamilyMembers = 1
	}
}

// ToModel: status selalu pending, code di-generate di hook.
func (r CreateBeneficiaryRequest) ToModel(mosqueID uuid.UUID) model.BeneficiaryModel {
	return model.BeneficiaryModel{
		MosqueID:      mosqueID,
		Name:          r.Name,
		Address:       r.Address,
		City:          r.City,
		FamilyMembers: r.FamilyMembers,
		Status:        model.BeneficiaryStatusPending,
	}
}

// Hanya field profil; status lewat endpoint approval.
type UpdateBeneficiaryRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=150"`
	Address       *string `json:"address"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	FamilyMembers *int    `json:"family_members" validate:"omitempty,min=1,max=100"`
}

func (r UpdateBeneficiaryRequest) Updates() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = strings.TrimSpace(*r.Name)
	}
	if r.Address != nil {
		out["address"] = strings.TrimSpace(*r.Address)
	}
	if r.City != nil {
		out["city"] = strings.TrimSpace(*r.City)
	}
	if r.FamilyMembers != nil {
		out["family_members"] = *r.FamilyMembers
	}
	return out
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type BeneficiaryResponse struct {
	ID            uuid.UUID               `json:"id"`
	MosqueID      uuid.UUID               `json:"mosque_id"`
	Code          string                  `json:"code"`
	Name          string                  `json:"name"`
	Address       string                  `json:"address"`
	City          string                  `json:"city"`
	FamilyMembers int                     `json:"family_members"`
	Status        string                  `json:"status"`
	DerivedStatus string                  `json:"derived_status"`
	Actions       approvalService.Actions `json:"actions"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`

	Distributions []DistributionItem `json:"distributions,omitempty"`
}

type DistributionItem struct {
	ID            uuid.UUID       `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	DistributedOn string          `json:"distribution_date"`
}

func FromModel(m model.BeneficiaryModel, derived string) BeneficiaryResponse {
	return BeneficiaryResponse{
		ID:            m.ID,
		MosqueID:      m.MosqueID,
		Code:          m.Code,
		Name:          m.Name,
		Address:       m.Address,
		City:          m.City,
		FamilyMembers: m.FamilyMembers,
		Status:        m.Status,
		DerivedStatus: derived,
		Actions:       approvalService.ActionsFor(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func WithDistributions(r BeneficiaryResponse, rows []distributionModel.DistributionModel) BeneficiaryResponse {
	r.Distributions = make([]DistributionItem, 0, len(rows))
	for _, d := range rows {
		r.Distributions = append(r.Distributions, DistributionItem{
			ID:            d.ID,
			Amount:        d.Amount,
			Type:          d.Type,
			Status:        distributionModel.NormalizeStatus(d.Status),
			DistributedOn: d.DistributedOn.Format("2006-01-02"),
		})
	}
	return r
}
