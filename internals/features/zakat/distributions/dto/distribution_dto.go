package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"zakatconnect_backend/internals/features/zakat/distributions/model"
)

type CreateDistributionRequest struct {
	BeneficiaryID uuid.UUID       `json:"beneficiary_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type" validate:"omitempty,oneof=cash in_kind"`
	Date          string          `json:"distribution_date"`
	Notes         string          `json:"notes" validate:"omitempty,max=1000"`
}

func (r *CreateDistributionRequest) Normalize() {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = model.DistributionTypeCash
	}
	r.Date = strings.TrimSpace(r.Date)
	r.Notes = strings.TrimSpace(r.Notes)
	r.Amount = r.Amount.Round(2)
}

func (r CreateDistributionRequest) AmountErrors() map[string][]string {
	if !r.Amount.IsPositive() {
		return map[string][]string{"amount": {"harus lebih dari 0"}}
	}
	return nil
}

// ToModel: distribusi manual selalu mulai dari pending.
func (r CreateDistributionRequest) ToModel(mosqueID uuid.UUID, on time.Time, recordedBy uuid.UUID) model.DistributionModel {
	meta := map[string]any{"source": "manual", "recorded_by": recordedBy.String()}
	if r.Notes != "" {
		meta["notes"] = r.Notes
	}
	return model.DistributionModel{
		MosqueID:      mosqueID,
		BeneficiaryID: r.BeneficiaryID,
		Amount:        r.Amount,
		Type:          r.Type,
		Status:        model.DistributionStatusPending,
		DistributedOn: on,
		Meta:          meta,
	}
}

type DistributionResponse struct {
	ID              uuid.UUID       `json:"id"`
	MosqueID        uuid.UUID       `json:"mosque_id"`
	BeneficiaryID   uuid.UUID       `json:"beneficiary_id"`
	BeneficiaryName string          `json:"beneficiary_name,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	DistributedOn   string          `json:"distribution_date"`
	Meta            map[string]any  `json:"meta,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func FromModel(m model.DistributionModel) DistributionResponse {
	return DistributionResponse{
		ID:            m.ID,
		MosqueID:      m.MosqueID,
		BeneficiaryID: m.BeneficiaryID,
		Amount:        m.Amount,
		Type:          m.Type,
		Status:        model.NormalizeStatus(m.Status),
		DistributedOn: m.DistributedOn.Format("2006-01-02"),
		Meta:          m.Meta,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
