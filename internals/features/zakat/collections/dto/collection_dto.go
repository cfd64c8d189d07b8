package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"zakatconnect_backend/internals/features/zakat/collections/model"
)

type CreateCollectionRequest struct {
	MosqueID      *uuid.UUID      `json:"mosque_id"`
	GiverID       *uuid.UUID      `json:"giver_id"`
	Type          string          `json:"type" validate:"required,oneof=cash in_kind"`
	Amount        decimal.Decimal `json:"amount"`
	ProductTypeID *uuid.UUID      `json:"product_type_id"`
	Date          string          `json:"collection_date"`
	Notes         string          `json:"notes" validate:"omitempty,max=1000"`
}

func (r *CreateCollectionRequest) Normalize() {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Notes = strings.TrimSpace(r.Notes)
	r.Date = strings.TrimSpace(r.Date)
	r.Amount = r.Amount.Round(2)
	if r.GiverID != nil && *r.GiverID == uuid.Nil {
		r.GiverID = nil
	}
	if r.ProductTypeID != nil && *r.ProductTypeID == uuid.Nil {
		r.ProductTypeID = nil
	}
}

// AmountErrors: cash → nominal > 0, in_kind → kuantitas > 0.
// product_type_id hanya bermakna untuk in_kind.
func (r CreateCollectionRequest) AmountErrors() map[string][]string {
	out := map[string][]string{}
	if !r.Amount.IsPositive() {
		if r.Type == model.CollectionTypeInKind {
			out["amount"] = []string{"kuantitas harus lebih dari 0"}
		} else {
			out["amount"] = []string{"nominal harus lebih dari 0"}
		}
	}
	if r.Type == model.CollectionTypeCash && r.ProductTypeID != nil {
		out["product_type_id"] = []string{"hanya untuk zakat in_kind"}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (r CreateCollectionRequest) ToModel(mosqueID uuid.UUID, on time.Time, recordedBy *uuid.UUID) model.CollectionModel {
	return model.CollectionModel{
		MosqueID:      mosqueID,
		GiverID:       r.GiverID,
		Amount:        r.Amount,
		Type:          r.Type,
		ProductTypeID: r.ProductTypeID,
		CollectedOn:   on,
		Notes:         r.Notes,
		RecordedBy:    recordedBy,
	}
}

type CollectionResponse struct {
	ID            uuid.UUID       `json:"id"`
	MosqueID      uuid.UUID       `json:"mosque_id"`
	GiverID       *uuid.UUID      `json:"giver_id,omitempty"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	ProductTypeID *uuid.UUID      `json:"product_type_id,omitempty"`
	Value         decimal.Decimal `json:"value"`
	CollectedOn   string          `json:"collection_date"`
	Notes         string          `json:"notes,omitempty"`
	RecordedBy    *uuid.UUID      `json:"recorded_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func FromModel(m model.CollectionModel, value decimal.Decimal) CollectionResponse {
	return CollectionResponse{
		ID:            m.ID,
		MosqueID:      m.MosqueID,
		GiverID:       m.GiverID,
		Type:          m.Type,
		Amount:        m.Amount,
		ProductTypeID: m.ProductTypeID,
		Value:         value,
		CollectedOn:   m.CollectedOn.Format("2006-01-02"),
		Notes:         m.Notes,
		RecordedBy:    m.RecordedBy,
		CreatedAt:     m.CreatedAt,
	}
}
