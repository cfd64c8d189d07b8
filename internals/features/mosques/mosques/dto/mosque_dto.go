// file: internals/features/mosques/mosques/dto/mosque_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"zakatconnect_backend/internals/features/mosques/mosques/model"
)

/* =========================================================
   REQUEST DTO
========================================================= */

type CreateMosqueRequest struct {
	Name    string `json:"name" validate:"required,min=3,max=150"`
	Slug    string `json:"slug" validate:"omitempty,max=160"`
	Address string `json:"address"`
	City    string `json:"city" validate:"omitempty,max=100"`
	Region  string `json:"region" validate:"omitempty,max=100"`
}

func (r *CreateMosqueRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.TrimSpace(r.Slug)
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	r.Region = strings.TrimSpace(r.Region)
}

func (r CreateMosqueRequest) ToModel(slug string) model.MosqueModel {
	return model.MosqueModel{
		Name:    r.Name,
		Slug:    slug,
		Address: r.Address,
		City:    r.City,
		Region:  r.Region,
	}
}

// Partial update: nil = tidak diubah.
type UpdateMosqueRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=3,max=150"`
	Slug    *string `json:"slug" validate:"omitempty,max=160"`
	Address *string `json:"address"`
	City    *string `json:"city" validate:"omitempty,max=100"`
	Region  *string `json:"region" validate:"omitempty,max=100"`
}

func (r UpdateMosqueRequest) Apply(m *model.MosqueModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Address != nil {
		m.Address = strings.TrimSpace(*r.Address)
	}
	if r.City != nil {
		m.City = strings.TrimSpace(*r.City)
	}
	if r.Region != nil {
		m.Region = strings.TrimSpace(*r.Region)
	}
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type MosqueResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m model.MosqueModel) MosqueResponse {
	return MosqueResponse{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		Address:   m.Address,
		City:      m.City,
		Region:    m.Region,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(rows []model.MosqueModel) []MosqueResponse {
	out := make([]MosqueResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

// Versi ringkas untuk form pembayaran publik.
type PublicMosqueResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
	City string    `json:"city"`
}

func ToPublic(rows []model.MosqueModel) []PublicMosqueResponse {
	out := make([]PublicMosqueResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, PublicMosqueResponse{ID: r.ID, Name: r.Name, Slug: r.Slug, City: r.City})
	}
	return out
}
