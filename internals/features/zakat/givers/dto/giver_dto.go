package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"zakatconnect_backend/internals/features/zakat/givers/model"
)

type CreateGiverRequest struct {
	MosqueID *uuid.UUID `json:"mosque_id"`
	Name     string     `json:"name" validate:"required,min=2,max=150"`
	Phone    string     `json:"phone" validate:"omitempty,max=30"`
	Email    string     `json:"email" validate:"omitempty,email,max=255"`
	Address  string     `json:"address"`
}

func (r *CreateGiverRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Address = strings.TrimSpace(r.Address)
}

func (r CreateGiverRequest) ToModel(mosqueID *uuid.UUID) model.GiverModel {
	return model.GiverModel{
		MosqueID: mosqueID,
		Name:     r.Name,
		Phone:    r.Phone,
		Email:    r.Email,
		Address:  r.Address,
	}
}

type UpdateGiverRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=150"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Address *string `json:"address"`
}

func (r UpdateGiverRequest) Apply(m *model.GiverModel) bool {
	changed := false
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
		changed = true
	}
	if r.Phone != nil {
		m.Phone = strings.TrimSpace(*r.Phone)
		changed = true
	}
	if r.Email != nil {
		m.Email = strings.ToLower(strings.TrimSpace(*r.Email))
		changed = true
	}
	if r.Address != nil {
		m.Address = strings.TrimSpace(*r.Address)
		changed = true
	}
	return changed
}

type GiverResponse struct {
	ID        uuid.UUID  `json:"id"`
	MosqueID  *uuid.UUID `json:"mosque_id,omitempty"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func FromModel(m model.GiverModel) GiverResponse {
	return GiverResponse{
		ID:        m.ID,
		MosqueID:  m.MosqueID,
		Name:      m.Name,
		Phone:     m.Phone,
		Email:     m.Email,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(rows []model.GiverModel) []GiverResponse {
	out := make([]GiverResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
