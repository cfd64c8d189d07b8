package dto

import (
	"time"

	"github.com/google/uuid"

	"zakatconnect_backend/internals/features/mosques/mosque_admins/model"
)

type MosqueAdminRequest struct {
	MosqueID uuid.UUID `json:"mosque_id" validate:"required"`
	UserID   uuid.UUID `json:"user_id" validate:"required"`
}

type MosqueAdminResponse struct {
	ID        uuid.UUID `json:"id"`
	MosqueID  uuid.UUID `json:"mosque_id"`
	UserID    uuid.UUID `json:"user_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	// diisi kalau relasi User di-preload
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

func ToMosqueAdminResponse(m model.MosqueAdminModel) MosqueAdminResponse {
	res := MosqueAdminResponse{
		ID:        m.ID,
		MosqueID:  m.MosqueID,
		UserID:    m.UserID,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
	if m.User != nil {
		res.Email = m.User.Email
		res.FullName = m.User.FullName
		res.Role = m.User.Role
	}
	return res
}

func ToMosqueAdminResponses(rows []model.MosqueAdminModel) []MosqueAdminResponse {
	out := make([]MosqueAdminResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToMosqueAdminResponse(r))
	}
	return out
}
