package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"zakatconnect_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	Email    string     `json:"email" validate:"required,email,max=255"`
	FullName string     `json:"full_name" validate:"required,min=3,max=150"`
	Password string     `json:"password" validate:"required,min=8"`
	Role     string     `json:"role" validate:"required,oneof=super-admin admin clerk"`
	MosqueID *uuid.UUID `json:"mosque_id"` // opsional: langsung ditautkan
}

func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=3,max=150"`
	Role     *string `json:"role" validate:"omitempty,oneof=super-admin admin clerk"`
	IsActive *bool   `json:"is_active"`
}

// Updates → map kolom untuk gorm (bool false tetap ikut).
func (r UpdateUserRequest) Updates() map[string]any {
	m := map[string]any{}
	if r.FullName != nil {
		m["full_name"] = strings.TrimSpace(*r.FullName)
	}
	if r.Role != nil {
		m["role"] = strings.ToLower(strings.TrimSpace(*r.Role))
	}
	if r.IsActive != nil {
		m["is_active"] = *r.IsActive
	}
	return m
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(u model.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func FromModels(rows []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
