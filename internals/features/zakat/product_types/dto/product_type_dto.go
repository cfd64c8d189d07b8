package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"zakatconnect_backend/internals/features/zakat/product_types/model"
)

type CreateProductTypeRequest struct {
	Name  string          `json:"name" validate:"required,min=2,max=100"`
	Unit  string          `json:"unit" validate:"omitempty,max=30"`
	Price decimal.Decimal `json:"price"`
}

func (r *CreateProductTypeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Unit = strings.TrimSpace(r.Unit)
	r.Price = r.Price.Round(2)
}

// PriceErrors: harga tidak boleh negatif.
func (r CreateProductTypeRequest) PriceErrors() map[string][]string {
	if r.Price.IsNegative() {
		return map[string][]string{"price": {"tidak boleh negatif"}}
	}
	return nil
}

func (r CreateProductTypeRequest) ToModel() model.ProductTypeModel {
	return model.ProductTypeModel{Name: r.Name, Unit: r.Unit, Price: r.Price}
}

type UpdateProductTypeRequest struct {
	Name  *string          `json:"name" validate:"omitempty,min=2,max=100"`
	Unit  *string          `json:"unit" validate:"omitempty,max=30"`
	Price *decimal.Decimal `json:"price"`
}

func (r UpdateProductTypeRequest) PriceErrors() map[string][]string {
	if r.Price != nil && r.Price.IsNegative() {
		return map[string][]string{"price": {"tidak boleh negatif"}}
	}
	return nil
}

func (r UpdateProductTypeRequest) Empty() bool {
	return r.Name == nil && r.Unit == nil && r.Price == nil
}

func (r UpdateProductTypeRequest) Apply(m *model.ProductTypeModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Unit != nil {
		m.Unit = strings.TrimSpace(*r.Unit)
	}
	if r.Price != nil {
		m.Price = r.Price.Round(2)
	}
}

type ProductTypeResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func FromModel(m model.ProductTypeModel) ProductTypeResponse {
	return ProductTypeResponse{
		ID:        m.ID,
		Name:      m.Name,
		Unit:      m.Unit,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(rows []model.ProductTypeModel) []ProductTypeResponse {
	out := make([]ProductTypeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
