package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	collectionModel "zakatconnect_backend/internals/features/zakat/collections/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
)

// CollectionRecord: bentuk ternormalisasi zakat_collections untuk perhitungan laporan.
// Dibangun sekali di repository; nilai yang hilang sudah jadi nol.
type CollectionRecord struct {
	ID            uuid.UUID
	MosqueID      uuid.UUID
	MosqueName    string
	Type          string
	Amount        decimal.Decimal
	ProductTypeID *uuid.UUID
	ProductName   string
	Date          time.Time
}

type DistributionRecord struct {
	ID            uuid.UUID
	MosqueID      uuid.UUID
	MosqueName    string
	BeneficiaryID uuid.UUID
	Amount        decimal.Decimal
	Status        string
	Date          time.Time
}

type ProductPrice struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

// PriceLookup: product_type_id → harga per unit.
type PriceLookup map[uuid.UUID]decimal.Decimal

func NewPriceLookup(products []ProductPrice) PriceLookup {
	out := make(PriceLookup, len(products))
	for _, p := range products {
		out[p.ID] = p.Price
	}
	return out
}

// CollectionRecordFrom: baris DB → record. Nama masjid/produk diisi pemanggil kalau perlu.
func CollectionRecordFrom(m collectionModel.CollectionModel) CollectionRecord {
	return CollectionRecord{
		ID:            m.ID,
		MosqueID:      m.MosqueID,
		Type:          m.Type,
		Amount:        m.Amount,
		ProductTypeID: m.ProductTypeID,
		Date:          m.CollectedOn,
	}
}

func DistributionRecordFrom(m distributionModel.DistributionModel) DistributionRecord {
	return DistributionRecord{
		ID:            m.ID,
		MosqueID:      m.MosqueID,
		BeneficiaryID: m.BeneficiaryID,
		Amount:        m.Amount,
		Status:        distributionModel.NormalizeStatus(m.Status),
		Date:          m.DistributedOn,
	}
}
