package service

import (
	"github.com/shopspring/decimal"

	collectionModel "zakatconnect_backend/internals/features/zakat/collections/model"
)

// ValueOf mengembalikan nilai moneter satu collection.
//
//   - cash → amount
//   - in_kind dengan harga product type → amount × price
//   - selain itu → amount apa adanya
//
// in_kind tanpa harga → amount mentah (kuantitas, bukan uang).
func ValueOf(rec CollectionRecord, prices PriceLookup) decimal.Decimal {
	if rec.Type == collectionModel.CollectionTypeInKind && rec.ProductTypeID != nil {
		if price, ok := prices[*rec.ProductTypeID]; ok {
			return rec.Amount.Mul(price)
		}
	}
	return rec.Amount
}

// DistributionValue: distribusi selalu dinilai dari amount-nya, tanpa konversi harga.
func DistributionValue(rec DistributionRecord) decimal.Decimal {
	return rec.Amount
}
