package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	collectionModel "zakatconnect_backend/internals/features/zakat/collections/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
)

type Summary struct {
	TotalCollected    decimal.Decimal `json:"total_collected"`
	TotalDistributed  decimal.Decimal `json:"total_distributed"`
	Balance           decimal.Decimal `json:"balance"`
	CashCollected     decimal.Decimal `json:"cash_collected"`
	InKindCollected   decimal.Decimal `json:"in_kind_collected"`
	CollectionCount   int             `json:"collection_count"`
	DistributionCount int             `json:"distribution_count"`
	ApprovedCount     int             `json:"approved_count"`
	PendingCount      int             `json:"pending_count"`
	RejectedCount     int             `json:"rejected_count"`
}

func Summarize(collections []CollectionRecord, distributions []DistributionRecord, prices PriceLookup) Summary {
	s := Summary{
		TotalCollected:    TotalCollected(collections, prices),
		TotalDistributed:  TotalDistributed(distributions),
		CashCollected:     decimal.Zero,
		InKindCollected:   decimal.Zero,
		CollectionCount:   len(collections),
		DistributionCount: len(distributions),
	}
	s.Balance = Balance(s.TotalCollected, s.TotalDistributed)

	for _, c := range collections {
		if c.Type == collectionModel.CollectionTypeInKind {
			s.InKindCollected = s.InKindCollected.Add(ValueOf(c, prices))
		} else {
			s.CashCollected = s.CashCollected.Add(ValueOf(c, prices))
		}
	}
	for _, d := range distributions {
		switch distributionModel.NormalizeStatus(d.Status) {
		case distributionModel.DistributionStatusApproved:
			s.ApprovedCount++
		case distributionModel.DistributionStatusPending:
			s.PendingCount++
		case distributionModel.DistributionStatusRejected:
			s.RejectedCount++
		}
	}
	return s
}

type MosqueRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type MosqueTotal struct {
	MosqueID    uuid.UUID       `json:"mosque_id"`
	Name        string          `json:"name"`
	Collected   decimal.Decimal `json:"collected"`
	Distributed decimal.Decimal `json:"distributed"`
	Balance     decimal.Decimal `json:"balance"`
}

// TotalsByMosque: satu baris per masjid (urutan mengikuti mosques), termasuk
// masjid tanpa transaksi. Record dengan masjid di luar daftar diabaikan.
func TotalsByMosque(mosques []MosqueRef, collections []CollectionRecord, distributions []DistributionRecord, prices PriceLookup) []MosqueTotal {
	idx := make(map[uuid.UUID]int, len(mosques))
	out := make([]MosqueTotal, 0, len(mosques))
	for _, m := range mosques {
		idx[m.ID] = len(out)
		out = append(out, MosqueTotal{MosqueID: m.ID, Name: m.Name, Collected: decimal.Zero, Distributed: decimal.Zero})
	}
	for _, c := range collections {
		if i, ok := idx[c.MosqueID]; ok {
			out[i].Collected = out[i].Collected.Add(ValueOf(c, prices))
		}
	}
	for _, d := range distributions {
		if i, ok := idx[d.MosqueID]; ok {
			out[i].Distributed = out[i].Distributed.Add(DistributionValue(d))
		}
	}
	for i := range out {
		out[i].Balance = Balance(out[i].Collected, out[i].Distributed)
	}
	return out
}
