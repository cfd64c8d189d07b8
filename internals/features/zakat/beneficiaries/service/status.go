package service

import (
	beneficiaryModel "zakatconnect_backend/internals/features/zakat/beneficiaries/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
)

// DefaultDerivedStatus: penerima tanpa distribusi approved/pending.
const DefaultDerivedStatus = beneficiaryModel.BeneficiaryStatusPending

// DeriveStatus menghitung status penerima dari status distribusinya:
// ada yang approved → approved; selain itu ada yang pending → pending; selain itu default.
// Tidak bergantung urutan.
func DeriveStatus(distributionStatuses []string) string {
	hasPending := false
	for _, s := range distributionStatuses {
		switch distributionModel.NormalizeStatus(s) {
		case distributionModel.DistributionStatusApproved:
			return beneficiaryModel.BeneficiaryStatusApproved
		case distributionModel.DistributionStatusPending:
			hasPending = true
		}
	}
	if hasPending {
		return beneficiaryModel.BeneficiaryStatusPending
	}
	return DefaultDerivedStatus
}

// DeriveStatuses: beneficiary_id → status turunan, untuk list.
// Penerima tanpa distribusi mendapat DefaultDerivedStatus.
func DeriveStatuses(beneficiaryIDs []string, statusesByBeneficiary map[string][]string) map[string]string {
	out := make(map[string]string, len(beneficiaryIDs))
	for _, id := range beneficiaryIDs {
		out[id] = DeriveStatus(statusesByBeneficiary[id])
	}
	return out
}
