package service

import (
	"strings"

	"github.com/shopspring/decimal"

	beneficiaryModel "zakatconnect_backend/internals/features/zakat/beneficiaries/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
)

// Actions: tombol yang boleh ditawarkan untuk status penerima saat ini.
type Actions struct {
	CanApprove bool `json:"can_approve"`
	CanReject  bool `json:"can_reject"`
}

// ActionsFor: approve selama belum approved; reject hanya setelah ada keputusan
// sebelumnya (bukan pending) dan belum rejected.
func ActionsFor(status string) Actions {
	s := strings.ToLower(strings.TrimSpace(status))
	return Actions{
		CanApprove: s != beneficiaryModel.BeneficiaryStatusApproved,
		CanReject:  s != beneficiaryModel.BeneficiaryStatusPending && s != beneficiaryModel.BeneficiaryStatusRejected,
	}
}

// CanTransition untuk status distribusi: pending → approved | rejected.
// approved & rejected terminal.
func CanTransition(from, to string) bool {
	from = distributionModel.NormalizeStatus(from)
	to = distributionModel.NormalizeStatus(to)
	if from != distributionModel.DistributionStatusPending {
		return false
	}
	return to == distributionModel.DistributionStatusApproved || to == distributionModel.DistributionStatusRejected
}

// ParseAmount: harus angka desimal positif & berhingga, dibulatkan ke 2 digit.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Message: "amount is required"}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Message: "amount must be a number"}
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, &ValidationError{Field: "amount", Message: "amount must be greater than zero"}
	}
	return d, nil
}
