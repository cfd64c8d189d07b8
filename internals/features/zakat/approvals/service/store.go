package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	beneficiaryModel "zakatconnect_backend/internals/features/zakat/beneficiaries/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
)

type ApproveInput struct {
	BeneficiaryID uuid.UUID
	Amount        decimal.Decimal
	ApprovedBy    *uuid.UUID
	At            time.Time
}

// Store: operasi tulis state machine approval.
type Store interface {
	GetBeneficiary(ctx context.Context, id uuid.UUID) (beneficiaryModel.BeneficiaryModel, error)
	GetDistribution(ctx context.Context, id uuid.UUID) (distributionModel.DistributionModel, error)
	// ApproveBeneficiary: set status approved lalu insert distribusi approved, satu transaksi.
	ApproveBeneficiary(ctx context.Context, in ApproveInput) (distributionModel.DistributionModel, error)
	// SetBeneficiaryStatus menjalankan check(current) lalu update, satu transaksi.
	SetBeneficiaryStatus(ctx context.Context, id uuid.UUID, status string, at time.Time, check func(current string) error) (beneficiaryModel.BeneficiaryModel, error)
	SetDistributionStatus(ctx context.Context, id uuid.UUID, status string, at time.Time, check func(current string) error) (distributionModel.DistributionModel, error)
}

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetBeneficiary(ctx context.Context, id uuid.UUID) (beneficiaryModel.BeneficiaryModel, error) {
	var b beneficiaryModel.BeneficiaryModel
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b, ErrBeneficiaryNotFound
		}
		return b, &StoreError{Op: "get beneficiary", Err: err}
	}
	return b, nil
}

func (s *GormStore) GetDistribution(ctx context.Context, id uuid.UUID) (distributionModel.DistributionModel, error) {
	var d distributionModel.DistributionModel
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return d, ErrDistributionNotFound
		}
		return d, &StoreError{Op: "get distribution", Err: err}
	}
	return d, nil
}

func (s *GormStore) ApproveBeneficiary(ctx context.Context, in ApproveInput) (distributionModel.DistributionModel, error) {
	var dist distributionModel.DistributionModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b beneficiaryModel.BeneficiaryModel
		if err := tx.Where("id = ?", in.BeneficiaryID).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBeneficiaryNotFound
			}
			return &StoreError{Op: "load beneficiary", Err: err}
		}

		// 1) status penerima dulu; gagal → tidak ada distribusi
		res := tx.Model(&beneficiaryModel.BeneficiaryModel{}).
			Where("id = ?", in.BeneficiaryID).
			Updates(map[string]any{
				"status":     beneficiaryModel.BeneficiaryStatusApproved,
				"updated_at": in.At,
			})
		if res.Error != nil {
			return &StoreError{Op: "update beneficiary", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			return ErrBeneficiaryNotFound
		}

		// 2) catat distribusi yang disetujui
		meta := datatypes.JSONMap{"source": "approval"}
		if in.ApprovedBy != nil {
			meta["approved_by"] = in.ApprovedBy.String()
		}
		y, m, d := in.At.Date()
		dist = distributionModel.DistributionModel{
			MosqueID:      b.MosqueID,
			BeneficiaryID: b.ID,
			Amount:        in.Amount,
			Type:          distributionModel.DistributionTypeCash,
			Status:        distributionModel.DistributionStatusApproved,
			DistributedOn: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Meta:          meta,
		}
		if err := tx.Create(&dist).Error; err != nil {
			return &StoreError{Op: "insert distribution", Err: err}
		}
		return nil
	})
	return dist, err
}

func (s *GormStore) SetBeneficiaryStatus(ctx context.Context, id uuid.UUID, status string, at time.Time, check func(current string) error) (beneficiaryModel.BeneficiaryModel, error) {
	var b beneficiaryModel.BeneficiaryModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBeneficiaryNotFound
			}
			return &StoreError{Op: "load beneficiary", Err: err}
		}
		if check != nil {
			if err := check(b.Status); err != nil {
				return err
			}
		}
		if err := tx.Model(&b).Updates(map[string]any{"status": status, "updated_at": at}).Error; err != nil {
			return &StoreError{Op: "update beneficiary", Err: err}
		}
		b.Status = status
		b.UpdatedAt = at
		return nil
	})
	return b, err
}

func (s *GormStore) SetDistributionStatus(ctx context.Context, id uuid.UUID, status string, at time.Time, check func(current string) error) (distributionModel.DistributionModel, error) {
	var d distributionModel.DistributionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDistributionNotFound
			}
			return &StoreError{Op: "load distribution", Err: err}
		}
		if check != nil {
			if err := check(d.Status); err != nil {
				return err
			}
		}
		if err := tx.Model(&d).Updates(map[string]any{"status": status, "updated_at": at}).Error; err != nil {
			return &StoreError{Op: "update distribution", Err: err}
		}
		d.Status = status
		d.UpdatedAt = at
		return nil
	})
	return d, err
}
