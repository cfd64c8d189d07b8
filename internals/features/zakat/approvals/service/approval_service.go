package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	beneficiaryModel "zakatconnect_backend/internals/features/zakat/beneficiaries/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
	"zakatconnect_backend/internals/helpers/events"
)

type Service struct {
	store Store
	pub   events.Publisher
	log   *zap.Logger
	now   func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store Store, pub events.Publisher, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		store: store,
		pub:   events.OrNop(pub),
		log:   log.Named("approvals"),
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Beneficiary(ctx context.Context, id uuid.UUID) (beneficiaryModel.BeneficiaryModel, error) {
	return s.store.GetBeneficiary(ctx, id)
}

func (s *Service) Distribution(ctx context.Context, id uuid.UUID) (distributionModel.DistributionModel, error) {
	return s.store.GetDistribution(ctx, id)
}

// Approve: validasi amount dulu (tanpa write), lalu status approved + distribusi baru
// dalam satu transaksi.
func (s *Service) Approve(ctx context.Context, beneficiaryID uuid.UUID, rawAmount string, approvedBy *uuid.UUID) (distributionModel.DistributionModel, error) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return distributionModel.DistributionModel{}, err
	}
	if beneficiaryID == uuid.Nil {
		return distributionModel.DistributionModel{}, &ValidationError{Field: "id", Message: "beneficiary id is required"}
	}

	dist, err := s.store.ApproveBeneficiary(ctx, ApproveInput{
		BeneficiaryID: beneficiaryID,
		Amount:        amount,
		ApprovedBy:    approvedBy,
		At:            s.now(),
	})
	if err != nil {
		s.log.Warn("approve gagal", zap.String("beneficiary_id", beneficiaryID.String()), zap.Error(err))
		return distributionModel.DistributionModel{}, err
	}

	s.log.Info("✅ beneficiary approved",
		zap.String("beneficiary_id", beneficiaryID.String()),
		zap.String("distribution_id", dist.ID.String()),
		zap.String("amount", amount.StringFixed(2)),
	)
	s.pub.Publish(ctx,
		events.NewEvent(events.TopicBeneficiaries, dist.MosqueID, beneficiaryID),
		events.NewEvent(events.TopicDistributions, dist.MosqueID, dist.ID),
	)
	return dist, nil
}

// Reject hanya kalau tombolnya memang ditawarkan untuk status saat ini.
func (s *Service) Reject(ctx context.Context, beneficiaryID uuid.UUID) (beneficiaryModel.BeneficiaryModel, error) {
	if beneficiaryID == uuid.Nil {
		return beneficiaryModel.BeneficiaryModel{}, &ValidationError{Field: "id", Message: "beneficiary id is required"}
	}
	b, err := s.store.SetBeneficiaryStatus(ctx, beneficiaryID, beneficiaryModel.BeneficiaryStatusRejected, s.now(),
		func(current string) error {
			if !ActionsFor(current).CanReject {
				return ErrActionNotAllowed
			}
			return nil
		})
	if err != nil {
		return b, err
	}

	s.log.Info("beneficiary rejected", zap.String("beneficiary_id", beneficiaryID.String()))
	s.pub.Publish(ctx, events.NewEvent(events.TopicBeneficiaries, b.MosqueID, b.ID))
	return b, nil
}

// UpdateStatus untuk distribusi. Status sama dengan yang tersimpan → no-op.
func (s *Service) UpdateStatus(ctx context.Context, distributionID uuid.UUID, newStatus string) (distributionModel.DistributionModel, error) {
	newStatus = distributionModel.NormalizeStatus(newStatus)
	if !distributionModel.IsValidStatus(newStatus) {
		return distributionModel.DistributionModel{}, &ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join([]string{
				distributionModel.DistributionStatusPending,
				distributionModel.DistributionStatusApproved,
				distributionModel.DistributionStatusRejected,
			}, ", "),
		}
	}

	current, err := s.store.GetDistribution(ctx, distributionID)
	if err != nil {
		return current, err
	}
	if distributionModel.NormalizeStatus(current.Status) == newStatus {
		return current, nil
	}

	d, err := s.store.SetDistributionStatus(ctx, distributionID, newStatus, s.now(), func(cur string) error {
		if !CanTransition(cur, newStatus) {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return d, err
	}

	s.log.Info("distribution status updated",
		zap.String("distribution_id", distributionID.String()),
		zap.String("from", current.Status),
		zap.String("to", newStatus),
	)
	s.pub.Publish(ctx, events.NewEvent(events.TopicDistributions, d.MosqueID, d.ID))
	return d, nil
}
