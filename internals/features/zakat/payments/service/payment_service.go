package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	mosqueModel "zakatconnect_backend/internals/features/mosques/mosques/model"
	collectionModel "zakatconnect_backend/internals/features/zakat/collections/model"
	giverModel "zakatconnect_backend/internals/features/zakat/givers/model"
	"zakatconnect_backend/internals/features/zakat/payments/model"
	"zakatconnect_backend/internals/helpers/dbtime"
	"zakatconnect_backend/internals/helpers/events"
)

var (
	ErrMosqueNotFound   = errors.New("mosque not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrInvalidSignature = errors.New("invalid midtrans signature")
	ErrAmountMismatch   = errors.New("gross amount does not match payment")
)

type Service struct {
	DB        *gorm.DB
	Snap      SnapClient
	ServerKey string
	Pub       events.Publisher
	Log       *zap.Logger
	Loc       *time.Location
	Now       func() time.Time
}

func New(db *gorm.DB, snapClient SnapClient, serverKey string, pub events.Publisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.UTC
	}
	return &Service{
		DB:        db,
		Snap:      snapClient,
		ServerKey: serverKey,
		Pub:       events.OrNop(pub),
		Log:       log.Named("payments"),
		Loc:       loc,
		Now:       time.Now,
	}
}

func (s *Service) Enabled() bool { return s.Snap != nil && s.ServerKey != "" }

type CreateInput struct {
	MosqueID   uuid.UUID
	GiverName  string
	GiverEmail string
	Amount     decimal.Decimal
}

type Checkout struct {
	Payment     model.ZakatPaymentModel
	SnapToken   string
	RedirectURL string
}

func newOrderID(now time.Time) string {
	return fmt.Sprintf("ZAKAT-%d-%s", now.Unix(), strings.ToUpper(uuid.NewString()[:8]))
}

// Create: simpan pending → minta Snap token → simpan token.
// Gagal minta token → baris ditandai canceled supaya tidak menggantung.
func (s *Service) Create(ctx context.Context, in CreateInput) (Checkout, error) {
	if !s.Enabled() {
		return Checkout{}, ErrSnapDisabled
	}
	db := s.DB.WithContext(ctx)

	var cnt int64
	if err := db.Model(&mosqueModel.MosqueModel{}).Where("id = ?", in.MosqueID).Count(&cnt).Error; err != nil {
		return Checkout{}, err
	}
	if cnt == 0 {
		return Checkout{}, ErrMosqueNotFound
	}

	p := model.ZakatPaymentModel{
		MosqueID:   in.MosqueID,
		GiverName:  in.GiverName,
		GiverEmail: in.GiverEmail,
		Amount:     in.Amount,
		OrderID:    newOrderID(s.Now()),
		Status:     model.PaymentStatusPending,
	}
	if err := db.Create(&p).Error; err != nil {
		return Checkout{}, err
	}

	token, redirectURL, err := generateSnapToken(s.Snap, p)
	if err != nil {
		s.Log.Error("generate snap token gagal", zap.String("order_id", p.OrderID), zap.Error(err))
		if uerr := db.Model(&p).Update("status", model.PaymentStatusCanceled).Error; uerr != nil {
			s.Log.Warn("tandai payment canceled gagal", zap.String("order_id", p.OrderID), zap.Error(uerr))
		}
		return Checkout{}, err
	}
	if err := db.Model(&p).Update("payment_token", token).Error; err != nil {
		return Checkout{}, err
	}
	p.PaymentToken = token

	s.Log.Info("💳 zakat payment created", zap.String("order_id", p.OrderID), zap.String("amount", p.Amount.StringFixed(2)))
	return Checkout{Payment: p, SnapToken: token, RedirectURL: redirectURL}, nil
}

func (s *Service) GetByOrderID(ctx context.Context, orderID string) (model.ZakatPaymentModel, error) {
	var p model.ZakatPaymentModel
	err := s.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrPaymentNotFound
	}
	return p, err
}

type Outcome struct {
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	Changed   bool   `json:"changed"`
	Collected bool   `json:"collected"`
}

// HandleNotification memproses HTTP notification Midtrans.
//   - settlement / capture(accept) → paid + satu collection cash (sekali saja)
//   - capture(challenge) → tetap pending, capture lain → canceled
//   - expire → expired, cancel/deny → canceled
//   - status lain diabaikan; payment yang sudah paid tidak diturunkan
func (s *Service) HandleNotification(ctx context.Context, n Notification) (Outcome, error) {
	n.Normalize()
	if !n.VerifySignature(s.ServerKey) {
		return Outcome{}, ErrInvalidSignature
	}
	out := Outcome{OrderID: n.OrderID}

	target := n.TargetStatus()
	if target == "" || target == model.PaymentStatusPending {
		s.Log.Info("notifikasi midtrans diabaikan",
			zap.String("order_id", n.OrderID),
			zap.String("transaction_status", n.TransactionStatus),
		)
		return out, nil
	}

	var payment model.ZakatPaymentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Where("order_id = ?", n.OrderID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		out.Status = payment.Status

		if !payment.IsOpen() {
			// sudah final (paid/expired/canceled) → idempotent
			return nil
		}

		if target != model.PaymentStatusPaid {
			if err := tx.Model(&payment).Update("status", target).Error; err != nil {
				return err
			}
			out.Status, out.Changed = target, true
			return nil
		}

		gross, err := decimal.NewFromString(n.GrossAmount)
		if err != nil || !gross.Equal(payment.Amount) {
			return ErrAmountMismatch
		}

		paidAt := n.PaidAt(s.Loc, s.Now())
		giverID, err := s.resolveGiver(tx, payment)
		if err != nil {
			return err
		}
		col := collectionModel.CollectionModel{
			MosqueID:    payment.MosqueID,
			GiverID:     giverID,
			Amount:      payment.Amount,
			Type:        collectionModel.CollectionTypeCash,
			CollectedOn: dbtime.DateOnly(paidAt, s.Loc),
			Notes:       "Pembayaran online " + payment.OrderID,
		}
		if err := tx.Create(&col).Error; err != nil {
			return err
		}

		meta := map[string]any{}
		for k, v := range payment.Meta {
			meta[k] = v
		}
		meta["payment_type"] = n.PaymentType
		meta["transaction_id"] = n.TransactionID

		if err := tx.Model(&payment).Updates(map[string]any{
			"status":        model.PaymentStatusPaid,
			"paid_at":       paidAt,
			"collection_id": col.ID,
			"giver_id":      giverID,
			"meta":          datatypes.JSONMap(meta),
		}).Error; err != nil {
			return err
		}
		payment.CollectionID = &col.ID
		out.Status, out.Changed, out.Collected = model.PaymentStatusPaid, true, true
		return nil
	})
	if err != nil {
		return out, err
	}

	if out.Changed {
		s.Log.Info("✅ zakat payment updated",
			zap.String("order_id", n.OrderID),
			zap.String("status", out.Status),
			zap.Bool("collected", out.Collected),
		)
		evs := []events.Event{events.NewEvent(events.TopicPayments, payment.MosqueID, payment.ID)}
		if out.Collected && payment.CollectionID != nil {
			evs = append(evs, events.NewEvent(events.TopicCollections, payment.MosqueID, *payment.CollectionID))
		}
		s.Pub.Publish(ctx, evs...)
	}
	return out, nil
}

// resolveGiver: pakai giver_id yang ada; kalau ada email, cari/buat muzakki
// dengan email itu di masjid yang sama. Tanpa email → anonim.
func (s *Service) resolveGiver(tx *gorm.DB, p model.ZakatPaymentModel) (*uuid.UUID, error) {
	if p.GiverID != nil {
		return p.GiverID, nil
	}
	email := strings.ToLower(strings.TrimSpace(p.GiverEmail))
	if email == "" {
		return nil, nil
	}

	var g giverModel.GiverModel
	err := tx.Where("mosque_id = ? AND LOWER(email) = ?", p.MosqueID, email).First(&g).Error
	switch {
	case err == nil:
		return &g.ID, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	mid := p.MosqueID
	g = giverModel.GiverModel{MosqueID: &mid, Name: p.GiverName, Email: email}
	if err := tx.Create(&g).Error; err != nil {
		return nil, err
	}
	return &g.ID, nil
}
