package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"zakatconnect_backend/internals/databases/dbtest"
	collectionModel "zakatconnect_backend/internals/features/zakat/collections/model"
	giverModel "zakatconnect_backend/internals/features/zakat/givers/model"
	"zakatconnect_backend/internals/features/zakat/payments/model"
	"zakatconnect_backend/internals/helpers/events"
)

const serverKey = "SB-Mid-server-test"

type fakeSnap struct {
	req *snap.Request
	err *midtrans.Error
}

func (f *fakeSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &snap.Response{Token: "snap-token-1", RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token-1"}, nil
}

type recorder struct {
	mu  sync.Mutex
	evs []events.Event
}

func (r *recorder) Publish(_ context.Context, evs ...events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evs = append(r.evs, evs...)
}

func newService(t *testing.T, db *gorm.DB, sc SnapClient, pub events.Publisher) *Service {
	t.Helper()
	s := New(db, sc, serverKey, pub, nil)
	s.Now = func() time.Time { return time.Date(2024, 4, 10, 8, 0, 0, 0, time.UTC) }
	return s
}

func seedPayment(t *testing.T, db *gorm.DB, mosqueID uuid.UUID, amount int64, email string) model.ZakatPaymentModel {
	t.Helper()
	p := model.ZakatPaymentModel{
		MosqueID:   mosqueID,
		GiverName:  "Abdullah",
		GiverEmail: email,
		Amount:     decimal.NewFromInt(amount),
		OrderID:    "ZAKAT-TEST-" + uuid.NewString()[:8],
		Status:     model.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func signed(orderID, status, gross string) Notification {
	n := Notification{
		OrderID:           orderID,
		StatusCode:        "200",
		GrossAmount:       gross,
		TransactionStatus: status,
		PaymentType:       "qris",
		SettlementTime:    "2024-04-10 14:30:00",
	}
	n.SignatureKey = Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	return n
}

func TestSignature(t *testing.T) {
	n := signed("ZAKAT-1", "settlement", "50000.00")
	assert.Len(t, n.SignatureKey, 128)
	assert.True(t, n.VerifySignature(serverKey))
	assert.False(t, n.VerifySignature("other-key"))

	n.GrossAmount = "1.00"
	assert.False(t, n.VerifySignature(serverKey))
	assert.False(t, Notification{OrderID: "x"}.VerifySignature(serverKey))
}

func TestTargetStatus(t *testing.T) {
	cases := map[string]string{
		"settlement": model.PaymentStatusPaid,
		"expire":     model.PaymentStatusExpired,
		"cancel":     model.PaymentStatusCanceled,
		"deny":       model.PaymentStatusCanceled,
		"pending":    "",
		"refund":     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Notification{TransactionStatus: in}.TargetStatus(), in)
	}

	fraud := map[string]string{
		"accept":    model.PaymentStatusPaid,
		"challenge": model.PaymentStatusPending,
		"deny":      model.PaymentStatusCanceled,
		"":          model.PaymentStatusCanceled,
	}
	for in, want := range fraud {
		assert.Equal(t, want, Notification{TransactionStatus: "capture", FraudStatus: in}.TargetStatus(), "capture/"+in)
	}
}

func TestCreate(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	fs := &fakeSnap{}
	s := newService(t, db, fs, nil)

	co, err := s.Create(context.Background(), CreateInput{MosqueID: mosqueID, GiverName: "Abdullah", Amount: decimal.NewFromInt(250000)})
	require.NoError(t, err)
	assert.Equal(t, "snap-token-1", co.SnapToken)
	assert.Equal(t, model.PaymentStatusPending, co.Payment.Status)
	require.NotNil(t, fs.req)
	assert.EqualValues(t, 250000, fs.req.TransactionDetails.GrossAmt)
	assert.Equal(t, co.Payment.OrderID, fs.req.TransactionDetails.OrderID)

	_, err = s.Create(context.Background(), CreateInput{MosqueID: uuid.New(), GiverName: "x", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrMosqueNotFound)

	_, err = newService(t, db, nil, nil).Create(context.Background(), CreateInput{MosqueID: mosqueID, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrSnapDisabled)
}

func TestCreate_SnapFailureCancelsPayment(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	s := newService(t, db, &fakeSnap{err: &midtrans.Error{Message: "boom", StatusCode: 500}}, nil)

	_, err := s.Create(context.Background(), CreateInput{MosqueID: mosqueID, GiverName: "x", Amount: decimal.NewFromInt(10000)})
	require.Error(t, err)

	var p model.ZakatPaymentModel
	require.NoError(t, db.First(&p).Error)
	assert.Equal(t, model.PaymentStatusCanceled, p.Status)
}

func TestHandleNotification_SettlementIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	p := seedPayment(t, db, mosqueID, 50000, "Abdullah@Mail.com")
	pub := &recorder{}
	s := newService(t, db, &fakeSnap{}, pub)

	n := signed(p.OrderID, "settlement", "50000.00")
	out, err := s.HandleNotification(context.Background(), n)
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.True(t, out.Collected)
	assert.Equal(t, model.PaymentStatusPaid, out.Status)

	out, err = s.HandleNotification(context.Background(), n)
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.False(t, out.Collected)

	var cols []collectionModel.CollectionModel
	require.NoError(t, db.Find(&cols).Error)
	require.Len(t, cols, 1)
	assert.Equal(t, collectionModel.CollectionTypeCash, cols[0].Type)
	assert.True(t, decimal.NewFromInt(50000).Equal(cols[0].Amount))
	assert.Equal(t, mosqueID, cols[0].MosqueID)
	assert.Equal(t, "2024-04-10", cols[0].CollectedOn.Format("2006-01-02"))

	var got model.ZakatPaymentModel
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, model.PaymentStatusPaid, got.Status)
	require.NotNil(t, got.CollectionID)
	assert.Equal(t, cols[0].ID, *got.CollectionID)
	require.NotNil(t, got.PaidAt)

	// muzakki dibuat dari email (lowercase) dan di-link ke collection
	var givers []giverModel.GiverModel
	require.NoError(t, db.Find(&givers).Error)
	require.Len(t, givers, 1)
	assert.Equal(t, "abdullah@mail.com", givers[0].Email)
	require.NotNil(t, cols[0].GiverID)
	assert.Equal(t, givers[0].ID, *cols[0].GiverID)

	require.Len(t, pub.evs, 2)
	assert.Equal(t, events.TopicPayments, pub.evs[0].Type)
	assert.Equal(t, events.TopicCollections, pub.evs[1].Type)
}

func TestHandleNotification_Rejections(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	p := seedPayment(t, db, mosqueID, 50000, "")
	s := newService(t, db, &fakeSnap{}, nil)

	bad := signed(p.OrderID, "settlement", "50000.00")
	bad.SignatureKey = "deadbeef"
	_, err := s.HandleNotification(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = s.HandleNotification(context.Background(), signed(p.OrderID, "settlement", "10.00"))
	assert.ErrorIs(t, err, ErrAmountMismatch)

	_, err = s.HandleNotification(context.Background(), signed("ZAKAT-UNKNOWN", "settlement", "50000.00"))
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	var count int64
	require.NoError(t, db.Model(&collectionModel.CollectionModel{}).Count(&count).Error)
	assert.Zero(t, count)

	var got model.ZakatPaymentModel
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, model.PaymentStatusPending, got.Status)
}

func TestHandleNotification_ExpireAndCancel(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	s := newService(t, db, &fakeSnap{}, nil)

	expired := seedPayment(t, db, mosqueID, 20000, "")
	out, err := s.HandleNotification(context.Background(), signed(expired.OrderID, "expire", "20000.00"))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusExpired, out.Status)

	// final: settlement terlambat tidak mengubah apa pun
	out, err = s.HandleNotification(context.Background(), signed(expired.OrderID, "settlement", "20000.00"))
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, model.PaymentStatusExpired, out.Status)

	denied := seedPayment(t, db, mosqueID, 20000, "")
	out, err = s.HandleNotification(context.Background(), signed(denied.OrderID, "deny", "20000.00"))
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCanceled, out.Status)

	ignored := seedPayment(t, db, mosqueID, 20000, "")
	out, err = s.HandleNotification(context.Background(), signed(ignored.OrderID, "pending", "20000.00"))
	require.NoError(t, err)
	assert.False(t, out.Changed)

	var count int64
	require.NoError(t, db.Model(&collectionModel.CollectionModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHandleNotification_CaptureFraudStatus(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "alfalah")
	s := newService(t, db, &fakeSnap{}, nil)

	denied := seedPayment(t, db, mosqueID, 50000, "")
	n := signed(denied.OrderID, "capture", "50000.00")
	n.FraudStatus = "deny"
	out, err := s.HandleNotification(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCanceled, out.Status)
	assert.False(t, out.Collected)

	var count int64
	require.NoError(t, db.Model(&collectionModel.CollectionModel{}).Count(&count).Error)
	assert.Zero(t, count)

	accepted := seedPayment(t, db, mosqueID, 50000, "")
	n = signed(accepted.OrderID, "capture", "50000.00")
	n.FraudStatus = "accept"
	out, err = s.HandleNotification(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, out.Status)
	assert.True(t, out.Collected)

	require.NoError(t, db.Model(&collectionModel.CollectionModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
