package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"time"

	"zakatconnect_backend/internals/features/zakat/payments/model"
)

// Notification: field HTTP notification Midtrans yang dipakai.
type Notification struct {
	OrderID           string `json:"order_id" form:"order_id"`
	StatusCode        string `json:"status_code" form:"status_code"`
	GrossAmount       string `json:"gross_amount" form:"gross_amount"`
	SignatureKey      string `json:"signature_key" form:"signature_key"`
	TransactionStatus string `json:"transaction_status" form:"transaction_status"`
	FraudStatus       string `json:"fraud_status" form:"fraud_status"`
	PaymentType       string `json:"payment_type" form:"payment_type"`
	TransactionID     string `json:"transaction_id" form:"transaction_id"`
	TransactionTime   string `json:"transaction_time" form:"transaction_time"`
	SettlementTime    string `json:"settlement_time" form:"settlement_time"`
}

func (n *Notification) Normalize() {
	n.OrderID = strings.TrimSpace(n.OrderID)
	n.StatusCode = strings.TrimSpace(n.StatusCode)
	n.GrossAmount = strings.TrimSpace(n.GrossAmount)
	n.SignatureKey = strings.ToLower(strings.TrimSpace(n.SignatureKey))
	n.TransactionStatus = strings.ToLower(strings.TrimSpace(n.TransactionStatus))
	n.FraudStatus = strings.ToLower(strings.TrimSpace(n.FraudStatus))
	n.PaymentType = strings.TrimSpace(n.PaymentType)
}

// Signature: sha512(order_id + status_code + gross_amount + server_key), hex.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func (n Notification) VerifySignature(serverKey string) bool {
	if n.SignatureKey == "" || serverKey == "" {
		return false
	}
	want := Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(n.SignatureKey)) == 1
}

// TargetStatus: status internal dari transaction_status. "" → diabaikan.
// capture: accept → paid, challenge → tetap pending, selain itu → canceled.
func (n Notification) TargetStatus() string {
	switch n.TransactionStatus {
	case "capture":
		switch n.FraudStatus {
		case "accept":
			return model.PaymentStatusPaid
		case "challenge":
			return model.PaymentStatusPending
		default:
			return model.PaymentStatusCanceled
		}
	case "settlement":
		return model.PaymentStatusPaid
	case "expire":
		return model.PaymentStatusExpired
	case "cancel", "deny":
		return model.PaymentStatusCanceled
	default:
		return ""
	}
}

// PaidAt: settlement_time → transaction_time → fallback. Waktu Midtrans dalam WIB.
func (n Notification) PaidAt(loc *time.Location, fallback time.Time) time.Time {
	const layout = "2006-01-02 15:04:05"
	if loc == nil {
		loc = time.UTC
	}
	for _, s := range []string{n.SettlementTime, n.TransactionTime} {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return fallback
}
