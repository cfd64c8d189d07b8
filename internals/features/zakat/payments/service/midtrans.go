package service

import (
	"errors"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"zakatconnect_backend/internals/features/zakat/payments/model"
)

// SnapClient: bagian snap.Client yang dipakai (bisa di-fake di test).
type SnapClient interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// NewSnapClient: serverKey kosong → nil (pembayaran online nonaktif).
func NewSnapClient(serverKey string, production bool) SnapClient {
	if strings.TrimSpace(serverKey) == "" {
		return nil
	}
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	var c snap.Client
	c.New(serverKey, env)
	return &c
}

var ErrSnapDisabled = errors.New("midtrans snap client not configured")

// generateSnapToken: Snap token + redirect_url untuk satu pembayaran.
func generateSnapToken(client SnapClient, p model.ZakatPaymentModel) (string, string, error) {
	if client == nil {
		return "", "", ErrSnapDisabled
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.OrderID,
			GrossAmt: p.Amount.IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: p.GiverName,
			Email: p.GiverEmail,
		},
	}

	resp, merr := client.CreateTransaction(req)
	if merr != nil {
		return "", "", merr
	}
	if resp == nil {
		return "", "", errors.New("midtrans: empty snap response")
	}
	return resp.Token, resp.RedirectURL, nil
}
