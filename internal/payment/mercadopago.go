package payment

import (
	"context"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/studiobela/salon-scheduler/internal/httperr"
)

// MercadoPago implementa Gateway sobre o SDK oficial.
type MercadoPago struct {
	client mppayment.Client
}

// NewMercadoPago é a Factory usada em produção.
func NewMercadoPago(accessToken string) (Gateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPago{client: mppayment.NewClient(cfg)}, nil
}

func (g *MercadoPago) CreateOrder(ctx context.Context, o Order) (*Result, error) {
	req := mppayment.Request{
		TransactionAmount: o.Amount,
		Description:       o.Description,
		ExternalReference: o.ExternalReference,
		Payer: &mppayment.PayerRequest{
			Email:     o.PayerEmail,
			FirstName: o.PayerName,
		},
	}

	switch o.Method {
	case MethodPix:
		req.PaymentMethodID = MethodPix
	case MethodCard:
		req.Token = o.CardToken
		req.Installments = 1
	default:
		return nil, httperr.ErrBusiness("unsupported_payment_method")
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return fromResponse(resp), nil
}

func (g *MercadoPago) GetPayment(ctx context.Context, paymentID string) (*Result, error) {
	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_payment_id")
	}

	resp, err := g.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return fromResponse(resp), nil
}

func fromResponse(resp *mppayment.Response) *Result {
	tx := resp.PointOfInteraction.TransactionData

	return &Result{
		PaymentID:         strconv.Itoa(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		QRCode:            tx.QRCode,
		QRCodeBase64:      tx.QRCodeBase64,
		CopyPaste:         tx.QRCode,
		TicketURL:         tx.TicketURL,
	}
}

var _ Gateway = (*MercadoPago)(nil)
