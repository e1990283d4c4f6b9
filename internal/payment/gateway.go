package payment

import "context"

// Status espelha os estados relevantes do provedor.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
	StatusCanceled = "cancelled"
)

const (
	MethodPix  = "pix"
	MethodCard = "card"
)

// Order é o pedido de cobrança de um agendamento. ExternalReference carrega
// o id do agendamento para o webhook fechar o ciclo.
type Order struct {
	Amount            float64
	Description       string
	PayerEmail        string
	PayerName         string
	ExternalReference string

	Method    string
	CardToken string
}

// Result cobre tanto a aprovação síncrona (cartão) quanto a apresentação
// de método assíncrono (pix: QR e copia-e-cola).
type Result struct {
	PaymentID         string
	Status            string
	ExternalReference string

	QRCode       string
	QRCodeBase64 string
	CopyPaste    string
	TicketURL    string
}

// Gateway é o colaborador externo de pagamento, por salão (cada salão tem
// suas próprias credenciais).
type Gateway interface {
	CreateOrder(ctx context.Context, o Order) (*Result, error)
	GetPayment(ctx context.Context, paymentID string) (*Result, error)
}

// Factory constrói o gateway com as credenciais do salão; retorna nil
// quando o salão não tem gateway configurado (pagamento no local).
type Factory func(accessToken string) (Gateway, error)

// NewFactory é a Factory de produção, sobre o adaptador MercadoPago.
func NewFactory() Factory {
	return func(accessToken string) (Gateway, error) {
		if accessToken == "" {
			return nil, nil
		}
		return NewMercadoPago(accessToken)
	}
}
