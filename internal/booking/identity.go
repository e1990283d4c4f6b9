package booking

import "context"

// Account é a visão mínima da conta de cliente usada pelo fluxo guiado.
type Account struct {
	ID    uint
	Name  string
	Email string
	Phone string
}

// IdentityService é o colaborador externo de identidade. Erros de negócio
// esperados: "already_registered" no SignUp e "invalid_credentials" no
// SignIn.
type IdentityService interface {
	// LookupByContact busca por telefone ou e-mail; desconhecido retorna
	// (nil, nil), não erro.
	LookupByContact(ctx context.Context, salonID uint, contact string) (*Account, error)

	SignUp(ctx context.Context, salonID uint, name, email, password string) (*Account, error)

	SignIn(ctx context.Context, salonID uint, email, password string) (*Account, error)
}
