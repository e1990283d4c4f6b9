package httperr

import "errors"

// BusinessError é um erro de regra de negócio identificado por código
// estável ("time_conflict", "invalid_status_transition", ...), tratado no passo que o
// produziu e nunca propagado como falha genérica.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
