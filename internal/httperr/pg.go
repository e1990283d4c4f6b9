package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// IsExclusionConflict reconhece a violação da constraint de exclusão de
// horários do Postgres — o sinal canônico de conflito sob corrida, que
// rebaixa a pré-checagem da aplicação a otimização de UX.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
	}
	return false
}
