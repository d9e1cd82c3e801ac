package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// raiseException SQLSTATE P0001: RAISE EXCEPTION sin código explícito.
const raiseException = "P0001"

// raisedMessage devuelve el mensaje si el error viene de un RAISE EXCEPTION del procedimiento.
func raisedMessage(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == raiseException {
		return pgErr.Message, true
	}
	return "", false
}
