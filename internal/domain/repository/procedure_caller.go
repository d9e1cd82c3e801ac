package repository

import (
	"context"

	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

// ProcedureCaller ejecuta procedimientos almacenados con parámetros tipados.
type ProcedureCaller interface {
	// Call devuelve la primera fila del resultado (domain.ErrProcedureNoRows si no hay).
	Call(ctx context.Context, proc storedproc.Procedure, args storedproc.Args) (storedproc.Row, error)
	// CallAll devuelve todas las filas del resultado.
	CallAll(ctx context.Context, proc storedproc.Procedure, args storedproc.Args) ([]storedproc.Row, error)
}
