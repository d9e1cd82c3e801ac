package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/domain"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

var _ repository.ProcedureCaller = (*ProcedureCaller)(nil)

// Querier lo que el caller necesita de *pgxpool.Pool o pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ProcedureCaller ejecuta los procedimientos almacenados del catálogo.
// La invocación usa notación nombrada, equivalente a EXEC [dbo].[sp] @p1=..., @p2=...:
//
//	SELECT * FROM "wms"."sp"("p1" => $1, "p2" => $2)
type ProcedureCaller struct {
	q      Querier
	schema string
	log    zerolog.Logger
}

// NewProcedureCaller construye el caller sobre el pool (o una transacción).
func NewProcedureCaller(q Querier, schema string, log zerolog.Logger) *ProcedureCaller {
	return &ProcedureCaller{q: q, schema: schema, log: log}
}

// Call devuelve la primera fila del procedimiento.
func (c *ProcedureCaller) Call(ctx context.Context, proc storedproc.Procedure, args storedproc.Args) (storedproc.Row, error) {
	rows, err := c.CallAll(ctx, proc, args)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", proc.Name, domain.ErrProcedureNoRows)
	}
	return rows[0], nil
}

// CallAll devuelve todas las filas del procedimiento.
func (c *ProcedureCaller) CallAll(ctx context.Context, proc storedproc.Procedure, args storedproc.Args) ([]storedproc.Row, error) {
	values, err := proc.Bind(args)
	if err != nil {
		return nil, err
	}
	sql := callSQL(c.schema, proc)

	start := time.Now()
	var maps []map[string]any
	rows, err := c.q.Query(ctx, sql, values...)
	if err == nil {
		maps, err = pgx.CollectRows(rows, pgx.RowToMap)
	}
	if err != nil {
		if msg, ok := raisedMessage(err); ok {
			// RAISE EXCEPTION del procedimiento: rechazo de negocio, no caída.
			c.log.Info().Str("procedure", proc.Name).Str("message", msg).Msg("procedimiento rechazó la operación")
			return []storedproc.Row{{"Status": storedproc.StatusRejected, "Message": msg}}, nil
		}
		return nil, fmt.Errorf("exec %s: %w", proc.Name, err)
	}
	c.log.Debug().Str("procedure", proc.Name).Int("rows", len(maps)).Dur("elapsed", time.Since(start)).Msg("procedimiento ejecutado")

	out := make([]storedproc.Row, len(maps))
	for i, m := range maps {
		out[i] = storedproc.Row(m)
	}
	return out, nil
}

// callSQL arma la invocación con identificadores escapados.
func callSQL(schema string, proc storedproc.Procedure) string {
	name := pgx.Identifier{proc.Name}
	if schema != "" {
		name = pgx.Identifier{schema, proc.Name}
	}
	params := make([]string, len(proc.Params))
	for i, p := range proc.Params {
		params[i] = fmt.Sprintf("%s => $%d", pgx.Identifier{p.Name}.Sanitize(), i+1)
	}
	return fmt.Sprintf("SELECT * FROM %s(%s)", name.Sanitize(), strings.Join(params, ", "))
}
