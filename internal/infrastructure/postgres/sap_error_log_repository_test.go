package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

type stubProcs struct {
	rows []storedproc.Row
	args storedproc.Args
}

func (s *stubProcs) Call(ctx context.Context, proc storedproc.Procedure, args storedproc.Args) (storedproc.Row, error) {
	rows, err := s.CallAll(ctx, proc, args)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (s *stubProcs) CallAll(_ context.Context, _ storedproc.Procedure, args storedproc.Args) ([]storedproc.Row, error) {
	s.args = args
	return s.rows, nil
}

func TestInsertSAPErrorLog_RechazoDelProcedimientoEsError(t *testing.T) {
	procs := &stubProcs{rows: []storedproc.Row{{"Status": "F", "Message": "tabla bloqueada"}}}
	repo := NewSAPErrorLogRepository(procs, nil, "wms")

	err := repo.Insert(context.Background(), entity.SAPErrorLog{PalletBarcode: "PAL001", Quantity: decimal.NewFromInt(5)})
	assert.ErrorContains(t, err, "tabla bloqueada")
	assert.Equal(t, "PAL001", procs.args["pallet_barcode"])
}

func TestInsertSAPErrorLog_Aceptado(t *testing.T) {
	procs := &stubProcs{rows: []storedproc.Row{{"Status": "T"}}}
	repo := NewSAPErrorLogRepository(procs, nil, "wms")
	assert.NoError(t, repo.Insert(context.Background(), entity.SAPErrorLog{PalletBarcode: "PAL001"}))

	procs.rows = nil
	assert.NoError(t, repo.Insert(context.Background(), entity.SAPErrorLog{PalletBarcode: "PAL001"}))
}

func TestListQueries_FiltroYPaginacion(t *testing.T) {
	repo := NewSAPErrorLogRepository(&stubProcs{}, nil, "wms")
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	count, page := repo.listQueries(entity.SAPErrorLogFilter{
		From: &from, To: &to, GMCode: "04", Limit: 20, Offset: 40,
	})

	countSQL, countArgs, err := count.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT COUNT(*) FROM wms.sap_error_log WHERE (created_at >= $1 AND created_at < $2 AND gm_code = $3)",
		countSQL)
	assert.Equal(t, []any{from, to, "04"}, countArgs)

	pageSQL, pageArgs, err := page.ToSql()
	require.NoError(t, err)
	assert.Contains(t, pageSQL, "WHERE (created_at >= $1 AND created_at < $2 AND gm_code = $3)")
	assert.Contains(t, pageSQL, "ORDER BY created_at DESC, id DESC LIMIT 20 OFFSET 40")
	assert.Equal(t, countArgs, pageArgs)
}

func TestListQueries_ColumnasNulasConCoalesce(t *testing.T) {
	repo := NewSAPErrorLogRepository(&stubProcs{}, nil, "")
	_, page := repo.listQueries(entity.SAPErrorLogFilter{})

	sql, args, err := page.ToSql()
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Contains(t, sql, "FROM sap_error_log")
	assert.Contains(t, sql, "COALESCE(move_batch, '') AS move_batch")
	assert.Contains(t, sql, "COALESCE(spec_stock, '') AS spec_stock")
	assert.Contains(t, sql, "COALESCE(order_no, '') AS order_no")
	assert.Contains(t, sql, "COALESCE(quantity, 0) AS quantity")
	assert.NotContains(t, sql, "LIMIT")
}
