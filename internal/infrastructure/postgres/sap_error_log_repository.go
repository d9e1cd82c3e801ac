package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

var _ repository.SAPErrorLogRepository = (*SAPErrorLogRepo)(nil)

// sapErrorLogTextColumns admiten NULL en la tabla; se leen con COALESCE para que una
// fila incompleta no rompa el escaneo de toda la página.
var sapErrorLogTextColumns = []string{
	"pallet_barcode", "order_no", "material", "batch", "plant", "storage_location",
	"move_type", "stock_type", "move_batch", "move_storage_location", "spec_stock",
	"movement_indicator", "unit", "unit_iso", "error_message", "gm_code", "created_by",
}

var sapErrorLogColumns = func() []string {
	cols := []string{"id"}
	for _, c := range sapErrorLogTextColumns {
		cols = append(cols, fmt.Sprintf("COALESCE(%s, '') AS %s", c, c))
	}
	return append(cols, "COALESCE(quantity, 0) AS quantity", "created_at")
}()

// SAPErrorLogRepo escribe el log con su procedimiento y lo lee directamente de la tabla
// para la pantalla de conciliación.
type SAPErrorLogRepo struct {
	procs   repository.ProcedureCaller
	q       Querier
	table   string
	builder squirrel.StatementBuilderType
}

// NewSAPErrorLogRepository construye el repositorio.
func NewSAPErrorLogRepository(procs repository.ProcedureCaller, q Querier, schema string) *SAPErrorLogRepo {
	table := "sap_error_log"
	if schema != "" {
		table = schema + "." + table
	}
	return &SAPErrorLogRepo{
		procs:   procs,
		q:       q,
		table:   table,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert registra una posición no contabilizada.
func (r *SAPErrorLogRepo) Insert(ctx context.Context, row entity.SAPErrorLog) error {
	rows, err := r.procs.CallAll(ctx, storedproc.SAPErrorLogInsert, storedproc.Args{
		"pallet_barcode":        row.PalletBarcode,
		"order_no":              row.OrderID,
		"material":              row.Material,
		"batch":                 row.Batch,
		"plant":                 row.Plant,
		"storage_location":      row.StorageLocation,
		"move_type":             row.MoveType,
		"stock_type":            row.StockType,
		"move_batch":            row.MoveBatch,
		"move_storage_location": row.MoveStorageLocation,
		"spec_stock":            row.SpecialStock,
		"movement_indicator":    row.MovementIndicator,
		"unit":                  row.Unit,
		"unit_iso":              row.UnitISO,
		"quantity":              row.Quantity,
		"error_message":         truncateRunes(row.ErrorMessage, 1000),
		"gm_code":               row.GMCode,
		"created_by":            row.CreatedBy,
	})
	if err != nil {
		return fmt.Errorf("insert sap error log: %w", err)
	}
	if len(rows) > 0 && rows[0].Rejected() {
		return fmt.Errorf("insert sap error log: %s", rows[0].Message())
	}
	return nil
}

// List devuelve la página pedida (más reciente primero) y el total que cumple el filtro.
func (r *SAPErrorLogRepo) List(ctx context.Context, f entity.SAPErrorLogFilter) ([]entity.SAPErrorLog, int, error) {
	countQuery, pageQuery := r.listQueries(f)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := pgxscan.Get(ctx, r.q, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count sap error log: %w", err)
	}

	sql, args, err := pageQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}
	var rows []entity.SAPErrorLog
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list sap error log: %w", err)
	}
	return rows, total, nil
}

// listQueries arma el conteo y la página con el mismo filtro. To es exclusivo.
func (r *SAPErrorLogRepo) listQueries(f entity.SAPErrorLogFilter) (count, page squirrel.SelectBuilder) {
	where := squirrel.And{}
	if f.From != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		where = append(where, squirrel.Lt{"created_at": *f.To})
	}
	if f.PalletBarcode != "" {
		where = append(where, squirrel.Eq{"pallet_barcode": f.PalletBarcode})
	}
	if f.Material != "" {
		where = append(where, squirrel.Eq{"material": f.Material})
	}
	if f.GMCode != "" {
		where = append(where, squirrel.Eq{"gm_code": f.GMCode})
	}

	count = r.builder.Select("COUNT(*)").From(r.table).Where(where)
	page = r.builder.Select(sapErrorLogColumns...).From(r.table).Where(where).OrderBy("created_at DESC", "id DESC")
	if f.Limit > 0 {
		page = page.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		page = page.Offset(uint64(f.Offset))
	}
	return count, page
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
