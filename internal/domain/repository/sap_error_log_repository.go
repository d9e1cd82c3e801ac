package repository

import (
	"context"

	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// SAPErrorLogRepository persistencia del log de errores SAP (solo inserción y lectura).
type SAPErrorLogRepository interface {
	Insert(ctx context.Context, row entity.SAPErrorLog) error
	List(ctx context.Context, filter entity.SAPErrorLogFilter) ([]entity.SAPErrorLog, int, error)
}
