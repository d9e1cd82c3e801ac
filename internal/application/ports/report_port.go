package ports

import "github.com/jhoicas/wms-sap-api/internal/domain/entity"

// ReportRenderer genera el archivo de exportación del log de errores SAP.
type ReportRenderer interface {
	SAPErrorWorkbook(rows []entity.SAPErrorLog) ([]byte, error)
}
