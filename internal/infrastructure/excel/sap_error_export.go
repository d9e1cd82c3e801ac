// Package excel genera los reportes XLSX de la API.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/wms-sap-api/internal/application/ports"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

var _ ports.ReportRenderer = Renderer{}

const sapErrorSheet = "ErroresSAP"

var sapErrorHeaders = []string{
	"Fecha", "Pallet", "Orden", "Material", "Lote", "Centro", "Almacén", "Clase mov.",
	"Tipo stock", "Lote destino", "Almacén destino", "Cantidad", "Unidad", "GM", "Error", "Usuario",
}

// SAPErrorWorkbook escribe las filas del log de errores SAP en un libro XLSX.
func SAPErrorWorkbook(rows []entity.SAPErrorLog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sapErrorSheet); err != nil {
		return nil, err
	}
	for i, h := range sapErrorHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sapErrorSheet, cell, h); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("estilo de encabezado: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(sapErrorHeaders), 1)
	if err := f.SetCellStyle(sapErrorSheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("estilo de encabezado: %w", err)
	}

	// La cantidad va como texto exacto: es la que se reingresa en SAP al conciliar.
	for i, r := range rows {
		values := []any{
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.PalletBarcode, r.OrderID, r.Material, r.Batch,
			r.Plant, r.StorageLocation, r.MoveType, r.StockType, r.MoveBatch, r.MoveStorageLocation,
			r.Quantity.String(), r.Unit, r.GMCode, r.ErrorMessage, r.CreatedBy,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sapErrorSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// Renderer adapta los reportes XLSX al puerto de la capa de aplicación.
type Renderer struct{}

// SAPErrorWorkbook ver la función del paquete.
func (Renderer) SAPErrorWorkbook(rows []entity.SAPErrorLog) ([]byte, error) {
	return SAPErrorWorkbook(rows)
}
