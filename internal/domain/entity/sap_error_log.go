package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SAPErrorLog fila del log de errores SAP. Se escribe si y solo si la posición no obtuvo
// documento de material; esta capa nunca la modifica ni la borra (conciliación manual).
type SAPErrorLog struct {
	ID                  int64           `db:"id"`
	PalletBarcode       string          `db:"pallet_barcode"`
	OrderID             string          `db:"order_no"`
	Material            string          `db:"material"`
	Batch               string          `db:"batch"`
	Plant               string          `db:"plant"`
	StorageLocation     string          `db:"storage_location"`
	MoveType            string          `db:"move_type"`
	StockType           string          `db:"stock_type"`
	MoveBatch           string          `db:"move_batch"`
	MoveStorageLocation string          `db:"move_storage_location"`
	SpecialStock        string          `db:"spec_stock"`
	MovementIndicator   string          `db:"movement_indicator"`
	Unit                string          `db:"unit"`
	UnitISO             string          `db:"unit_iso"`
	Quantity            decimal.Decimal `db:"quantity"`
	ErrorMessage        string          `db:"error_message"`
	GMCode              string          `db:"gm_code"`
	CreatedBy           string          `db:"created_by"`
	CreatedAt           time.Time       `db:"created_at"`
}

// NewSAPErrorLog construye la fila a partir de la posición fallida.
func NewSAPErrorLog(item GoodsMovementItem, gmCode, message, createdBy string) SAPErrorLog {
	return SAPErrorLog{
		PalletBarcode:       item.PalletBarcode,
		OrderID:             item.OrderID,
		Material:            item.Material,
		Batch:               item.Batch,
		Plant:               item.Plant,
		StorageLocation:     item.StorageLocation,
		MoveType:            item.MoveType,
		StockType:           item.StockType,
		MoveBatch:           item.MoveBatch,
		MoveStorageLocation: item.MoveStorageLocation,
		SpecialStock:        item.SpecialStock,
		MovementIndicator:   item.MovementIndicator,
		Unit:                item.Unit,
		UnitISO:             item.UnitISO,
		Quantity:            item.Quantity,
		ErrorMessage:        message,
		GMCode:              gmCode,
		CreatedBy:           createdBy,
	}
}

// SAPErrorLogFilter filtros del listado para conciliación.
type SAPErrorLogFilter struct {
	From          *time.Time
	To            *time.Time
	PalletBarcode string
	Material      string
	GMCode        string
	Limit         int
	Offset        int
}
