package entity

import "github.com/shopspring/decimal"

// PalletScan un grupo del código compuesto "PALLET#QTY;SERIAL$SERIAL".
type PalletScan struct {
	PalletBarcode string
	Quantity      decimal.Decimal
	Serials       []string
}

// PalletLabel contenido de la etiqueta de pallet "ORDEN|MATERIAL|LOTE|PALLET".
type PalletLabel struct {
	OrderID      string
	Material     string
	Batch        string
	PalletNumber string
}

// LabelJob una etiqueta a imprimir: serie + valores que sustituyen los tokens del .prn.
type LabelJob struct {
	Serial string
	Values map[string]string
}

// ScrapRequest solicitud de desecho registrada, pendiente de aprobación.
type ScrapRequest struct {
	RequestID     int64
	PalletBarcode string
	Material      string
	Batch         string
	Quantity      decimal.Decimal
	Unit          string
	Reason        string
	RequestedBy   string
}

// Operator operario autenticado que ejecuta la transacción (viene del JWT).
type Operator struct {
	UserID string
	Plant  string
	Role   string
}

// Roles del operario en el token.
const (
	RoleOperator   = "operario"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)
