package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Códigos GM_CODE de BAPI_GOODSMVT_CREATE.
const (
	GMCodeGoodsReceiptPO    = "01" // entrada de mercancía por pedido
	GMCodeGoodsReceiptOrder = "02" // entrada de mercancía por orden de producción
	GMCodeGoodsIssue        = "03" // salida de mercancía
	GMCodeTransferPosting   = "04" // traslado
	GMCodeOtherReceipts     = "05" // otras entradas
)

// Clases de movimiento usadas por la bodega.
const (
	MoveTypeReceiptForOrder = "101" // recepción de orden (inward)
	MoveTypeIssueForOrder   = "261" // consumo para orden (picking)
	MoveTypeBatchToBatch    = "309" // traspaso lote a lote (resorting)
	MoveTypeSlocToSloc      = "311" // traspaso entre almacenes (put-away, stock transfer)
	MoveTypeScrapping       = "551" // desguace
)

// Indicadores de movimiento (MVT_IND).
const (
	MovementIndicatorOrder = "F" // movimiento referido a orden de producción
)

// GoodsMovementHeader cabecera del documento de material a contabilizar.
type GoodsMovementHeader struct {
	PostingDate  time.Time
	DocumentDate time.Time
	HeaderText   string // máx. 25 caracteres en SAP
	UserName     string // máx. 12 caracteres en SAP
}

// GoodsMovementItem posición con destino SAP. Se construye una vez por petición y no se modifica.
// PalletBarcode no viaja a SAP: identifica la posición en el log de errores y en la confirmación local.
type GoodsMovementItem struct {
	PalletBarcode       string
	Material            string // 18 dígitos con ceros a la izquierda
	Plant               string
	StorageLocation     string
	Batch               string
	MoveType            string
	StockType           string
	Quantity            decimal.Decimal
	Unit                string
	UnitISO             string
	OrderID             string // 12 dígitos con ceros a la izquierda
	MovementIndicator   string
	MoveBatch           string
	MoveStorageLocation string
	SpecialStock        string
}

// GoodsMovementPosting petición completa: código GM + cabecera + posiciones.
type GoodsMovementPosting struct {
	GMCode string
	Header GoodsMovementHeader
	Items  []GoodsMovementItem
}
