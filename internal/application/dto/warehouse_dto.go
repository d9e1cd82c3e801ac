package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// NormalizeScanRequest código tal como lo envía el escáner.
type NormalizeScanRequest struct {
	Barcode string `json:"Barcode" validate:"required"`
}

// PalletScanDTO un grupo del código compuesto.
type PalletScanDTO struct {
	PalletBarcode string          `json:"PalletBarcode"`
	Quantity      decimal.Decimal `json:"Quantity"`
	Serials       []string        `json:"Serials"`
}

// PalletLabelDTO etiqueta de pallet normalizada.
type PalletLabelDTO struct {
	OrderID      string `json:"OrderId"`
	Material     string `json:"Material"`
	MaterialText string `json:"MaterialDisplay"`
	Batch        string `json:"Batch"`
	PalletNumber string `json:"PalletNumber"`
}

// NormalizeScanResponse resultado de la normalización.
type NormalizeScanResponse struct {
	Status      string          `json:"Status"`
	Message     string          `json:"Message,omitempty"`
	Value       string          `json:"Value"`
	Decoded     bool            `json:"Decoded"`
	DecodeError string          `json:"DecodeError,omitempty"`
	Pallets     []PalletScanDTO `json:"Pallets,omitempty"`
	Label       *PalletLabelDTO `json:"Label,omitempty"`
}

// PutAwayRequest ubicación de pallets escaneados ("PAL#QTY;S1$S2*PAL2#...").
type PutAwayRequest struct {
	ScanBarcodes string `json:"V_ScanBarcodes" validate:"required"`
	Location     string `json:"Location" validate:"required,max=10"`
}

// PickingRequest pallet tomado para una lista de picking.
type PickingRequest struct {
	Barcode    string          `json:"Barcode" validate:"required"`
	PicklistNo string          `json:"PicklistNo" validate:"required,max=20"`
	Quantity   decimal.Decimal `json:"Quantity"`
}

// PicklistRequest consulta de lista de picking.
type PicklistRequest struct {
	PicklistNo string `json:"PicklistNo" validate:"required,max=20"`
}

// CloseDeliveryRequest cierre de entrega.
type CloseDeliveryRequest struct {
	DeliveryNo string `json:"DeliveryNo" validate:"required,max=20"`
}

// InwardRequest recepción de pallets de producción contra una orden.
type InwardRequest struct {
	OrderNo  string   `json:"OrderNo" validate:"required,max=12"`
	Barcodes []string `json:"Barcodes" validate:"required,min=1,dive,required"`
}

// OrderDetailsRequest consulta de orden de producción.
type OrderDetailsRequest struct {
	OrderNo string `json:"OrderNo" validate:"required,max=12"`
}

// ScrapRequest solicitud de desecho.
type ScrapRequest struct {
	Barcode  string          `json:"Barcode" validate:"required"`
	Quantity decimal.Decimal `json:"Quantity"`
	Reason   string          `json:"Reason" validate:"required,max=200"`
}

// ScrapApproveRequest aprobación de una solicitud de desecho.
type ScrapApproveRequest struct {
	RequestID int64 `json:"RequestId" validate:"required,gt=0"`
}

// ResortRequest cambio de lote de un pallet.
type ResortRequest struct {
	Barcode  string `json:"Barcode" validate:"required"`
	NewBatch string `json:"NewBatch" validate:"required,max=20"`
}

// StockTransferRequest traslado de pallet entre almacenes.
type StockTransferRequest struct {
	Barcode    string `json:"Barcode" validate:"required"`
	ToLocation string `json:"ToLocation" validate:"required,max=10"`
}

// PalletBreakRequest división de pallet.
type PalletBreakRequest struct {
	Barcode       string          `json:"Barcode" validate:"required"`
	BreakQuantity decimal.Decimal `json:"BreakQuantity"`
}

// PrintLabelsRequest impresión masiva de etiquetas por serie.
type PrintLabelsRequest struct {
	PrinterIP string   `json:"PrinterIp" validate:"required"`
	Template  string   `json:"Template" validate:"required"`
	Serials   []string `json:"Serials" validate:"required,min=1,dive,required"`
}

// PrintLabelsResponse resultado de la impresión masiva.
type PrintLabelsResponse struct {
	Status          string   `json:"Status"`
	Message         string   `json:"Message"`
	Printed         int      `json:"Printed"`
	Failed          int      `json:"Failed"`
	Unmarked        int      `json:"Unmarked"` // impresas pero no registradas como impresas
	PartialFailures bool     `json:"PartialFailures,omitempty"`
	ErrorMessages   []string `json:"ErrorMessages,omitempty"`
}

// LookupResponse consulta a SAP devuelta tal cual la entrega el middleware.
type LookupResponse struct {
	Status  string          `json:"Status"`
	Message string          `json:"Message,omitempty"`
	Data    json.RawMessage `json:"Data,omitempty"`
}
