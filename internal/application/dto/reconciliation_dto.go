package dto

import "time"

// SAPErrorLogDTO fila del log de errores SAP.
type SAPErrorLogDTO struct {
	ID                  int64     `json:"id"`
	PalletBarcode       string    `json:"pallet_barcode"`
	OrderID             string    `json:"order_no"`
	Material            string    `json:"material"`
	Batch               string    `json:"batch"`
	Plant               string    `json:"plant"`
	StorageLocation     string    `json:"storage_location"`
	MoveType            string    `json:"move_type"`
	MoveBatch           string    `json:"move_batch,omitempty"`
	MoveStorageLocation string    `json:"move_storage_location,omitempty"`
	Quantity            string    `json:"quantity"`
	Unit                string    `json:"unit"`
	GMCode              string    `json:"gm_code"`
	ErrorMessage        string    `json:"error_message"`
	CreatedBy           string    `json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// SAPErrorLogListResponse listado paginado.
type SAPErrorLogListResponse struct {
	Items []SAPErrorLogDTO `json:"items"`
	Page  PageResponse     `json:"page"`
}

// SAPErrorLogQuery filtros del listado (query string). Fechas en formato YYYY-MM-DD;
// To es inclusivo.
type SAPErrorLogQuery struct {
	From     string `query:"from"`
	To       string `query:"to"`
	Pallet   string `query:"pallet"`
	Material string `query:"material"`
	GMCode   string `query:"gm_code" validate:"omitempty,len=2,numeric"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset   int    `query:"offset" validate:"omitempty,min=0"`
}
