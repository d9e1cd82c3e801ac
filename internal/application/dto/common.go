package dto

// ErrorResponse cuerpo de error HTTP (400, 401, 403, 500). Los rechazos de negocio
// no usan este cuerpo: viajan con HTTP 200 y Status 'F'.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"` // campo -> regla incumplida
}

// TransactionResponse respuesta de toda operación de bodega.
// Status 'T' aun con ErrorInSAP: la operación local quedó registrada.
type TransactionResponse struct {
	Status            string         `json:"Status"`
	Message           string         `json:"Message"`
	ErrorInSAP        bool           `json:"ErrorInSAP"`
	PartialFailures   bool           `json:"PartialFailures,omitempty"`
	SapMessage        string         `json:"SapMessage,omitempty"`
	ErrorMessages     []string       `json:"ErrorMessages,omitempty"`
	MaterialDocument  string         `json:"MaterialDocument,omitempty"`
	MaterialDocuments []string       `json:"MaterialDocuments,omitempty"`
	Data              map[string]any `json:"Data,omitempty"`
}

// StatusResponse respuesta simple sin contabilización SAP.
type StatusResponse struct {
	Status  string         `json:"Status"`
	Message string         `json:"Message"`
	Data    map[string]any `json:"Data,omitempty"`
}
