package entity

// Tipos de mensaje BAPIRET2 que se consideran fallo de negocio.
const (
	SAPMessageError = "E"
	SAPMessageInfo  = "I"
	SAPMessageAbort = "A"
)

// SAPOutcome resultado de una llamada a goods-movement. O trae documento de material
// o trae el tipo y texto del error; el transporte fallido se marca con Transport.
type SAPOutcome struct {
	MaterialDocument string
	DocumentYear     string
	ErrorType        string
	ErrorMessage     string
	Transport        bool
}

// Succeeded indica si SAP devolvió documento de material. Cualquier otra cosa es fallo.
func (o SAPOutcome) Succeeded() bool {
	return o.MaterialDocument != ""
}

// IsBusinessErrorType indica si un TYPE de Return[] es error de negocio (E, I o A).
func IsBusinessErrorType(t string) bool {
	switch t {
	case SAPMessageError, SAPMessageInfo, SAPMessageAbort:
		return true
	}
	return false
}

// DeliveryClose resultado del cierre de una entrega en SAP.
type DeliveryClose struct {
	Closed  bool
	Message string
}
