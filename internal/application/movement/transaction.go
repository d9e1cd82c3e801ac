package movement

import (
	"context"
	"time"

	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// Validation resultado de la validación local. Rejected corta el flujo: ni SAP ni confirmación.
// Items vacío significa que no hay nada que contabilizar en SAP.
type Validation struct {
	Rejected   bool
	Message    string
	Items      []entity.GoodsMovementItem
	HeaderText string
	Data       map[string]any
}

// Reject atajo para un rechazo de negocio.
func Reject(message string) Validation {
	return Validation{Rejected: true, Message: message}
}

// Commit resultado de la confirmación local.
type Commit struct {
	Rejected bool
	Message  string
	Failures []string // fallos parciales (ej. una serie de varias) que no anulan la transacción
	Data     map[string]any
}

// Transaction describe una operación de bodega para el Workflow: qué validar,
// con qué código GM contabilizar y cómo confirmar localmente.
type Transaction struct {
	Name     string
	GMCode   string
	UserID   string
	Timeout  time.Duration
	Validate func(ctx context.Context) (Validation, error)
	Commit   func(ctx context.Context, posting Posting) (Commit, error)
}

// BatchOutcome resultado SAP de una tanda de posiciones.
type BatchOutcome struct {
	Items   []entity.GoodsMovementItem
	Outcome entity.SAPOutcome
}

// Posting resultado agregado del intento de contabilización.
type Posting struct {
	Attempted bool
	Batches   []BatchOutcome
}

// DocumentFor documento de material de la tanda que contenía el pallet; "" si falló.
func (p Posting) DocumentFor(palletBarcode string) string {
	for _, b := range p.Batches {
		for _, it := range b.Items {
			if it.PalletBarcode == palletBarcode {
				return b.Outcome.MaterialDocument
			}
		}
	}
	return ""
}

// MaterialDocument primer documento obtenido ("" si ninguna tanda se contabilizó).
func (p Posting) MaterialDocument() string {
	for _, b := range p.Batches {
		if b.Outcome.Succeeded() {
			return b.Outcome.MaterialDocument
		}
	}
	return ""
}

// Failed indica si alguna tanda quedó sin documento.
func (p Posting) Failed() bool {
	for _, b := range p.Batches {
		if !b.Outcome.Succeeded() {
			return true
		}
	}
	return false
}
