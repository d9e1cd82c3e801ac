package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// SAPLookup consultas al middleware SAP que no contabilizan movimientos.
// Las respuestas de consulta se devuelven tal cual las entrega el middleware.
// Un error siempre es de transporte (red, timeout, HTTP no 2xx).
type SAPLookup interface {
	OrderDetails(ctx context.Context, orderNo string, timeout time.Duration) (json.RawMessage, error)
	Materials(ctx context.Context, plant string, timeout time.Duration) (json.RawMessage, error)
	PicklistDetails(ctx context.Context, picklistNo string, timeout time.Duration) (json.RawMessage, error)
	CloseDeliveryOrder(ctx context.Context, deliveryNo string, timeout time.Duration) (*entity.DeliveryClose, error)
}
