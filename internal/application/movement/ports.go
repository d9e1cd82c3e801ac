package movement

import (
	"context"
	"time"

	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// GoodsMovementPoster puerto de salida hacia el middleware SAP.
// Devuelve el resultado de negocio (documento o Return[] con error) con err == nil;
// err != nil significa fallo de transporte (red, timeout, HTTP no 2xx).
type GoodsMovementPoster interface {
	CreateGoodsMovement(ctx context.Context, posting entity.GoodsMovementPosting, timeout time.Duration) (entity.SAPOutcome, error)
}
