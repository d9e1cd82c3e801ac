package ports

import (
	"context"

	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// ScrapNotifier avisa a los aprobadores de una solicitud de desecho.
// No es transaccional con la base: la solicitud ya quedó registrada cuando se llama.
type ScrapNotifier interface {
	NotifyScrapRequest(ctx context.Context, req entity.ScrapRequest) error
}
