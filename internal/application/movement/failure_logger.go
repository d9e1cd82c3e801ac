package movement

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
)

// logTimeout acota cada inserción en el log para que un log lento no retenga la petición.
const logTimeout = 10 * time.Second

// FailureLogger deja en el log de errores SAP una fila por cada posición no contabilizada.
// Sus propios fallos solo se registran en consola: nunca interrumpen el flujo.
type FailureLogger struct {
	repo repository.SAPErrorLogRepository
	log  zerolog.Logger
}

// NewFailureLogger construye el logger de fallos.
func NewFailureLogger(repo repository.SAPErrorLogRepository, log zerolog.Logger) *FailureLogger {
	return &FailureLogger{repo: repo, log: log}
}

// LogBatch escribe una fila por posición y devuelve cuántas se registraron.
// No es idempotente: reintentar la petición duplica filas.
func (l *FailureLogger) LogBatch(ctx context.Context, gmCode, createdBy string, items []entity.GoodsMovementItem, message string) int {
	logged := 0
	for _, it := range items {
		row := entity.NewSAPErrorLog(it, gmCode, message, createdBy)
		if err := l.insert(ctx, row); err != nil {
			l.log.Error().Err(err).
				Str("pallet", it.PalletBarcode).
				Str("material", it.Material).
				Str("gm_code", gmCode).
				Msg("no se pudo registrar el error SAP")
			continue
		}
		logged++
	}
	return logged
}

func (l *FailureLogger) insert(ctx context.Context, row entity.SAPErrorLog) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("panic registrando error SAP")
			err = errPanicked
		}
	}()
	ctx, cancel := context.WithTimeout(ctx, logTimeout)
	defer cancel()
	return l.repo.Insert(ctx, row)
}
