package warehouse

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/application/ports"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

// lookupResponse un fallo de SAP en una consulta es Status 'F' con el mensaje, no un 500.
func lookupResponse(log zerolog.Logger, name string, raw json.RawMessage, err error) *dto.LookupResponse {
	if err != nil {
		log.Warn().Err(err).Str("lookup", name).Msg("consulta SAP fallida")
		return &dto.LookupResponse{Status: storedproc.StatusRejected, Message: err.Error()}
	}
	return &dto.LookupResponse{Status: storedproc.StatusOK, Data: raw}
}

// MaterialUseCase maestro de materiales desde SAP.
type MaterialUseCase struct {
	sap     ports.SAPLookup
	timeout time.Duration
	log     zerolog.Logger
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(sap ports.SAPLookup, timeout time.Duration, log zerolog.Logger) *MaterialUseCase {
	return &MaterialUseCase{sap: sap, timeout: timeout, log: log}
}

// List materiales del centro indicado o, si viene vacío, del centro del operario.
func (uc *MaterialUseCase) List(ctx context.Context, op entity.Operator, plant string) (*dto.LookupResponse, error) {
	plant = strings.TrimSpace(plant)
	if plant == "" {
		plant = op.Plant
	}
	if plant == "" {
		return &dto.LookupResponse{Status: storedproc.StatusRejected, Message: "Centro requerido"}, nil
	}
	raw, err := uc.sap.Materials(ctx, plant, uc.timeout)
	return lookupResponse(uc.log, "materials", raw, err), nil
}
