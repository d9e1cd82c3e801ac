package warehouse

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/domain"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

// PalletBreakUseCase división de pallets.
type PalletBreakUseCase struct {
	procs repository.ProcedureCaller
	log   zerolog.Logger
}

// NewPalletBreakUseCase construye el caso de uso.
func NewPalletBreakUseCase(procs repository.ProcedureCaller, log zerolog.Logger) *PalletBreakUseCase {
	return &PalletBreakUseCase{procs: procs, log: log}
}

// Validate valida la división. Aunque se llama validación, el procedimiento genera y
// reserva el número del pallet nuevo: llamarla dos veces produce dos números.
func (uc *PalletBreakUseCase) Validate(ctx context.Context, op entity.Operator, req dto.PalletBreakRequest) (*dto.StatusResponse, error) {
	if !req.BreakQuantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad a dividir debe ser mayor a cero", domain.ErrInvalidInput)
	}
	pallet, _, err := resolvePallet(uc.log, req.Barcode)
	if err != nil {
		return &dto.StatusResponse{Status: storedproc.StatusRejected, Message: err.Error()}, nil
	}

	row, err := uc.procs.Call(ctx, storedproc.PalletBreakValidate, storedproc.Args{
		"pallet_barcode": pallet,
		"break_quantity": req.BreakQuantity,
		"user_id":        op.UserID,
	})
	if err != nil {
		return nil, err
	}
	if row.Rejected() {
		return &dto.StatusResponse{Status: storedproc.StatusRejected, Message: row.Message()}, nil
	}

	newPallet := row.String("NewPalletBarcode")
	uc.log.Info().Str("pallet", pallet).Str("new_pallet", newPallet).Msg("pallet nuevo generado en validación de división")
	msg := row.Message()
	if msg == "" {
		msg = "Pallet nuevo " + newPallet
	}
	return &dto.StatusResponse{
		Status:  storedproc.StatusOK,
		Message: msg,
		Data: map[string]any{
			"PalletBarcode":     pallet,
			"NewPalletBarcode":  newPallet,
			"BreakQuantity":     req.BreakQuantity,
			"RemainingQuantity": row.Decimal("RemainingQuantity"),
		},
	}, nil
}
