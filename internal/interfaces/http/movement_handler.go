package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// Casos de uso que contabilizan movimientos. Los implementa el paquete warehouse.
type (
	PutAwayService interface {
		Scan(ctx context.Context, op entity.Operator, req dto.PutAwayRequest) (*dto.TransactionResponse, error)
	}
	ResortingService interface {
		Scan(ctx context.Context, op entity.Operator, req dto.ResortRequest) (*dto.TransactionResponse, error)
	}
	StockTransferService interface {
		Scan(ctx context.Context, op entity.Operator, req dto.StockTransferRequest) (*dto.TransactionResponse, error)
	}
	PalletBreakService interface {
		Validate(ctx context.Context, op entity.Operator, req dto.PalletBreakRequest) (*dto.StatusResponse, error)
	}
)

// MovementHandler put-away, cambio de lote, traslado y división de pallet.
type MovementHandler struct {
	putAway     PutAwayService
	resorting   ResortingService
	transfer    StockTransferService
	palletBreak PalletBreakService
	log         zerolog.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(putAway PutAwayService, resorting ResortingService, transfer StockTransferService, palletBreak PalletBreakService, log zerolog.Logger) *MovementHandler {
	return &MovementHandler{putAway: putAway, resorting: resorting, transfer: transfer, palletBreak: palletBreak, log: log}
}

// PutAway godoc
// @Summary      Ubicar pallets escaneados
// @Description  V_ScanBarcodes usa el formato PALLET#CANT;SERIE$SERIE*PALLET#CANT. Un fallo de SAP responde Status T con ErrorInSAP.
// @Tags         putaway
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PutAwayRequest  true  "Escaneo y ubicación"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/putaway/scan [post]
func (h *MovementHandler) PutAway(c *fiber.Ctx) error {
	var in dto.PutAwayRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.putAway.Scan(c.UserContext(), operator(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Resort godoc
// @Summary      Cambiar el lote de un pallet
// @Tags         resorting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ResortRequest  true  "Pallet y lote nuevo"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/resorting/scan [post]
func (h *MovementHandler) Resort(c *fiber.Ctx) error {
	var in dto.ResortRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.resorting.Scan(c.UserContext(), operator(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Trasladar un pallet a otro almacén
// @Tags         stock-transfer
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.StockTransferRequest  true  "Pallet y almacén destino"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-transfer/scan [post]
func (h *MovementHandler) Transfer(c *fiber.Ctx) error {
	var in dto.StockTransferRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.transfer.Scan(c.UserContext(), operator(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PalletBreak godoc
// @Summary      Validar división de pallet
// @Description  Genera y reserva el número del pallet nuevo.
// @Tags         pallet-break
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PalletBreakRequest  true  "Pallet y cantidad a separar"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pallet-break/validate [post]
func (h *MovementHandler) PalletBreak(c *fiber.Ctx) error {
	var in dto.PalletBreakRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.palletBreak.Validate(c.UserContext(), operator(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
