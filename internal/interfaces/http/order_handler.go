package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// PickingService picking y entregas.
type PickingService interface {
	Scan(ctx context.Context, op entity.Operator, req dto.PickingRequest) (*dto.TransactionResponse, error)
	Picklist(ctx context.Context, req dto.PicklistRequest) (*dto.LookupResponse, error)
	CloseDelivery(ctx context.Context, op entity.Operator, req dto.CloseDeliveryRequest) (*dto.TransactionResponse, error)
}

// InwardService recepción contra orden de producción.
type InwardService interface {
	Receipt(ctx context.Context, op entity.Operator, req dto.InwardRequest) (*dto.TransactionResponse, error)
	OrderDetails(ctx context.Context, req dto.OrderDetailsRequest) (*dto.LookupResponse, error)
}

// OrderHandler operaciones referidas a órdenes: picking, entregas y recepción.
type OrderHandler struct {
	picking PickingService
	inward  InwardService
	log     zerolog.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(picking PickingService, inward InwardService, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{picking: picking, inward: inward, log: log}
}

// PickingScan godoc
// @Summary      Tomar un pallet para la lista de picking
// @Description  Quantity 0 toma el pallet completo.
// @Tags         picking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PickingRequest  true  "Pallet, lista y cantidad"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/picking/scan [post]
func (h *OrderHandler) PickingScan(c *fiber.Ctx) error {
	var in dto.PickingRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.picking.Scan(c.UserContext(), operator(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Picklist godoc
// @Summary      Detalle de lista de picking en SAP
// @Tags         picking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PicklistRequest  true  "Lista"
// @Success      200   {object}  dto.LookupResponse
// @Router       /api/picking/picklist [post]
func (h *OrderHandler) Picklist(c *fiber.Ctx) error {
	var in dto.PicklistRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.picking.Picklist(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CloseDelivery godoc
// @Summary      Cerrar entrega
// @Tags         picking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CloseDeliveryRequest  true  "Entrega"
// @Success      200   {object}  dto.TransactionResponse
// @Router       /api/picking/close-delivery [post]
func (h *OrderHandler) CloseDelivery(c *fiber.Ctx) error {
	var in dto.CloseDeliveryRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.picking.CloseDelivery(c.UserContext(), operator(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// InwardReceipt godoc
// @Summary      Recibir pallets de producción
// @Description  Contabiliza en tandas de hasta 50 pallets; los rechazados se informan en ErrorMessages.
// @Tags         inward
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.InwardRequest  true  "Orden y pallets"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inward/receipt [post]
func (h *OrderHandler) InwardReceipt(c *fiber.Ctx) error {
	var in dto.InwardRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.inward.Receipt(c.UserContext(), operator(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// OrderDetails godoc
// @Summary      Detalle de orden de producción en SAP
// @Tags         inward
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.OrderDetailsRequest  true  "Orden"
// @Success      200   {object}  dto.LookupResponse
// @Router       /api/inward/order-details [post]
func (h *OrderHandler) OrderDetails(c *fiber.Ctx) error {
	var in dto.OrderDetailsRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.inward.OrderDetails(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
