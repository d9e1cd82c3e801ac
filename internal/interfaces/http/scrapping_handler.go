package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// ScrappingService solicitud y aprobación de desechos.
type ScrappingService interface {
	Request(ctx context.Context, op entity.Operator, req dto.ScrapRequest) (*dto.StatusResponse, error)
	Approve(ctx context.Context, op entity.Operator, req dto.ScrapApproveRequest) (*dto.TransactionResponse, error)
}

// ScrappingHandler maneja las peticiones de desecho.
type ScrappingHandler struct {
	uc  ScrappingService
	log zerolog.Logger
}

// NewScrappingHandler construye el handler.
func NewScrappingHandler(uc ScrappingService, log zerolog.Logger) *ScrappingHandler {
	return &ScrappingHandler{uc: uc, log: log}
}

// Request godoc
// @Summary      Solicitar desecho
// @Description  Registra la solicitud y avisa por correo a los aprobadores (best-effort).
// @Tags         scrapping
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ScrapRequest  true  "Pallet, cantidad y motivo"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scrapping/request [post]
func (h *ScrappingHandler) Request(c *fiber.Ctx) error {
	var in dto.ScrapRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.uc.Request(c.UserContext(), operator(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar desecho
// @Tags         scrapping
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ScrapApproveRequest  true  "Solicitud"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/scrapping/approve [post]
func (h *ScrappingHandler) Approve(c *fiber.Ctx) error {
	var in dto.ScrapApproveRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.uc.Approve(c.UserContext(), operator(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
