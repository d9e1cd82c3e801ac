package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// ScanService normalización de códigos.
type ScanService interface {
	Normalize(req dto.NormalizeScanRequest) *dto.NormalizeScanResponse
}

// LabelService impresión de etiquetas.
type LabelService interface {
	Print(ctx context.Context, op entity.Operator, req dto.PrintLabelsRequest) (*dto.PrintLabelsResponse, error)
}

// MaterialService maestro de materiales.
type MaterialService interface {
	List(ctx context.Context, op entity.Operator, plant string) (*dto.LookupResponse, error)
}

// ScanHandler utilidades de escáner: normalización, etiquetas y materiales.
type ScanHandler struct {
	scan      ScanService
	labels    LabelService
	materials MaterialService
	log       zerolog.Logger
}

// NewScanHandler construye el handler.
func NewScanHandler(scan ScanService, labels LabelService, materials MaterialService, log zerolog.Logger) *ScanHandler {
	return &ScanHandler{scan: scan, labels: labels, materials: materials, log: log}
}

// Normalize godoc
// @Summary      Normalizar código escaneado
// @Description  Decodifica base64 y desarma códigos compuestos o etiquetas de pallet.
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.NormalizeScanRequest  true  "Código"
// @Success      200   {object}  dto.NormalizeScanResponse
// @Router       /api/scan/normalize [post]
func (h *ScanHandler) Normalize(c *fiber.Ctx) error {
	var in dto.NormalizeScanRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	return c.JSON(h.scan.Normalize(in))
}

// PrintLabels godoc
// @Summary      Imprimir etiquetas
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PrintLabelsRequest  true  "Impresora, plantilla y series"
// @Success      200   {object}  dto.PrintLabelsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/labels/print [post]
func (h *ScanHandler) PrintLabels(c *fiber.Ctx) error {
	var in dto.PrintLabelsRequest
	if err := bind(c, &in); err != nil {
		return nil
	}
	out, err := h.labels.Print(c.UserContext(), operator(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Materials godoc
// @Summary      Materiales del centro
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        plant  query     string  false  "Centro (por defecto el del token)"
// @Success      200    {object}  dto.LookupResponse
// @Router       /api/materials [get]
func (h *ScanHandler) Materials(c *fiber.Ctx) error {
	out, err := h.materials.List(c.UserContext(), operator(c), c.Query("plant"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
