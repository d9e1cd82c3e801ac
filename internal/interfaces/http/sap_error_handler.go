package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SAPErrorService consulta del log de errores SAP.
type SAPErrorService interface {
	List(ctx context.Context, q dto.SAPErrorLogQuery) (*dto.SAPErrorLogListResponse, error)
	Export(ctx context.Context, q dto.SAPErrorLogQuery) ([]byte, error)
}

// SAPErrorHandler maneja las peticiones de conciliación.
type SAPErrorHandler struct {
	uc  SAPErrorService
	log zerolog.Logger
}

// NewSAPErrorHandler construye el handler.
func NewSAPErrorHandler(uc SAPErrorService, log zerolog.Logger) *SAPErrorHandler {
	return &SAPErrorHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar errores SAP pendientes de conciliación
// @Tags         sap-errors
// @Security     Bearer
// @Produce      json
// @Param        from      query     string  false  "Desde (YYYY-MM-DD)"
// @Param        to        query     string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        pallet    query     string  false  "Pallet"
// @Param        material  query     string  false  "Material"
// @Param        gm_code   query     string  false  "Código GM"
// @Param        limit     query     int     false  "Límite"  default(50)
// @Param        offset    query     int     false  "Offset"  default(0)
// @Success      200       {object}  dto.SAPErrorLogListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/sap-errors [get]
func (h *SAPErrorHandler) List(c *fiber.Ctx) error {
	var q dto.SAPErrorLogQuery
	if err := bindQuery(c, &q); err != nil {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar errores SAP a Excel
// @Tags         sap-errors
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from      query     string  false  "Desde (YYYY-MM-DD)"
// @Param        to        query     string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Success      200
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/sap-errors/export [get]
func (h *SAPErrorHandler) Export(c *fiber.Ctx) error {
	var q dto.SAPErrorLogQuery
	if err := bindQuery(c, &q); err != nil {
		return nil
	}
	data, err := h.uc.Export(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="errores_sap_%s.xlsx"`, time.Now().Format("20060102_1504")))
	return c.Send(data)
}
