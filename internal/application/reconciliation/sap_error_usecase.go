// Package reconciliation expone el log de errores SAP para la conciliación manual.
// Esta capa solo lee: las filas no se corrigen ni se borran desde la API.
package reconciliation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/application/ports"
	"github.com/jhoicas/wms-sap-api/internal/domain"
	"github.com/jhoicas/wms-sap-api/internal/domain/barcode"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
)

const (
	defaultLimit  = 50
	maxExportRows = 10000
	dateLayout    = "2006-01-02"
)

// SAPErrorUseCase listado y exportación del log de errores SAP.
type SAPErrorUseCase struct {
	repo     repository.SAPErrorLogRepository
	renderer ports.ReportRenderer
}

// NewSAPErrorUseCase construye el caso de uso.
func NewSAPErrorUseCase(repo repository.SAPErrorLogRepository, renderer ports.ReportRenderer) *SAPErrorUseCase {
	return &SAPErrorUseCase{repo: repo, renderer: renderer}
}

// List devuelve una página del log, más reciente primero.
func (uc *SAPErrorUseCase) List(ctx context.Context, q dto.SAPErrorLogQuery) (*dto.SAPErrorLogListResponse, error) {
	f, err := toFilter(q)
	if err != nil {
		return nil, err
	}
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	rows, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SAPErrorLogDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, toDTO(r))
	}
	return &dto.SAPErrorLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// Export genera el XLSX con todas las filas del filtro (hasta maxExportRows).
func (uc *SAPErrorUseCase) Export(ctx context.Context, q dto.SAPErrorLogQuery) ([]byte, error) {
	f, err := toFilter(q)
	if err != nil {
		return nil, err
	}
	f.Limit, f.Offset = maxExportRows, 0
	rows, _, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return uc.renderer.SAPErrorWorkbook(rows)
}

func toFilter(q dto.SAPErrorLogQuery) (entity.SAPErrorLogFilter, error) {
	f := entity.SAPErrorLogFilter{
		PalletBarcode: strings.TrimSpace(q.Pallet),
		GMCode:        strings.TrimSpace(q.GMCode),
		Limit:         q.Limit,
		Offset:        q.Offset,
	}
	if m := strings.TrimSpace(q.Material); m != "" {
		f.Material = barcode.PadMaterial(m)
	}
	if q.From != "" {
		from, err := time.Parse(dateLayout, q.From)
		if err != nil {
			return f, fmt.Errorf("%w: from debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(dateLayout, q.To)
		if err != nil {
			return f, fmt.Errorf("%w: to debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return f, fmt.Errorf("%w: from debe ser anterior a to", domain.ErrInvalidInput)
	}
	return f, nil
}

func toDTO(r entity.SAPErrorLog) dto.SAPErrorLogDTO {
	return dto.SAPErrorLogDTO{
		ID:                  r.ID,
		PalletBarcode:       r.PalletBarcode,
		OrderID:             r.OrderID,
		Material:            r.Material,
		Batch:               r.Batch,
		Plant:               r.Plant,
		StorageLocation:     r.StorageLocation,
		MoveType:            r.MoveType,
		MoveBatch:           r.MoveBatch,
		MoveStorageLocation: r.MoveStorageLocation,
		Quantity:            r.Quantity.String(),
		Unit:                r.Unit,
		GMCode:              r.GMCode,
		ErrorMessage:        r.ErrorMessage,
		CreatedBy:           r.CreatedBy,
		CreatedAt:           r.CreatedAt,
	}
}
