package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/application/movement"
	"github.com/jhoicas/wms-sap-api/internal/application/ports"
	"github.com/jhoicas/wms-sap-api/internal/domain"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

// NotificationResult resultado del aviso por correo. El correo es best-effort:
// un fallo queda aquí y en el log, nunca anula la solicitud.
type NotificationResult struct {
	Sent bool
	Err  error
}

// ScrappingUseCase solicitud y aprobación de desechos (salida 551).
type ScrappingUseCase struct {
	procs    repository.ProcedureCaller
	flow     *movement.Workflow
	notifier ports.ScrapNotifier
	timeout  time.Duration
	log      zerolog.Logger
}

// NewScrappingUseCase construye el caso de uso. notifier puede ser nil (sin SMTP).
func NewScrappingUseCase(procs repository.ProcedureCaller, flow *movement.Workflow, notifier ports.ScrapNotifier, timeout time.Duration, log zerolog.Logger) *ScrappingUseCase {
	return &ScrappingUseCase{procs: procs, flow: flow, notifier: notifier, timeout: timeout, log: log}
}

// Request valida el pallet, registra la solicitud y avisa a los aprobadores.
// No contabiliza en SAP: eso ocurre al aprobar.
func (uc *ScrappingUseCase) Request(ctx context.Context, op entity.Operator, req dto.ScrapRequest) (*dto.StatusResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	pallet, _, err := resolvePallet(uc.log, req.Barcode)
	if err != nil {
		return &dto.StatusResponse{Status: storedproc.StatusRejected, Message: err.Error()}, nil
	}
	reason := strings.TrimSpace(req.Reason)

	row, err := uc.procs.Call(ctx, storedproc.ScrapValidate, storedproc.Args{
		"pallet_barcode": pallet,
		"quantity":       req.Quantity,
		"user_id":        op.UserID,
	})
	if err != nil {
		return nil, err
	}
	if row.Rejected() {
		return &dto.StatusResponse{Status: storedproc.StatusRejected, Message: row.Message()}, nil
	}

	created, err := uc.procs.Call(ctx, storedproc.ScrapRequest, storedproc.Args{
		"pallet_barcode": pallet,
		"quantity":       req.Quantity,
		"reason":         reason,
		"user_id":        op.UserID,
	})
	if err != nil {
		return nil, err
	}
	if created.Rejected() {
		return &dto.StatusResponse{Status: storedproc.StatusRejected, Message: created.Message()}, nil
	}

	scrap := entity.ScrapRequest{
		RequestID:     created.Int("RequestId"),
		PalletBarcode: pallet,
		Material:      row.String("Material"),
		Batch:         row.String("Batch"),
		Quantity:      req.Quantity,
		Unit:          row.String("Unit"),
		Reason:        reason,
		RequestedBy:   op.UserID,
	}
	notice := uc.notify(ctx, scrap)

	msg := created.Message()
	if msg == "" {
		msg = fmt.Sprintf("Solicitud de desecho %d registrada", scrap.RequestID)
	}
	data := map[string]any{"RequestId": scrap.RequestID, "EmailSent": notice.Sent}
	if notice.Err != nil {
		data["EmailError"] = notice.Err.Error()
	}
	return &dto.StatusResponse{Status: storedproc.StatusOK, Message: msg, Data: data}, nil
}

func (uc *ScrappingUseCase) notify(ctx context.Context, req entity.ScrapRequest) NotificationResult {
	if uc.notifier == nil {
		return NotificationResult{}
	}
	if err := uc.notifier.NotifyScrapRequest(ctx, req); err != nil {
		uc.log.Error().Err(err).Int64("request_id", req.RequestID).Msg("no se pudo avisar la solicitud de desecho")
		return NotificationResult{Err: err}
	}
	return NotificationResult{Sent: true}
}

// Approve aprueba la solicitud: contabiliza el desecho y cierra la solicitud localmente.
func (uc *ScrappingUseCase) Approve(ctx context.Context, op entity.Operator, req dto.ScrapApproveRequest) (*dto.TransactionResponse, error) {
	if op.Role != entity.RoleSupervisor && op.Role != entity.RoleAdmin {
		return nil, fmt.Errorf("%w: solo supervisores aprueban desechos", domain.ErrForbidden)
	}

	tx := movement.Transaction{
		Name:    "scrapping",
		GMCode:  entity.GMCodeGoodsIssue,
		UserID:  op.UserID,
		Timeout: uc.timeout,
		Validate: func(ctx context.Context) (movement.Validation, error) {
			row, err := uc.procs.Call(ctx, storedproc.ScrapApprovalValidate, storedproc.Args{
				"request_id": req.RequestID,
				"user_id":    op.UserID,
			})
			if err != nil {
				return movement.Validation{}, err
			}
			if row.Rejected() {
				return movement.Reject(row.Message()), nil
			}
			item := itemFromRow(row, row.String("PalletBarcode"), op)
			item.MoveType = entity.MoveTypeScrapping
			return movement.Validation{
				Items:      []entity.GoodsMovementItem{item},
				HeaderText: fmt.Sprintf("SCRAP %d", req.RequestID),
				Data:       map[string]any{"RequestId": req.RequestID},
			}, nil
		},
		Commit: func(ctx context.Context, posting movement.Posting) (movement.Commit, error) {
			row, err := uc.procs.Call(ctx, storedproc.ScrapCommit, storedproc.Args{
				"request_id":        req.RequestID,
				"material_document": posting.MaterialDocument(),
				"user_id":           op.UserID,
			})
			if err != nil {
				return movement.Commit{}, err
			}
			if row.Rejected() {
				return movement.Commit{Rejected: true, Message: row.Message()}, nil
			}
			return movement.Commit{Message: row.Message()}, nil
		},
	}

	res, err := uc.flow.Run(ctx, tx)
	if err != nil {
		return nil, err
	}
	return toResponse(res), nil
}
