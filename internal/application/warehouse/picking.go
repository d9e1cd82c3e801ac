package warehouse

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/application/movement"
	"github.com/jhoicas/wms-sap-api/internal/application/ports"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

// PickingUseCase toma de pallets contra lista de picking (salida 261 a la orden).
type PickingUseCase struct {
	procs         repository.ProcedureCaller
	flow          *movement.Workflow
	sap           ports.SAPLookup
	timeout       time.Duration
	lookupTimeout time.Duration
	log           zerolog.Logger
}

// NewPickingUseCase construye el caso de uso.
func NewPickingUseCase(procs repository.ProcedureCaller, flow *movement.Workflow, sap ports.SAPLookup, timeout, lookupTimeout time.Duration, log zerolog.Logger) *PickingUseCase {
	return &PickingUseCase{procs: procs, flow: flow, sap: sap, timeout: timeout, lookupTimeout: lookupTimeout, log: log}
}

// Scan valida el pallet contra la lista, contabiliza la salida y confirma la toma.
// Cantidad cero significa el pallet completo.
func (uc *PickingUseCase) Scan(ctx context.Context, op entity.Operator, req dto.PickingRequest) (*dto.TransactionResponse, error) {
	pallet, _, err := resolvePallet(uc.log, req.Barcode)
	if err != nil {
		return rejectedResponse(err.Error()), nil
	}
	if req.Quantity.IsNegative() {
		return rejectedResponse("La cantidad no puede ser negativa"), nil
	}
	picklist := strings.TrimSpace(req.PicklistNo)
	qty := req.Quantity

	tx := movement.Transaction{
		Name:    "picking",
		GMCode:  entity.GMCodeGoodsIssue,
		UserID:  op.UserID,
		Timeout: uc.timeout,
		Validate: func(ctx context.Context) (movement.Validation, error) {
			row, err := uc.procs.Call(ctx, storedproc.PickingValidate, storedproc.Args{
				"pallet_barcode": pallet,
				"picklist_no":    picklist,
				"quantity":       qty,
				"user_id":        op.UserID,
			})
			if err != nil {
				return movement.Validation{}, err
			}
			if row.Rejected() {
				return movement.Reject(row.Message()), nil
			}
			item := itemFromRow(row, pallet, op)
			item.MoveType = entity.MoveTypeIssueForOrder
			if qty.IsPositive() {
				item.Quantity = qty
			} else {
				qty = item.Quantity
			}
			return movement.Validation{
				Items:      []entity.GoodsMovementItem{item},
				HeaderText: "PICK " + picklist,
				Data:       map[string]any{"PalletBarcode": pallet, "PicklistNo": picklist, "Quantity": qty},
			}, nil
		},
		Commit: func(ctx context.Context, posting movement.Posting) (movement.Commit, error) {
			row, err := uc.procs.Call(ctx, storedproc.PickingCommit, storedproc.Args{
				"pallet_barcode":    pallet,
				"picklist_no":       picklist,
				"quantity":          qty,
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

// Picklist detalle de la lista de picking en SAP.
func (uc *PickingUseCase) Picklist(ctx context.Context, req dto.PicklistRequest) (*dto.LookupResponse, error) {
	raw, err := uc.sap.PicklistDetails(ctx, strings.TrimSpace(req.PicklistNo), uc.lookupTimeout)
	return lookupResponse(uc.log, "picklist", raw, err), nil
}

// CloseDelivery cierra la entrega en SAP y deja el resultado registrado localmente.
// Un fallo de SAP no impide el registro local: se informa con ErrorInSAP.
func (uc *PickingUseCase) CloseDelivery(ctx context.Context, op entity.Operator, req dto.CloseDeliveryRequest) (*dto.TransactionResponse, error) {
	delivery := strings.TrimSpace(req.DeliveryNo)

	var sapMessage string
	closed := false
	res, err := uc.sap.CloseDeliveryOrder(ctx, delivery, uc.lookupTimeout)
	switch {
	case err != nil:
		sapMessage = err.Error()
		uc.log.Warn().Err(err).Str("delivery", delivery).Msg("SAP no cerró la entrega")
	case !res.Closed:
		sapMessage = res.Message
		if sapMessage == "" {
			sapMessage = "SAP no cerró la entrega"
		}
	default:
		closed = true
	}

	row, err := uc.procs.Call(ctx, storedproc.PickingCloseDelivery, storedproc.Args{
		"delivery_no": delivery,
		"sap_message": truncateMessage(sapMessage),
		"user_id":     op.UserID,
	})
	if err != nil {
		return nil, err
	}
	if row.Rejected() {
		return rejectedResponse(row.Message()), nil
	}

	out := &dto.TransactionResponse{
		Status:  storedproc.StatusOK,
		Message: row.Message(),
		Data:    map[string]any{"DeliveryNo": delivery, "Closed": closed},
	}
	if out.Message == "" {
		out.Message = "Entrega " + delivery + " cerrada"
	}
	if !closed {
		out.ErrorInSAP = true
		out.SapMessage = sapMessage
		out.ErrorMessages = []string{sapMessage}
		out.Message += ". Error en SAP: " + sapMessage
	}
	return out, nil
}

// truncateMessage recorta el texto al largo del parámetro sap_message.
func truncateMessage(s string) string {
	const maxSAPMessage = 1000
	r := []rune(s)
	if len(r) <= maxSAPMessage {
		return s
	}
	return string(r[:maxSAPMessage])
}
