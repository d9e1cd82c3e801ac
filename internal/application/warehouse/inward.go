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
	"github.com/jhoicas/wms-sap-api/internal/domain/barcode"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

// InwardUseCase recepción de pallets de producción contra la orden (entrada 101).
type InwardUseCase struct {
	procs         repository.ProcedureCaller
	flow          *movement.Workflow
	sap           ports.SAPLookup
	timeout       time.Duration
	lookupTimeout time.Duration
	chunk         int
	log           zerolog.Logger
}

// NewInwardUseCase construye el caso de uso.
func NewInwardUseCase(procs repository.ProcedureCaller, flow *movement.Workflow, sap ports.SAPLookup, timeout, lookupTimeout time.Duration, chunk int, log zerolog.Logger) *InwardUseCase {
	return &InwardUseCase{procs: procs, flow: flow, sap: sap, timeout: timeout, lookupTimeout: lookupTimeout, chunk: chunk, log: log}
}

type inwardPallet struct {
	pallet string
	label  *entity.PalletLabel
}

// Receipt valida los pallets contra la orden, contabiliza la entrada en tandas y
// confirma cada pallet con el documento de su tanda. Los pallets rechazados en la
// validación se excluyen y se informan como fallos parciales.
func (uc *InwardUseCase) Receipt(ctx context.Context, op entity.Operator, req dto.InwardRequest) (*dto.TransactionResponse, error) {
	order := barcode.PadOrder(req.OrderNo)

	pallets := make([]inwardPallet, 0, len(req.Barcodes))
	seen := make(map[string]bool, len(req.Barcodes))
	for _, raw := range req.Barcodes {
		pallet, label, err := resolvePallet(uc.log, raw)
		if err != nil {
			return rejectedResponse(err.Error()), nil
		}
		if label != nil && barcode.PadOrder(label.OrderID) != order {
			return rejectedResponse(fmt.Sprintf("El pallet %s pertenece a la orden %s", pallet, barcode.TrimLeadingZeros(label.OrderID))), nil
		}
		if seen[pallet] {
			continue
		}
		seen[pallet] = true
		pallets = append(pallets, inwardPallet{pallet: pallet, label: label})
	}

	var skipped []string
	var accepted []inwardPallet

	tx := movement.Transaction{
		Name:    "inward",
		GMCode:  entity.GMCodeGoodsReceiptOrder,
		UserID:  op.UserID,
		Timeout: uc.timeout,
		Validate: func(ctx context.Context) (movement.Validation, error) {
			calls := make([]procCall, len(pallets))
			for i, p := range pallets {
				calls[i] = procCall{Label: p.pallet, Proc: storedproc.InwardValidate, Args: storedproc.Args{
					"pallet_barcode": p.pallet,
					"order_no":       order,
					"user_id":        op.UserID,
				}}
			}
			outcomes, err := callAll(ctx, uc.procs, uc.chunk, calls)
			if err != nil {
				return movement.Validation{}, err
			}

			v := movement.Validation{HeaderText: "INWARD " + barcode.TrimLeadingZeros(order)}
			for i, o := range outcomes {
				p := pallets[i]
				if o.Rejected {
					skipped = append(skipped, labelled(p.pallet, o.Message))
					continue
				}
				item := itemFromRow(o.Row, p.pallet, op)
				item.MoveType = entity.MoveTypeReceiptForOrder
				item.MovementIndicator = entity.MovementIndicatorOrder
				item.OrderID = order
				if p.label != nil {
					if item.Material == "" {
						item.Material = barcode.PadMaterial(p.label.Material)
					}
					if item.Batch == "" {
						item.Batch = p.label.Batch
					}
				}
				accepted = append(accepted, p)
				v.Items = append(v.Items, item)
			}
			if len(accepted) == 0 {
				return movement.Reject(strings.Join(skipped, "; ")), nil
			}
			return v, nil
		},
		Commit: func(ctx context.Context, posting movement.Posting) (movement.Commit, error) {
			calls := make([]procCall, len(accepted))
			for i, p := range accepted {
				calls[i] = procCall{Label: p.pallet, Proc: storedproc.InwardCommit, Args: storedproc.Args{
					"pallet_barcode":    p.pallet,
					"order_no":          order,
					"material_document": posting.DocumentFor(p.pallet),
					"user_id":           op.UserID,
				}}
			}
			c, err := commitBatch(ctx, uc.procs, uc.chunk, calls,
				fmt.Sprintf("%d pallet(s) recibidos en la orden %s", len(accepted), barcode.TrimLeadingZeros(order)))
			if err != nil || c.Rejected {
				return c, err
			}
			c.Failures = append(skipped, c.Failures...)
			c.Data = map[string]any{"OrderNo": order, "Received": len(accepted), "Skipped": len(skipped)}
			return c, nil
		},
	}

	res, err := uc.flow.Run(ctx, tx)
	if err != nil {
		return nil, err
	}
	return toResponse(res), nil
}

// OrderDetails detalle de la orden de producción en SAP.
func (uc *InwardUseCase) OrderDetails(ctx context.Context, req dto.OrderDetailsRequest) (*dto.LookupResponse, error) {
	raw, err := uc.sap.OrderDetails(ctx, barcode.PadOrder(req.OrderNo), uc.lookupTimeout)
	return lookupResponse(uc.log, "order_details", raw, err), nil
}
