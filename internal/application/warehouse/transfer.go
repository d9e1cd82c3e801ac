package warehouse

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/application/movement"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

// singlePallet transacción de un pallet con validación y confirmación propias.
// La usan el cambio de lote y el traslado entre almacenes.
type singlePallet struct {
	name     string
	header   string
	validate storedproc.Procedure
	commit   storedproc.Procedure
	args     storedproc.Args
	build    func(row storedproc.Row, item *entity.GoodsMovementItem)
}

func runSinglePallet(ctx context.Context, procs repository.ProcedureCaller, flow *movement.Workflow, op entity.Operator, pallet string, timeout time.Duration, sp singlePallet) (*dto.TransactionResponse, error) {
	args := func(extra storedproc.Args) storedproc.Args {
		out := storedproc.Args{"pallet_barcode": pallet, "user_id": op.UserID}
		for k, v := range sp.args {
			out[k] = v
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}

	tx := movement.Transaction{
		Name:    sp.name,
		GMCode:  entity.GMCodeTransferPosting,
		UserID:  op.UserID,
		Timeout: timeout,
		Validate: func(ctx context.Context) (movement.Validation, error) {
			row, err := procs.Call(ctx, sp.validate, args(nil))
			if err != nil {
				return movement.Validation{}, err
			}
			if row.Rejected() {
				return movement.Reject(row.Message()), nil
			}
			item := itemFromRow(row, pallet, op)
			sp.build(row, &item)
			return movement.Validation{
				Items:      []entity.GoodsMovementItem{item},
				HeaderText: sp.header,
				Data:       map[string]any{"PalletBarcode": pallet},
			}, nil
		},
		Commit: func(ctx context.Context, posting movement.Posting) (movement.Commit, error) {
			row, err := procs.Call(ctx, sp.commit, args(storedproc.Args{"material_document": posting.MaterialDocument()}))
			if err != nil {
				return movement.Commit{}, err
			}
			if row.Rejected() {
				return movement.Commit{Rejected: true, Message: row.Message()}, nil
			}
			return movement.Commit{Message: row.Message()}, nil
		},
	}

	res, err := flow.Run(ctx, tx)
	if err != nil {
		return nil, err
	}
	return toResponse(res), nil
}

// ResortingUseCase cambio de lote de un pallet (traspaso 309).
type ResortingUseCase struct {
	procs   repository.ProcedureCaller
	flow    *movement.Workflow
	timeout time.Duration
	log     zerolog.Logger
}

// NewResortingUseCase construye el caso de uso.
func NewResortingUseCase(procs repository.ProcedureCaller, flow *movement.Workflow, timeout time.Duration, log zerolog.Logger) *ResortingUseCase {
	return &ResortingUseCase{procs: procs, flow: flow, timeout: timeout, log: log}
}

// Scan pasa el pallet al lote nuevo.
func (uc *ResortingUseCase) Scan(ctx context.Context, op entity.Operator, req dto.ResortRequest) (*dto.TransactionResponse, error) {
	pallet, _, err := resolvePallet(uc.log, req.Barcode)
	if err != nil {
		return rejectedResponse(err.Error()), nil
	}
	newBatch := strings.ToUpper(strings.TrimSpace(req.NewBatch))
	return runSinglePallet(ctx, uc.procs, uc.flow, op, pallet, uc.timeout, singlePallet{
		name:     "resorting",
		header:   "RESORT " + newBatch,
		validate: storedproc.ResortValidate,
		commit:   storedproc.ResortCommit,
		args:     storedproc.Args{"new_batch": newBatch},
		build: func(row storedproc.Row, item *entity.GoodsMovementItem) {
			item.MoveType = entity.MoveTypeBatchToBatch
			item.MoveBatch = newBatch
			item.MoveStorageLocation = item.StorageLocation
		},
	})
}

// StockTransferUseCase traslado de pallet entre almacenes (traspaso 311).
type StockTransferUseCase struct {
	procs   repository.ProcedureCaller
	flow    *movement.Workflow
	timeout time.Duration
	log     zerolog.Logger
}

// NewStockTransferUseCase construye el caso de uso.
func NewStockTransferUseCase(procs repository.ProcedureCaller, flow *movement.Workflow, timeout time.Duration, log zerolog.Logger) *StockTransferUseCase {
	return &StockTransferUseCase{procs: procs, flow: flow, timeout: timeout, log: log}
}

// Scan traslada el pallet al almacén destino.
func (uc *StockTransferUseCase) Scan(ctx context.Context, op entity.Operator, req dto.StockTransferRequest) (*dto.TransactionResponse, error) {
	pallet, _, err := resolvePallet(uc.log, req.Barcode)
	if err != nil {
		return rejectedResponse(err.Error()), nil
	}
	to := strings.TrimSpace(req.ToLocation)
	return runSinglePallet(ctx, uc.procs, uc.flow, op, pallet, uc.timeout, singlePallet{
		name:     "stock_transfer",
		header:   "TRANSFER " + to,
		validate: storedproc.TransferValidate,
		commit:   storedproc.TransferCommit,
		args:     storedproc.Args{"to_location": to},
		build: func(row storedproc.Row, item *entity.GoodsMovementItem) {
			item.MoveType = entity.MoveTypeSlocToSloc
			item.MoveStorageLocation = row.String("ToStorageLocation")
			if item.MoveStorageLocation == "" {
				item.MoveStorageLocation = to
			}
		},
	})
}
