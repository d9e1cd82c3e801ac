package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/application/movement"
	"github.com/jhoicas/wms-sap-api/internal/domain/barcode"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

// PutAwayUseCase ubicación de pallets recibidos (traslado 311 en SAP).
type PutAwayUseCase struct {
	procs       repository.ProcedureCaller
	flow        *movement.Workflow
	timeout     time.Duration
	commitChunk int
	log         zerolog.Logger
}

// NewPutAwayUseCase construye el caso de uso.
func NewPutAwayUseCase(procs repository.ProcedureCaller, flow *movement.Workflow, timeout time.Duration, commitChunk int, log zerolog.Logger) *PutAwayUseCase {
	return &PutAwayUseCase{procs: procs, flow: flow, timeout: timeout, commitChunk: commitChunk, log: log}
}

// Scan valida cada pallet del código compuesto contra la ubicación, contabiliza el
// traslado y confirma cada serie con el documento obtenido.
func (uc *PutAwayUseCase) Scan(ctx context.Context, op entity.Operator, req dto.PutAwayRequest) (*dto.TransactionResponse, error) {
	scans, err := barcode.ParseScan(decodeScan(uc.log, req.ScanBarcodes))
	if err != nil {
		return rejectedResponse(err.Error()), nil
	}
	location := strings.TrimSpace(req.Location)

	tx := movement.Transaction{
		Name:    "putaway",
		GMCode:  entity.GMCodeTransferPosting,
		UserID:  op.UserID,
		Timeout: uc.timeout,
		Validate: func(ctx context.Context) (movement.Validation, error) {
			if label, err := precheck(putAwayCommits(scans, location, op.UserID, noDocument)); err != nil {
				uc.log.Warn().Err(err).Str("serial", label).Msg("serie rechazada antes de contabilizar")
				return movement.Reject(labelled(label, "serie o pallet demasiado largo para registrar")), nil
			}
			calls := make([]procCall, len(scans))
			for i, s := range scans {
				calls[i] = procCall{Label: s.PalletBarcode, Proc: storedproc.PutAwayValidate, Args: storedproc.Args{
					"pallet_barcode": s.PalletBarcode,
					"location":       location,
					"quantity":       s.Quantity,
					"user_id":        op.UserID,
				}}
			}
			outcomes, err := callAll(ctx, uc.procs, uc.commitChunk, calls)
			if err != nil {
				return movement.Validation{}, err
			}
			v := movement.Validation{HeaderText: "PUTAWAY " + location}
			for i, o := range outcomes {
				if o.Rejected {
					return movement.Reject(labelled(scans[i].PalletBarcode, o.Message)), nil
				}
				item := itemFromRow(o.Row, scans[i].PalletBarcode, op)
				item.MoveType = entity.MoveTypeSlocToSloc
				item.Quantity = scans[i].Quantity
				item.MoveStorageLocation = o.Row.String("ToStorageLocation")
				if item.MoveStorageLocation == "" {
					item.MoveStorageLocation = location
				}
				v.Items = append(v.Items, item)
			}
			return v, nil
		},
		Commit: func(ctx context.Context, posting movement.Posting) (movement.Commit, error) {
			calls := putAwayCommits(scans, location, op.UserID, posting.DocumentFor)
			return commitBatch(ctx, uc.procs, uc.commitChunk, calls,
				fmt.Sprintf("%d pallet(s) ubicados en %s", len(scans), location))
		},
	}

	res, err := uc.flow.Run(ctx, tx)
	if err != nil {
		return nil, err
	}
	return toResponse(res), nil
}

// putAwayCommits una confirmación por serie; un pallet sin series se confirma una vez.
func putAwayCommits(scans []entity.PalletScan, location, userID string, documentFor func(string) string) []procCall {
	var calls []procCall
	for _, s := range scans {
		serials := s.Serials
		if len(serials) == 0 {
			serials = []string{""}
		}
		for _, serial := range serials {
			label := s.PalletBarcode
			if serial != "" {
				label = serial
			}
			calls = append(calls, procCall{Label: label, Proc: storedproc.PutAwayCommit, Args: storedproc.Args{
				"pallet_barcode":    s.PalletBarcode,
				"serial_no":         serial,
				"location":          location,
				"material_document": documentFor(s.PalletBarcode),
				"user_id":           userID,
			}})
		}
	}
	return calls
}
