// Package warehouse contiene los casos de uso de bodega: cada operación declara sus
// procedimientos de validación y confirmación y delega el flujo SAP en movement.Workflow.
package warehouse

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/application/movement"
	"github.com/jhoicas/wms-sap-api/internal/domain"
	"github.com/jhoicas/wms-sap-api/internal/domain/barcode"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

// decodeScan decodifica el código si viene en base64. Un fallo de decodificación no es
// fatal: se sigue con el valor original y queda en el log.
func decodeScan(log zerolog.Logger, raw string) string {
	res := barcode.Decode(raw)
	if res.Err != nil {
		log.Debug().Err(res.Err).Str("barcode", raw).Msg("código no decodificado, se usa tal cual")
	}
	return res.Value
}

// resolvePallet obtiene el número de pallet de un escaneo: código simple o etiqueta
// "ORDEN|MATERIAL|LOTE|PALLET".
func resolvePallet(log zerolog.Logger, raw string) (string, *entity.PalletLabel, error) {
	value := decodeScan(log, raw)
	if value == "" {
		return "", nil, fmt.Errorf("%w: código vacío", domain.ErrMalformedBarcode)
	}
	if strings.ContainsAny(value, "|;") {
		label, err := barcode.ParseLabel(value)
		if err != nil {
			return "", nil, err
		}
		return label.PalletNumber, &label, nil
	}
	return value, nil, nil
}

// itemFromRow arma la posición SAP con los datos de stock que devuelve la validación.
func itemFromRow(row storedproc.Row, pallet string, op entity.Operator) entity.GoodsMovementItem {
	unit := barcode.NormalizeUnit(row.String("Unit"))
	plant := row.String("Plant")
	if plant == "" {
		plant = op.Plant
	}
	item := entity.GoodsMovementItem{
		PalletBarcode:   pallet,
		Plant:           plant,
		StorageLocation: row.String("StorageLocation"),
		Batch:           row.String("Batch"),
		StockType:       row.String("StockType"),
		Quantity:        row.Decimal("Quantity"),
		Unit:            unit,
		UnitISO:         barcode.UnitISO(unit),
		SpecialStock:    row.String("SpecialStock"),
	}
	if m := row.String("Material"); m != "" {
		item.Material = barcode.PadMaterial(m)
	}
	if o := row.String("OrderNo"); o != "" {
		item.OrderID = barcode.PadOrder(o)
	}
	return item
}

// toResponse traduce el resultado del flujo al cuerpo HTTP.
func toResponse(res movement.Result) *dto.TransactionResponse {
	out := &dto.TransactionResponse{
		Status:            res.Status,
		Message:           res.Message,
		ErrorInSAP:        res.ErrorInSAP,
		PartialFailures:   res.PartialFailures,
		SapMessage:        res.SapMessage,
		ErrorMessages:     res.ErrorMessages,
		MaterialDocuments: res.MaterialDocuments,
		Data:              res.Data,
	}
	if len(res.MaterialDocuments) > 0 {
		out.MaterialDocument = res.MaterialDocuments[0]
	}
	return out
}

func rejectedResponse(message string) *dto.TransactionResponse {
	return &dto.TransactionResponse{Status: storedproc.StatusRejected, Message: message}
}

// procCall una llamada a procedimiento dentro de una tanda; Label identifica la
// llamada en los mensajes de fallo (pallet o serie).
type procCall struct {
	Label string
	Proc  storedproc.Procedure
	Args  storedproc.Args
}

// callOutcome resultado de una llamada de la tanda.
type callOutcome struct {
	Row      storedproc.Row
	Rejected bool
	Message  string
}

// callAll ejecuta las llamadas en paralelo acotado y devuelve los resultados en el
// mismo orden. Un error de base de datos corta la tanda; un rechazo de negocio no.
func callAll(ctx context.Context, procs repository.ProcedureCaller, chunk int, calls []procCall) ([]callOutcome, error) {
	out := make([]callOutcome, len(calls))
	err := movement.FanOut(ctx, calls, chunk, func(ctx context.Context, i int, c procCall) error {
		row, err := procs.Call(ctx, c.Proc, c.Args)
		if err != nil {
			return fmt.Errorf("%s (%s): %w", c.Proc.Name, c.Label, err)
		}
		out[i] = callOutcome{Row: row, Rejected: row.Rejected(), Message: row.Message()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// precheck valida contra la firma del procedimiento las llamadas de confirmación.
// Corre antes de contabilizar en SAP: después ya no se puede rechazar la transacción.
func precheck(calls []procCall) (string, error) {
	for _, c := range calls {
		if _, err := c.Proc.Bind(c.Args); err != nil {
			return c.Label, err
		}
	}
	return "", nil
}

func noDocument(string) string { return "" }

// commitBatch confirma localmente todas las llamadas. Si todas se rechazan la
// confirmación es un rechazo; si solo algunas, quedan como fallos parciales.
func commitBatch(ctx context.Context, procs repository.ProcedureCaller, chunk int, calls []procCall, okMessage string) (movement.Commit, error) {
	outcomes, err := callAll(ctx, procs, chunk, calls)
	if err != nil {
		return movement.Commit{}, err
	}
	var failures []string
	for i, o := range outcomes {
		if o.Rejected {
			failures = append(failures, labelled(calls[i].Label, o.Message))
		}
	}
	if len(calls) > 0 && len(failures) == len(calls) {
		return movement.Commit{Rejected: true, Message: strings.Join(failures, "; ")}, nil
	}
	return movement.Commit{Message: okMessage, Failures: failures}, nil
}

func labelled(label, message string) string {
	if message == "" {
		message = "rechazado"
	}
	if label == "" {
		return message
	}
	return label + ": " + message
}

// failureList acumula mensajes desde goroutines de una tanda.
type failureList struct {
	mu   sync.Mutex
	msgs []string
}

func (f *failureList) add(msg string) {
	f.mu.Lock()
	f.msgs = append(f.msgs, msg)
	f.mu.Unlock()
}

func (f *failureList) list() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.msgs...)
}
