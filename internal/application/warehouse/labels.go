package warehouse

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/application/movement"
	"github.com/jhoicas/wms-sap-api/internal/application/ports"
	"github.com/jhoicas/wms-sap-api/internal/domain/barcode"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/repository"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

const labelDateLayout = "02/01/2006"

// LabelUseCase impresión masiva de etiquetas por serie.
type LabelUseCase struct {
	procs   repository.ProcedureCaller
	printer ports.LabelPrinter
	chunk   int
	now     func() time.Time
	log     zerolog.Logger
}

// NewLabelUseCase construye el caso de uso. chunk acota las etiquetas en vuelo.
func NewLabelUseCase(procs repository.ProcedureCaller, printer ports.LabelPrinter, chunk int, log zerolog.Logger) *LabelUseCase {
	return &LabelUseCase{procs: procs, printer: printer, chunk: chunk, now: time.Now, log: log}
}

// Print imprime una etiqueta por serie y la marca como impresa. Una serie que falla no
// detiene a las demás; solo un error de base de datos corta la tanda.
func (uc *LabelUseCase) Print(ctx context.Context, op entity.Operator, req dto.PrintLabelsRequest) (*dto.PrintLabelsResponse, error) {
	host := strings.TrimSpace(req.PrinterIP)
	log := uc.log.With().Str("print_job", uuid.NewString()).Str("printer", host).Logger()
	var printed, unmarked atomic.Int64
	failures := &failureList{}

	err := movement.FanOut(ctx, req.Serials, uc.chunk, func(ctx context.Context, _ int, serial string) error {
		serial = strings.TrimSpace(serial)
		row, err := uc.procs.Call(ctx, storedproc.LabelSerialDetails, storedproc.Args{
			"serial_no": serial,
			"user_id":   op.UserID,
		})
		if err != nil {
			return err
		}
		if row.Rejected() {
			failures.add(labelled(serial, row.Message()))
			return nil
		}

		job := uc.labelJob(serial, row)
		if err := uc.printer.Print(ctx, host, req.Template, job.Values); err != nil {
			log.Warn().Err(err).Str("serial", serial).Msg("etiqueta no impresa")
			failures.add(labelled(serial, "no se pudo imprimir: "+err.Error()))
			return nil
		}

		marked, err := uc.procs.Call(ctx, storedproc.LabelMarkPrinted, storedproc.Args{
			"serial_no":  serial,
			"printer_ip": host,
			"user_id":    op.UserID,
		})
		if err != nil {
			return err
		}
		if marked.Rejected() {
			unmarked.Add(1)
			failures.add(labelled(serial, "impresa pero no registrada: "+marked.Message()))
			return nil
		}
		printed.Add(1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("impresión de etiquetas: %w", err)
	}

	failed := failures.list()
	log.Info().Int64("printed", printed.Load()).Int64("unmarked", unmarked.Load()).Int("errors", len(failed)).Msg("tanda de etiquetas terminada")
	out := &dto.PrintLabelsResponse{
		Status:        storedproc.StatusOK,
		Printed:       int(printed.Load()),
		Unmarked:      int(unmarked.Load()),
		ErrorMessages: failed,
	}
	out.Failed = len(req.Serials) - out.Printed - out.Unmarked
	switch {
	case out.Printed == 0 && out.Unmarked == 0:
		out.Status = storedproc.StatusRejected
		out.Message = "No se imprimió ninguna etiqueta"
	case len(failed) > 0:
		out.PartialFailures = true
		out.Message = fmt.Sprintf("%d de %d etiquetas impresas", out.Printed, len(req.Serials))
	default:
		out.Message = fmt.Sprintf("%d etiquetas impresas", out.Printed)
	}
	return out, nil
}

// labelJob los tokens de la plantilla son "V" + columna del procedimiento
// (VMaterial, VBatch...) más los fijos VSerial, VItemCode, VQty, VDesc y VDate.
func (uc *LabelUseCase) labelJob(serial string, row storedproc.Row) entity.LabelJob {
	values := make(map[string]string, len(row)+5)
	for col := range row {
		if strings.EqualFold(col, "Status") || strings.EqualFold(col, "Message") {
			continue
		}
		values["V"+col] = row.String(col)
	}
	values["VSerial"] = serial
	values["VItemCode"] = barcode.TrimLeadingZeros(row.String("Material"))
	values["VBatch"] = row.String("Batch")
	values["VQty"] = row.Decimal("Quantity").String()
	values["VDesc"] = row.String("MaterialDescription")
	values["VDate"] = uc.now().Format(labelDateLayout)
	return entity.LabelJob{Serial: serial, Values: values}
}
