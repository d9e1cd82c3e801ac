// Package movement implementa el flujo común de las operaciones de bodega que
// contabilizan en SAP: validación local → contabilización SAP → log de fallos →
// confirmación local → respuesta. La operación local nunca se bloquea porque SAP
// no esté disponible; lo que SAP no contabiliza queda en el log para conciliación.
package movement

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

var errPanicked = errors.New("panic")

const (
	maxBatchSize      = 50
	maxHeaderText     = 25
	maxSAPUserName    = 12
	defaultSAPTimeout = 30 * time.Second
)

// Workflow ejecuta Transactions. Es seguro para uso concurrente.
type Workflow struct {
	poster    GoodsMovementPoster
	failures  *FailureLogger
	batchSize int
	now       func() time.Time
	log       zerolog.Logger
}

// Option ajusta el Workflow.
type Option func(*Workflow)

// WithBatchSize posiciones por llamada a SAP (máximo 50).
func WithBatchSize(n int) Option {
	return func(w *Workflow) {
		if n > 0 && n <= maxBatchSize {
			w.batchSize = n
		}
	}
}

// WithClock reloj para las fechas de contabilización.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// NewWorkflow construye el flujo.
func NewWorkflow(poster GoodsMovementPoster, failures *FailureLogger, log zerolog.Logger, opts ...Option) *Workflow {
	w := &Workflow{
		poster:    poster,
		failures:  failures,
		batchSize: maxBatchSize,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run ejecuta la transacción. Un error solo se devuelve ante fallos inesperados
// (base de datos caída, panic en un paso); los rechazos de negocio y los fallos de SAP
// viajan en el Result.
func (w *Workflow) Run(ctx context.Context, tx Transaction) (res Result, err error) {
	states := []State{StateReceived}
	log := w.log.With().Str("tx", tx.Name).Str("gm_code", tx.GMCode).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("panic en flujo de movimiento")
			err = fmt.Errorf("%s: %w: %v", tx.Name, errPanicked, r)
		}
	}()

	v, err := tx.Validate(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%s: validación: %w", tx.Name, err)
	}
	if v.Rejected {
		log.Info().Str("message", v.Message).Msg("rechazado en validación local")
		return rejected(v.Message, append(states, StateRejected, StateResponded)), nil
	}
	states = append(states, StateLocallyValidated)

	var posting Posting
	if len(v.Items) > 0 {
		states = append(states, StateSAPAttempted)
		posting = w.post(ctx, tx, v)
		if posting.Failed() {
			states = append(states, StateSAPFailedLogged)
		} else {
			states = append(states, StateSAPOk)
		}
	}

	c, err := tx.Commit(ctx, posting)
	if err != nil {
		return Result{}, fmt.Errorf("%s: confirmación local: %w", tx.Name, err)
	}
	if c.Rejected {
		log.Warn().Str("message", c.Message).Msg("confirmación local rechazada")
		return rejected(c.Message, append(states, StateRejected, StateResponded)), nil
	}
	states = append(states, StateLocallyCommitted, StateResponded)

	res = compose(v, posting, c, states)
	log.Info().
		Bool("error_in_sap", res.ErrorInSAP).
		Strs("material_documents", res.MaterialDocuments).
		Msg("transacción completada")
	return res, nil
}

// post envía las posiciones en tandas y registra en el log cada posición fallida.
func (w *Workflow) post(ctx context.Context, tx Transaction, v Validation) Posting {
	timeout := tx.Timeout
	if timeout <= 0 {
		timeout = defaultSAPTimeout
	}
	header := entity.GoodsMovementHeader{
		PostingDate:  w.now(),
		DocumentDate: w.now(),
		HeaderText:   truncate(v.HeaderText, maxHeaderText),
		UserName:     truncate(tx.UserID, maxSAPUserName),
	}

	posting := Posting{Attempted: true}
	for _, batch := range Chunk(v.Items, w.batchSize) {
		outcome := w.invoke(ctx, entity.GoodsMovementPosting{GMCode: tx.GMCode, Header: header, Items: batch}, timeout)
		if !outcome.Succeeded() {
			w.log.Warn().
				Str("tx", tx.Name).
				Str("error_type", outcome.ErrorType).
				Bool("transport", outcome.Transport).
				Str("error", outcome.ErrorMessage).
				Int("items", len(batch)).
				Msg("SAP no contabilizó la tanda")
			if w.failures != nil {
				w.failures.LogBatch(ctx, tx.GMCode, tx.UserID, batch, outcome.ErrorMessage)
			}
		}
		posting.Batches = append(posting.Batches, BatchOutcome{Items: batch, Outcome: outcome})
	}
	return posting
}

// invoke normaliza los tres desenlaces (documento, error de negocio, error de transporte)
// a un SAPOutcome: todo lo que no trae documento es fallo.
func (w *Workflow) invoke(ctx context.Context, p entity.GoodsMovementPosting, timeout time.Duration) (outcome entity.SAPOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = entity.SAPOutcome{Transport: true, ErrorMessage: fmt.Sprintf("error inesperado llamando a SAP: %v", r)}
		}
	}()
	out, err := w.poster.CreateGoodsMovement(ctx, p, timeout)
	if err != nil {
		return entity.SAPOutcome{Transport: true, ErrorMessage: err.Error()}
	}
	if !out.Succeeded() && out.ErrorMessage == "" {
		out.ErrorMessage = "SAP no devolvió documento de material"
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
