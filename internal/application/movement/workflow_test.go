package movement_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sap-api/internal/application/movement"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakePoster struct {
	mu       sync.Mutex
	calls    []entity.GoodsMovementPosting
	timeouts []time.Duration
	respond  func(call int, p entity.GoodsMovementPosting) (entity.SAPOutcome, error)
}

func (f *fakePoster) CreateGoodsMovement(_ context.Context, p entity.GoodsMovementPosting, timeout time.Duration) (entity.SAPOutcome, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	f.timeouts = append(f.timeouts, timeout)
	n := len(f.calls)
	f.mu.Unlock()
	return f.respond(n, p)
}

type fakeErrorLog struct {
	mu   sync.Mutex
	rows []entity.SAPErrorLog
	err  error
}

func (f *fakeErrorLog) Insert(_ context.Context, row entity.SAPErrorLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeErrorLog) List(context.Context, entity.SAPErrorLogFilter) ([]entity.SAPErrorLog, int, error) {
	return f.rows, len(f.rows), nil
}

func okPoster(doc string) *fakePoster {
	return &fakePoster{respond: func(int, entity.GoodsMovementPosting) (entity.SAPOutcome, error) {
		return entity.SAPOutcome{MaterialDocument: doc, DocumentYear: "2024"}, nil
	}}
}

func newWorkflow(p movement.GoodsMovementPoster, logRepo *fakeErrorLog, opts ...movement.Option) *movement.Workflow {
	return movement.NewWorkflow(p, movement.NewFailureLogger(logRepo, zerolog.Nop()), zerolog.Nop(), opts...)
}

func items(n int) []entity.GoodsMovementItem {
	out := make([]entity.GoodsMovementItem, n)
	for i := range out {
		out[i] = entity.GoodsMovementItem{
			PalletBarcode: fmt.Sprintf("PAL%03d", i+1),
			Material:      "000000000040001234",
			Plant:         "1000",
			MoveType:      entity.MoveTypeSlocToSloc,
			Quantity:      decimal.NewFromInt(10),
		}
	}
	return out
}

// txRecorder construye una Transaction que registra si se llamó a Commit y con qué.
type txRecorder struct {
	commits  int
	postings []movement.Posting
}

func (r *txRecorder) tx(v movement.Validation, vErr error) movement.Transaction {
	return movement.Transaction{
		Name:    "test",
		GMCode:  entity.GMCodeTransferPosting,
		UserID:  "operario-con-nombre-largo",
		Timeout: 45 * time.Second,
		Validate: func(context.Context) (movement.Validation, error) {
			return v, vErr
		},
		Commit: func(_ context.Context, p movement.Posting) (movement.Commit, error) {
			r.commits++
			r.postings = append(r.postings, p)
			return movement.Commit{Message: "Ubicación asignada"}, nil
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_ValidacionRechazadaNoLlamaSAPNiConfirma(t *testing.T) {
	poster := okPoster("4900000001")
	logRepo := &fakeErrorLog{}
	rec := &txRecorder{}

	res, err := newWorkflow(poster, logRepo).Run(context.Background(), rec.tx(movement.Reject("Pallet no está en calidad liberada"), nil))
	require.NoError(t, err)

	assert.Equal(t, "F", res.Status)
	assert.Equal(t, "Pallet no está en calidad liberada", res.Message)
	assert.Empty(t, poster.calls, "SAP no debe llamarse tras un rechazo local")
	assert.Zero(t, rec.commits, "la confirmación local no debe ejecutarse tras un rechazo")
	assert.Contains(t, res.States, movement.StateRejected)
	assert.NotContains(t, res.States, movement.StateSAPAttempted)
}

func TestRun_ErrorDeRedSigueSiendoStatusT(t *testing.T) {
	poster := &fakePoster{respond: func(int, entity.GoodsMovementPosting) (entity.SAPOutcome, error) {
		return entity.SAPOutcome{}, errors.New("dial tcp 10.0.0.5:443: connect: connection refused")
	}}
	logRepo := &fakeErrorLog{}
	rec := &txRecorder{}

	res, err := newWorkflow(poster, logRepo).Run(context.Background(), rec.tx(movement.Validation{Items: items(2)}, nil))
	require.NoError(t, err)

	assert.Equal(t, "T", res.Status)
	assert.True(t, res.ErrorInSAP)
	assert.NotEmpty(t, res.SapMessage)
	assert.Contains(t, res.Message, "connection refused")
	assert.Len(t, logRepo.rows, 2, "una fila de log por posición")
	require.Equal(t, 1, rec.commits)
	assert.Equal(t, "", rec.postings[0].MaterialDocument())
	assert.Equal(t, []movement.State{
		movement.StateReceived, movement.StateLocallyValidated, movement.StateSAPAttempted,
		movement.StateSAPFailedLogged, movement.StateLocallyCommitted, movement.StateResponded,
	}, res.States)
}

func TestRun_SinDocumentoNiReturnRegistraUnaVezPorPosicion(t *testing.T) {
	poster := &fakePoster{respond: func(int, entity.GoodsMovementPosting) (entity.SAPOutcome, error) {
		return entity.SAPOutcome{}, nil
	}}
	logRepo := &fakeErrorLog{}
	rec := &txRecorder{}

	res, err := newWorkflow(poster, logRepo).Run(context.Background(), rec.tx(movement.Validation{Items: items(3)}, nil))
	require.NoError(t, err)

	assert.Len(t, logRepo.rows, 3)
	assert.Equal(t, 1, rec.commits, "la confirmación local corre después del log")
	assert.True(t, res.ErrorInSAP)
}

func TestRun_ErrorDeNegocioQuedaEnElLog(t *testing.T) {
	poster := &fakePoster{respond: func(int, entity.GoodsMovementPosting) (entity.SAPOutcome, error) {
		return entity.SAPOutcome{ErrorType: "E", ErrorMessage: "Batch blocked"}, nil
	}}
	logRepo := &fakeErrorLog{}
	rec := &txRecorder{}

	res, err := newWorkflow(poster, logRepo).Run(context.Background(), rec.tx(movement.Validation{Items: items(1)}, nil))
	require.NoError(t, err)

	require.Len(t, logRepo.rows, 1)
	assert.Contains(t, logRepo.rows[0].ErrorMessage, "Batch blocked")
	assert.Equal(t, "PAL001", logRepo.rows[0].PalletBarcode)
	assert.Equal(t, entity.GMCodeTransferPosting, logRepo.rows[0].GMCode)
	assert.Equal(t, "operario-con-nombre-largo", logRepo.rows[0].CreatedBy)
	assert.Equal(t, "", rec.postings[0].DocumentFor("PAL001"))
	assert.Equal(t, "Batch blocked", res.SapMessage)
}

func TestRun_ExitoDevuelveDocumentoYCabecera(t *testing.T) {
	poster := okPoster("4900000001")
	logRepo := &fakeErrorLog{}
	rec := &txRecorder{}
	fixed := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	v := movement.Validation{Items: items(1), HeaderText: "PUTAWAY PAL001 HACIA 5120 DESDE 1000"}
	res, err := newWorkflow(poster, logRepo, movement.WithClock(func() time.Time { return fixed })).
		Run(context.Background(), rec.tx(v, nil))
	require.NoError(t, err)

	assert.Equal(t, "T", res.Status)
	assert.False(t, res.ErrorInSAP)
	assert.Equal(t, []string{"4900000001"}, res.MaterialDocuments)
	assert.Equal(t, "Ubicación asignada", res.Message)
	assert.Empty(t, logRepo.rows)
	require.Len(t, poster.calls, 1)
	h := poster.calls[0].Header
	assert.Equal(t, fixed, h.PostingDate)
	assert.Len(t, h.HeaderText, 25)
	assert.Equal(t, "operario-con", h.UserName)
	assert.Equal(t, 45*time.Second, poster.timeouts[0])
	assert.Equal(t, "4900000001", rec.postings[0].DocumentFor("PAL001"))
}

func TestRun_TandasDeCincuentaYFalloParcial(t *testing.T) {
	poster := &fakePoster{respond: func(call int, _ entity.GoodsMovementPosting) (entity.SAPOutcome, error) {
		if call == 2 {
			return entity.SAPOutcome{ErrorType: "A", ErrorMessage: "Período cerrado"}, nil
		}
		return entity.SAPOutcome{MaterialDocument: fmt.Sprintf("49000000%02d", call)}, nil
	}}
	logRepo := &fakeErrorLog{}
	rec := &txRecorder{}

	res, err := newWorkflow(poster, logRepo).Run(context.Background(), rec.tx(movement.Validation{Items: items(120)}, nil))
	require.NoError(t, err)

	require.Len(t, poster.calls, 3)
	assert.Len(t, poster.calls[0].Items, 50)
	assert.Len(t, poster.calls[1].Items, 50)
	assert.Len(t, poster.calls[2].Items, 20)
	assert.Len(t, logRepo.rows, 50, "solo la tanda fallida se registra")
	assert.True(t, res.PartialFailures)
	assert.True(t, res.ErrorInSAP)
	assert.Equal(t, []string{"4900000001", "4900000003"}, res.MaterialDocuments)

	p := rec.postings[0]
	assert.Equal(t, "4900000001", p.DocumentFor("PAL001"))
	assert.Equal(t, "", p.DocumentFor("PAL051"))
	assert.Equal(t, "4900000003", p.DocumentFor("PAL120"))
}

func TestRun_FalloDelLogNoInterrumpe(t *testing.T) {
	poster := &fakePoster{respond: func(int, entity.GoodsMovementPosting) (entity.SAPOutcome, error) {
		return entity.SAPOutcome{}, errors.New("timeout")
	}}
	logRepo := &fakeErrorLog{err: errors.New("log caído")}
	rec := &txRecorder{}

	res, err := newWorkflow(poster, logRepo).Run(context.Background(), rec.tx(movement.Validation{Items: items(2)}, nil))
	require.NoError(t, err)
	assert.Equal(t, "T", res.Status)
	assert.Equal(t, 1, rec.commits)
}

func TestRun_SinPosicionesNoLlamaSAP(t *testing.T) {
	poster := okPoster("x")
	rec := &txRecorder{}
	res, err := newWorkflow(poster, &fakeErrorLog{}).Run(context.Background(), rec.tx(movement.Validation{Message: "ok"}, nil))
	require.NoError(t, err)
	assert.Empty(t, poster.calls)
	assert.Equal(t, 1, rec.commits)
	assert.False(t, rec.postings[0].Attempted)
	assert.Equal(t, "T", res.Status)
}

func TestRun_ErrorInesperadoEnValidacion(t *testing.T) {
	poster := okPoster("x")
	rec := &txRecorder{}
	_, err := newWorkflow(poster, &fakeErrorLog{}).Run(context.Background(), rec.tx(movement.Validation{}, errors.New("db down")))
	require.Error(t, err)
	assert.Empty(t, poster.calls)
	assert.Zero(t, rec.commits)
}

func TestRun_ConfirmacionRechazadaEsStatusF(t *testing.T) {
	tx := movement.Transaction{
		Name: "test",
		Validate: func(context.Context) (movement.Validation, error) {
			return movement.Validation{Items: items(1)}, nil
		},
		Commit: func(context.Context, movement.Posting) (movement.Commit, error) {
			return movement.Commit{Rejected: true, Message: "Ubicación ocupada"}, nil
		},
	}
	res, err := newWorkflow(okPoster("1"), &fakeErrorLog{}).Run(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, "F", res.Status)
	assert.Equal(t, "Ubicación ocupada", res.Message)
}

func TestRun_FallosParcialesDeConfirmacion(t *testing.T) {
	tx := movement.Transaction{
		Name: "test",
		Validate: func(context.Context) (movement.Validation, error) {
			return movement.Validation{}, nil
		},
		Commit: func(context.Context, movement.Posting) (movement.Commit, error) {
			return movement.Commit{Failures: []string{"SER2: serie ya ubicada"}}, nil
		},
	}
	res, err := newWorkflow(okPoster("1"), &fakeErrorLog{}).Run(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, "T", res.Status)
	assert.True(t, res.PartialFailures)
	assert.False(t, res.ErrorInSAP)
	assert.Equal(t, []string{"SER2: serie ya ubicada"}, res.ErrorMessages)
}

func TestFanOut_ConcurrenciaAcotada(t *testing.T) {
	var current, peak int64
	data := make([]int, 230)
	var processed int64

	err := movement.FanOut(context.Background(), data, 50, func(_ context.Context, _ int, _ int) error {
		n := atomic.AddInt64(&current, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt64(&current, -1)
		atomic.AddInt64(&processed, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(230), processed)
	assert.LessOrEqual(t, peak, int64(50))
}

func TestFanOut_DevuelveError(t *testing.T) {
	err := movement.FanOut(context.Background(), []string{"a", "b", "c"}, 2, func(_ context.Context, _ int, s string) error {
		if s == "b" {
			return errors.New("fallo b")
		}
		return nil
	})
	assert.EqualError(t, err, "fallo b")
}

func TestChunk(t *testing.T) {
	chunks := movement.Chunk([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunks)
	assert.Nil(t, movement.Chunk([]int{}, 2))
}
