package warehouse_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/movement"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

type procCall struct {
	name string
	args storedproc.Args
}

// fakeProcs valida los argumentos contra el esquema real antes de responder.
type fakeProcs struct {
	mu    sync.Mutex
	rows  map[string]func(storedproc.Args) storedproc.Row
	errs  map[string]error
	calls []procCall
}

func newFakeProcs() *fakeProcs {
	return &fakeProcs{rows: map[string]func(storedproc.Args) storedproc.Row{}, errs: map[string]error{}}
}

func (f *fakeProcs) on(proc storedproc.Procedure, fn func(storedproc.Args) storedproc.Row) {
	f.rows[proc.Name] = fn
}

func (f *fakeProcs) Call(_ context.Context, proc storedproc.Procedure, args storedproc.Args) (storedproc.Row, error) {
	if _, err := proc.Bind(args); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.calls = append(f.calls, procCall{name: proc.Name, args: args})
	fn := f.rows[proc.Name]
	err := f.errs[proc.Name]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return storedproc.Row{"Status": "T"}, nil
	}
	return fn(args), nil
}

func (f *fakeProcs) CallAll(ctx context.Context, proc storedproc.Procedure, args storedproc.Args) ([]storedproc.Row, error) {
	row, err := f.Call(ctx, proc, args)
	if err != nil {
		return nil, err
	}
	return []storedproc.Row{row}, nil
}

func (f *fakeProcs) callsTo(proc storedproc.Procedure) []storedproc.Args {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []storedproc.Args
	for _, c := range f.calls {
		if c.name == proc.Name {
			out = append(out, c.args)
		}
	}
	return out
}

type fakePoster struct {
	mu       sync.Mutex
	postings []entity.GoodsMovementPosting
	respond  func(entity.GoodsMovementPosting) (entity.SAPOutcome, error)
}

func (p *fakePoster) CreateGoodsMovement(_ context.Context, posting entity.GoodsMovementPosting, _ time.Duration) (entity.SAPOutcome, error) {
	p.mu.Lock()
	p.postings = append(p.postings, posting)
	p.mu.Unlock()
	if p.respond == nil {
		return entity.SAPOutcome{MaterialDocument: "4900000001", DocumentYear: "2026"}, nil
	}
	return p.respond(posting)
}

type fakeErrorLog struct {
	mu   sync.Mutex
	rows []entity.SAPErrorLog
}

func (r *fakeErrorLog) Insert(_ context.Context, row entity.SAPErrorLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, row)
	return nil
}

func (r *fakeErrorLog) List(context.Context, entity.SAPErrorLogFilter) ([]entity.SAPErrorLog, int, error) {
	return r.rows, len(r.rows), nil
}

func newWorkflow(poster *fakePoster, errLog *fakeErrorLog) *movement.Workflow {
	return movement.NewWorkflow(poster, movement.NewFailureLogger(errLog, zerolog.Nop()), zerolog.Nop())
}

type fakeSAPLookup struct {
	closeErr error
	close    *entity.DeliveryClose
	plant    string
}

func (f *fakeSAPLookup) OrderDetails(context.Context, string, time.Duration) (json.RawMessage, error) {
	return json.RawMessage(`{"ORDER":"ok"}`), nil
}

func (f *fakeSAPLookup) Materials(_ context.Context, plant string, _ time.Duration) (json.RawMessage, error) {
	f.plant = plant
	if plant == "9999" {
		return nil, errors.New("SAP middleware respondió HTTP 502 Bad Gateway")
	}
	return json.RawMessage(`[{"MATERIAL":"40001234"}]`), nil
}

func (f *fakeSAPLookup) PicklistDetails(context.Context, string, time.Duration) (json.RawMessage, error) {
	return json.RawMessage(`{"ITEMS":[]}`), nil
}

func (f *fakeSAPLookup) CloseDeliveryOrder(context.Context, string, time.Duration) (*entity.DeliveryClose, error) {
	if f.closeErr != nil {
		return nil, f.closeErr
	}
	return f.close, nil
}

var operator = entity.Operator{UserID: "op01", Plant: "1000", Role: "operario"}

func stockRow(material, batch string) func(storedproc.Args) storedproc.Row {
	return func(storedproc.Args) storedproc.Row {
		return storedproc.Row{
			"Status":          "T",
			"Material":        material,
			"Batch":           batch,
			"Plant":           "1000",
			"StorageLocation": "1100",
			"Quantity":        "25",
			"Unit":            "kg",
		}
	}
}
