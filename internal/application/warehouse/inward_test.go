package warehouse_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/application/warehouse"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

func newInward(procs *fakeProcs, poster *fakePoster) *warehouse.InwardUseCase {
	return warehouse.NewInwardUseCase(procs, newWorkflow(poster, &fakeErrorLog{}), &fakeSAPLookup{}, 300*time.Second, time.Minute, 10, zerolog.Nop())
}

func TestInward_ExcluyePalletsRechazados(t *testing.T) {
	procs := newFakeProcs()
	procs.on(storedproc.InwardValidate, func(a storedproc.Args) storedproc.Row {
		if a["pallet_barcode"] == "P2" {
			return storedproc.Row{"Status": "F", "Message": "Pallet ya recibido"}
		}
		return stockRow("40001234", "B1")(a)
	})
	poster := &fakePoster{}
	uc := newInward(procs, poster)

	res, err := uc.Receipt(context.Background(), operator, dto.InwardRequest{
		OrderNo:  "1000234",
		Barcodes: []string{"P1", "P2", "1000234|40001234|B1|P3", "P1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "T", res.Status)
	assert.True(t, res.PartialFailures)
	assert.Contains(t, res.ErrorMessages, "P2: Pallet ya recibido")

	require.Len(t, poster.postings, 1)
	p := poster.postings[0]
	assert.Equal(t, entity.GMCodeGoodsReceiptOrder, p.GMCode)
	require.Len(t, p.Items, 2)
	for _, it := range p.Items {
		assert.Equal(t, entity.MoveTypeReceiptForOrder, it.MoveType)
		assert.Equal(t, entity.MovementIndicatorOrder, it.MovementIndicator)
		assert.Equal(t, "000001000234", it.OrderID)
	}

	commits := procs.callsTo(storedproc.InwardCommit)
	assert.Len(t, commits, 2)
}

func TestInward_EtiquetaDeOtraOrden(t *testing.T) {
	procs := newFakeProcs()
	uc := newInward(procs, &fakePoster{})

	res, err := uc.Receipt(context.Background(), operator, dto.InwardRequest{
		OrderNo:  "1000234",
		Barcodes: []string{"999|40001234|B1|P3"},
	})
	require.NoError(t, err)
	assert.Equal(t, "F", res.Status)
	assert.Empty(t, procs.calls)
}

func TestInward_TandasDeCincuenta(t *testing.T) {
	procs := newFakeProcs()
	procs.on(storedproc.InwardValidate, stockRow("40001234", "B1"))
	n := 0
	poster := &fakePoster{respond: func(p entity.GoodsMovementPosting) (entity.SAPOutcome, error) {
		n++
		if n == 2 {
			return entity.SAPOutcome{ErrorType: "E", ErrorMessage: "Periodo cerrado"}, nil
		}
		return entity.SAPOutcome{MaterialDocument: fmt.Sprintf("49000000%02d", n)}, nil
	}}
	uc := newInward(procs, poster)

	barcodes := make([]string, 120)
	for i := range barcodes {
		barcodes[i] = fmt.Sprintf("PAL%03d", i)
	}
	res, err := uc.Receipt(context.Background(), operator, dto.InwardRequest{OrderNo: "1000234", Barcodes: barcodes})
	require.NoError(t, err)

	require.Len(t, poster.postings, 3)
	assert.Len(t, poster.postings[0].Items, 50)
	assert.Len(t, poster.postings[1].Items, 50)
	assert.Len(t, poster.postings[2].Items, 20)
	assert.Equal(t, "T", res.Status)
	assert.True(t, res.ErrorInSAP)
	assert.True(t, res.PartialFailures)

	docs := map[string]int{}
	for _, c := range procs.callsTo(storedproc.InwardCommit) {
		docs[c["material_document"].(string)]++
	}
	assert.Equal(t, 50, docs["4900000001"])
	assert.Equal(t, 50, docs[""])
	assert.Equal(t, 20, docs["4900000003"])
}

func TestInward_OrderDetails(t *testing.T) {
	uc := newInward(newFakeProcs(), &fakePoster{})
	res, err := uc.OrderDetails(context.Background(), dto.OrderDetailsRequest{OrderNo: "1000234"})
	require.NoError(t, err)
	assert.Equal(t, "T", res.Status)
	assert.JSONEq(t, `{"ORDER":"ok"}`, string(res.Data))
}
