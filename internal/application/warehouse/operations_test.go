package warehouse_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/application/warehouse"
	"github.com/jhoicas/wms-sap-api/internal/domain"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

func TestPicking_CantidadCeroTomaPalletCompleto(t *testing.T) {
	procs := newFakeProcs()
	procs.on(storedproc.PickingValidate, func(a storedproc.Args) storedproc.Row {
		row := stockRow("40001234", "B1")(a)
		row["OrderNo"] = "1000234"
		return row
	})
	poster := &fakePoster{}
	uc := warehouse.NewPickingUseCase(procs, newWorkflow(poster, &fakeErrorLog{}), &fakeSAPLookup{}, time.Minute, time.Minute, zerolog.Nop())

	res, err := uc.Scan(context.Background(), operator, dto.PickingRequest{Barcode: "PAL001", PicklistNo: "PL-77"})
	require.NoError(t, err)
	assert.Equal(t, "T", res.Status)

	require.Len(t, poster.postings, 1)
	item := poster.postings[0].Items[0]
	assert.Equal(t, entity.MoveTypeIssueForOrder, item.MoveType)
	assert.Equal(t, "000001000234", item.OrderID)
	assert.True(t, decimal.NewFromInt(25).Equal(item.Quantity))

	commits := procs.callsTo(storedproc.PickingCommit)
	require.Len(t, commits, 1)
	assert.True(t, decimal.NewFromInt(25).Equal(commits[0]["quantity"].(decimal.Decimal)))
}

func TestPicking_ErrorDeRedEnSAP_StatusT(t *testing.T) {
	procs := newFakeProcs()
	procs.on(storedproc.PickingValidate, stockRow("40001234", "B1"))
	poster := &fakePoster{respond: func(entity.GoodsMovementPosting) (entity.SAPOutcome, error) {
		return entity.SAPOutcome{}, errors.New("dial tcp 10.0.0.1:5000: connection refused")
	}}
	errLog := &fakeErrorLog{}
	uc := warehouse.NewPickingUseCase(procs, newWorkflow(poster, errLog), &fakeSAPLookup{}, time.Minute, time.Minute, zerolog.Nop())

	res, err := uc.Scan(context.Background(), operator, dto.PickingRequest{Barcode: "PAL001", PicklistNo: "PL-77", Quantity: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, "T", res.Status)
	assert.True(t, res.ErrorInSAP)
	assert.NotEmpty(t, res.SapMessage)
	assert.Len(t, errLog.rows, 1)
	assert.Len(t, procs.callsTo(storedproc.PickingCommit), 1)
}

func TestCloseDelivery_SAPCaidoRegistraLocal(t *testing.T) {
	procs := newFakeProcs()
	sap := &fakeSAPLookup{closeErr: errors.New("timeout tras 2m0s llamando a SAP")}
	uc := warehouse.NewPickingUseCase(procs, nil, sap, time.Minute, time.Minute, zerolog.Nop())

	res, err := uc.CloseDelivery(context.Background(), operator, dto.CloseDeliveryRequest{DeliveryNo: "8000001"})
	require.NoError(t, err)
	assert.Equal(t, "T", res.Status)
	assert.True(t, res.ErrorInSAP)
	assert.Equal(t, false, res.Data["Closed"])

	calls := procs.callsTo(storedproc.PickingCloseDelivery)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0]["sap_message"], "timeout")
}

func TestCloseDelivery_Cerrada(t *testing.T) {
	sap := &fakeSAPLookup{close: &entity.DeliveryClose{Closed: true, Message: "Entrega grabada"}}
	uc := warehouse.NewPickingUseCase(newFakeProcs(), nil, sap, time.Minute, time.Minute, zerolog.Nop())

	res, err := uc.CloseDelivery(context.Background(), operator, dto.CloseDeliveryRequest{DeliveryNo: "8000001"})
	require.NoError(t, err)
	assert.False(t, res.ErrorInSAP)
	assert.Equal(t, true, res.Data["Closed"])
}

func TestResorting_MueveAlLoteNuevo(t *testing.T) {
	procs := newFakeProcs()
	procs.on(storedproc.ResortValidate, stockRow("40001234", "B1"))
	poster := &fakePoster{}
	uc := warehouse.NewResortingUseCase(procs, newWorkflow(poster, &fakeErrorLog{}), time.Second, zerolog.Nop())

	res, err := uc.Scan(context.Background(), operator, dto.ResortRequest{Barcode: "PAL001", NewBatch: "b2"})
	require.NoError(t, err)
	assert.Equal(t, "T", res.Status)

	item := poster.postings[0].Items[0]
	assert.Equal(t, entity.GMCodeTransferPosting, poster.postings[0].GMCode)
	assert.Equal(t, entity.MoveTypeBatchToBatch, item.MoveType)
	assert.Equal(t, "B1", item.Batch)
	assert.Equal(t, "B2", item.MoveBatch)

	commits := procs.callsTo(storedproc.ResortCommit)
	require.Len(t, commits, 1)
	assert.Equal(t, "B2", commits[0]["new_batch"])
	assert.Equal(t, "4900000001", commits[0]["material_document"])
}

func TestStockTransfer_AlmacenDestino(t *testing.T) {
	procs := newFakeProcs()
	procs.on(storedproc.TransferValidate, stockRow("40001234", "B1"))
	poster := &fakePoster{}
	uc := warehouse.NewStockTransferUseCase(procs, newWorkflow(poster, &fakeErrorLog{}), time.Second, zerolog.Nop())

	res, err := uc.Scan(context.Background(), operator, dto.StockTransferRequest{Barcode: "PAL001", ToLocation: "2000"})
	require.NoError(t, err)
	assert.Equal(t, "T", res.Status)

	item := poster.postings[0].Items[0]
	assert.Equal(t, entity.MoveTypeSlocToSloc, item.MoveType)
	assert.Equal(t, "1100", item.StorageLocation)
	assert.Equal(t, "2000", item.MoveStorageLocation)
}

func TestPalletBreak_GeneraPalletNuevo(t *testing.T) {
	procs := newFakeProcs()
	procs.on(storedproc.PalletBreakValidate, func(storedproc.Args) storedproc.Row {
		return storedproc.Row{"Status": "T", "NewPalletBarcode": "PAL009", "RemainingQuantity": "15"}
	})
	uc := warehouse.NewPalletBreakUseCase(procs, zerolog.Nop())

	res, err := uc.Validate(context.Background(), operator, dto.PalletBreakRequest{Barcode: "PAL001", BreakQuantity: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, "T", res.Status)
	assert.Equal(t, "PAL009", res.Data["NewPalletBarcode"])
	assert.Len(t, procs.callsTo(storedproc.PalletBreakValidate), 1)
}

func TestPalletBreak_CantidadCero(t *testing.T) {
	uc := warehouse.NewPalletBreakUseCase(newFakeProcs(), zerolog.Nop())
	_, err := uc.Validate(context.Background(), operator, dto.PalletBreakRequest{Barcode: "PAL001"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaterials_CentroDelOperario(t *testing.T) {
	sap := &fakeSAPLookup{}
	uc := warehouse.NewMaterialUseCase(sap, time.Minute, zerolog.Nop())

	res, err := uc.List(context.Background(), operator, "")
	require.NoError(t, err)
	assert.Equal(t, "T", res.Status)
	assert.Equal(t, "1000", sap.plant)

	res, err = uc.List(context.Background(), operator, "9999")
	require.NoError(t, err)
	assert.Equal(t, "F", res.Status)
	assert.Contains(t, res.Message, "502")
}

func TestNormalize(t *testing.T) {
	uc := warehouse.NewScanUseCase(zerolog.Nop())

	res := uc.Normalize(dto.NormalizeScanRequest{Barcode: "PAL001#10;SER1$SER2*PAL002#3"})
	assert.Equal(t, "T", res.Status)
	require.Len(t, res.Pallets, 2)
	assert.Equal(t, []string{"SER1", "SER2"}, res.Pallets[0].Serials)

	res = uc.Normalize(dto.NormalizeScanRequest{Barcode: "1000234|40001234|B1|P3"})
	require.NotNil(t, res.Label)
	assert.Equal(t, "000001000234", res.Label.OrderID)
	assert.Equal(t, "000000000040001234", res.Label.Material)
	assert.Equal(t, "40001234", res.Label.MaterialText)

	res = uc.Normalize(dto.NormalizeScanRequest{Barcode: "1000234|40001234"})
	assert.Equal(t, "F", res.Status)
	assert.NotEmpty(t, res.Message)

	// "UEFMMDAx" es "PAL001" en base64.
	res = uc.Normalize(dto.NormalizeScanRequest{Barcode: "UEFMMDAx"})
	assert.True(t, res.Decoded)
	assert.Equal(t, "PAL001", res.Value)
}
