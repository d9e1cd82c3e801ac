package sap_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/internal/infrastructure/sap"
	"github.com/jhoicas/wms-sap-api/pkg/config"
)

func newClient(t *testing.T, handler http.HandlerFunc) *sap.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return sap.NewClient(config.SAPConfig{
		MiddlewareURL: srv.URL + "/",
		Connection:    config.SAPConnection{Client: "100", User: "RFCUSER"},
	}, zerolog.Nop())
}

func posting() entity.GoodsMovementPosting {
	return entity.GoodsMovementPosting{
		GMCode: entity.GMCodeGoodsReceiptOrder,
		Header: entity.GoodsMovementHeader{
			PostingDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			DocumentDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			HeaderText:   "INWARD",
			UserName:     "op1",
		},
		Items: []entity.GoodsMovementItem{{
			PalletBarcode:     "P0001",
			Material:          "40001234",
			Plant:             "1000",
			StorageLocation:   "0001",
			Batch:             "B2401",
			MoveType:          entity.MoveTypeReceiptForOrder,
			Quantity:          decimal.RequireFromString("10.5"),
			Unit:              "kg",
			OrderID:           "1000234",
			MovementIndicator: entity.MovementIndicatorOrder,
		}},
	}
}

func TestCreateGoodsMovement_EnvelopeYExito(t *testing.T) {
	var got map[string]any
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/goods-movement/create", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"GoodsMovementHeadRet":{"MAT_DOC":"4900000123","DOC_YEAR":"2024"},"Return":[]}`))
	})

	out, err := client.CreateGoodsMovement(context.Background(), posting(), time.Second)
	require.NoError(t, err)
	assert.True(t, out.Succeeded())
	assert.Equal(t, "4900000123", out.MaterialDocument)

	assert.Equal(t, false, got["TESTRUN"])
	assert.Equal(t, "02", got["GOODSMVT_CODE"].(map[string]any)["GM_CODE"])
	header := got["GOODSMVT_HEADER"].(map[string]any)
	assert.Equal(t, "2024-03-01", header["PSTNG_DATE"])
	assert.Equal(t, "op1", header["PR_UNAME"])
	assert.Equal(t, "RFCUSER", got["ConnectionParams"].(map[string]any)["User"])

	item := got["GOODSMVT_ITEM"].([]any)[0].(map[string]any)
	assert.Equal(t, "000000000040001234", item["MATERIAL"])
	assert.Equal(t, "000001000234", item["ORDERID"])
	assert.Equal(t, 10.5, item["ENTRY_QNT"])
	assert.Equal(t, "KG", item["ENTRY_UOM"])
	assert.Equal(t, "KGM", item["ENTRY_UOM_ISO"])
	assert.Equal(t, "F", item["MVT_IND"])
	assert.NotContains(t, item, "MOVE_BATCH")
}

func TestCreateGoodsMovement_ErrorDeNegocio(t *testing.T) {
	for _, typ := range []string{"E", "I", "A"} {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"Return":[{"TYPE":"` + typ + `","MESSAGE":"Batch blocked"}]}`))
		})
		out, err := client.CreateGoodsMovement(context.Background(), posting(), time.Second)
		require.NoError(t, err, "un error de negocio no es error de transporte")
		assert.False(t, out.Succeeded())
		assert.Equal(t, typ, out.ErrorType)
		assert.Equal(t, "Batch blocked", out.ErrorMessage)
	}
}

func TestCreateGoodsMovement_SinDocumentoNiReturn(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	out, err := client.CreateGoodsMovement(context.Background(), posting(), time.Second)
	require.NoError(t, err)
	assert.False(t, out.Succeeded())
	assert.Empty(t, out.ErrorMessage)
}

func TestCreateGoodsMovement_MensajeDeTransportePorPrioridad(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"Message":"Logon failed","ModelState":{"x":["y"]}}`, "Logon failed"},
		{"modelstate", `{"ModelState":{"GOODSMVT_ITEM":["required"]}}`, `{"GOODSMVT_ITEM":["required"]}`},
		{"crudo", `upstream connect error`, "upstream connect error"},
		{"vacío", ``, "SAP middleware respondió HTTP 502 Bad Gateway"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := client.CreateGoodsMovement(context.Background(), posting(), time.Second)
			var te *sap.TransportError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, http.StatusBadGateway, te.StatusCode)
			assert.Equal(t, tc.want, te.Message)
		})
	}
}

func TestCreateGoodsMovement_Timeout(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	_, err := client.CreateGoodsMovement(context.Background(), posting(), 50*time.Millisecond)
	var te *sap.TransportError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, te.Message, "timeout")
}

func TestCloseDeliveryOrder(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/delivery-order/close", r.URL.Path)
		_, _ = w.Write([]byte(`{"Return":[{"TYPE":"S","MESSAGE":"Entrega 8000001 grabada"}]}`))
	})
	res, err := client.CloseDeliveryOrder(context.Background(), "8000001", time.Second)
	require.NoError(t, err)
	assert.True(t, res.Closed)
	assert.Equal(t, "Entrega 8000001 grabada", res.Message)
}

func TestOrderDetails_RellenaOrden(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "000001000234", body["ORDER_NUMBER"])
		_, _ = w.Write([]byte(`{"ORDER_HEADER":{"MATERIAL":"40001234"}}`))
	})
	raw, err := client.OrderDetails(context.Background(), "1000234", time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ORDER_HEADER":{"MATERIAL":"40001234"}}`, string(raw))
}
