package storedproc_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sap-api/internal/domain"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

var testProc = storedproc.Procedure{
	Name: "sp_test",
	Params: []storedproc.Param{
		storedproc.NVarChar("code", 5),
		storedproc.Decimal("qty", 6, 2),
		storedproc.Int("id"),
		storedproc.DateTime("at"),
		storedproc.Float("ratio"),
	},
}

func TestBind_OrdenYConversiones(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	args, err := testProc.Bind(storedproc.Args{
		"qty":   "12.345",
		"code":  "AB",
		"id":    "42",
		"at":    at,
		"ratio": 0.5,
	})
	require.NoError(t, err)
	require.Len(t, args, 5)
	assert.Equal(t, "AB", args[0])
	assert.True(t, decimal.RequireFromString("12.35").Equal(args[1].(decimal.Decimal)))
	assert.Equal(t, int64(42), args[2])
	assert.Equal(t, at, args[3])
	assert.Equal(t, 0.5, args[4])
}

func TestBind_AusenteEsNull(t *testing.T) {
	args, err := testProc.Bind(storedproc.Args{"code": "A"})
	require.NoError(t, err)
	assert.Nil(t, args[1])
	assert.Nil(t, args[2])
}

func TestBind_Errores(t *testing.T) {
	cases := []storedproc.Args{
		{"code": "DEMASIADO-LARGO"},
		{"qty": decimal.NewFromInt(123456)},
		{"id": 1.5},
		{"at": "2024-01-01"},
		{"ratio": "x"},
		{"desconocido": 1},
	}
	for _, c := range cases {
		_, err := testProc.Bind(c)
		assert.ErrorIs(t, err, domain.ErrInvalidProcedureArg, "%v", c)
	}
}

func TestCatalogo_ErrorLogAceptaPosicionCompleta(t *testing.T) {
	_, err := storedproc.SAPErrorLogInsert.Bind(storedproc.Args{
		"pallet_barcode": "PAL001",
		"order_no":       "000001000234",
		"material":       "000000000040001234",
		"quantity":       decimal.NewFromInt(10),
		"error_message":  "Batch blocked",
		"gm_code":        "04",
		"created_by":     "op1",
	})
	assert.NoError(t, err)
}

func TestRow_AccesoSinMayusculas(t *testing.T) {
	row := storedproc.Row{"STATUS": "f", "message": " Ubicación llena ", "Qty": decimal.NewFromInt(7), "n": int32(3)}
	assert.True(t, row.Rejected())
	assert.Equal(t, "Ubicación llena", row.Message())
	assert.Equal(t, "7", row.Decimal("qty").String())
	assert.Equal(t, int64(3), row.Int("N"))
	assert.Equal(t, "", row.String("no_existe"))
}

func TestRow_SinStatusSeAprueba(t *testing.T) {
	assert.False(t, storedproc.Row{}.Rejected())
}
