package storedproc

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Valores del campo Status que devuelven los procedimientos.
const (
	StatusOK       = "T"
	StatusRejected = "F"
)

// Row primera fila devuelta por un procedimiento. Las columnas se buscan sin
// distinguir mayúsculas: los procedimientos no son consistentes con el casing.
type Row map[string]any

func (r Row) lookup(col string) (any, bool) {
	if v, ok := r[col]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, col) {
			return v, true
		}
	}
	return nil, false
}

// String valor de la columna como texto ("" si no existe o es NULL).
func (r Row) String(col string) string {
	v, ok := r.lookup(col)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case []byte:
		return strings.TrimSpace(string(s))
	case time.Time:
		return s.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

// Decimal valor de la columna como decimal (cero si no existe o no es numérico).
func (r Row) Decimal(col string) decimal.Decimal {
	v, ok := r.lookup(col)
	if !ok || v == nil {
		return decimal.Zero
	}
	d, err := toDecimal(v)
	if err != nil {
		if f, isFloat := v.(float32); isFloat {
			return decimal.NewFromFloat32(f)
		}
		if i, isInt := v.(int32); isInt {
			return decimal.NewFromInt32(i)
		}
		return decimal.Zero
	}
	return d
}

// Int valor de la columna como entero.
func (r Row) Int(col string) int64 {
	return r.Decimal(col).IntPart()
}

// Status devuelve "T" o "F". Una fila sin Status se considera aprobada.
func (r Row) Status() string {
	s := strings.ToUpper(r.String("Status"))
	if s == "" {
		return StatusOK
	}
	return s
}

// Message texto para el operario.
func (r Row) Message() string { return r.String("Message") }

// Rejected indica rechazo de negocio (Status = 'F').
func (r Row) Rejected() bool { return r.Status() == StatusRejected }
