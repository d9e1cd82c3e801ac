// Package storedproc describe los procedimientos almacenados que la API invoca:
// nombre, parámetros tipados y la forma de leer su primera fila de resultado.
package storedproc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sap-api/internal/domain"
)

// Kind tipo SQL de un parámetro.
type Kind int

const (
	KindNVarChar Kind = iota
	KindDecimal
	KindInt
	KindDateTime
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindNVarChar:
		return "NVarChar"
	case KindDecimal:
		return "Decimal"
	case KindInt:
		return "Int"
	case KindDateTime:
		return "DateTime"
	case KindFloat:
		return "Float"
	}
	return "Unknown"
}

// Param definición de un parámetro: tipo SQL y, según el tipo, longitud o precisión/escala.
type Param struct {
	Name      string
	Kind      Kind
	Length    int // NVarChar
	Precision int // Decimal
	Scale     int // Decimal
}

func NVarChar(name string, length int) Param {
	return Param{Name: name, Kind: KindNVarChar, Length: length}
}

func Decimal(name string, precision, scale int) Param {
	return Param{Name: name, Kind: KindDecimal, Precision: precision, Scale: scale}
}

func Int(name string) Param      { return Param{Name: name, Kind: KindInt} }
func DateTime(name string) Param { return Param{Name: name, Kind: KindDateTime} }
func Float(name string) Param    { return Param{Name: name, Kind: KindFloat} }

// Procedure esquema de un procedimiento almacenado.
type Procedure struct {
	Name   string
	Params []Param
}

// Args valores por nombre de parámetro.
type Args map[string]any

// Bind valida los argumentos contra el esquema y los devuelve en el orden declarado,
// ya convertidos al tipo Go que espera el driver. Un argumento ausente se envía como NULL.
func (p Procedure) Bind(args Args) ([]any, error) {
	known := make(map[string]struct{}, len(p.Params))
	out := make([]any, len(p.Params))
	for i, prm := range p.Params {
		known[prm.Name] = struct{}{}
		v, ok := args[prm.Name]
		if !ok || v == nil {
			out[i] = nil
			continue
		}
		bound, err := prm.bind(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", domain.ErrInvalidProcedureArg, p.Name, prm.Name, err)
		}
		out[i] = bound
	}
	for name := range args {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%w: %s no declara %q", domain.ErrInvalidProcedureArg, p.Name, name)
		}
	}
	return out, nil
}

func (prm Param) bind(v any) (any, error) {
	switch prm.Kind {
	case KindNVarChar:
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		if prm.Length > 0 && utf8.RuneCountInString(s) > prm.Length {
			return nil, fmt.Errorf("longitud %d excede NVarChar(%d)", utf8.RuneCountInString(s), prm.Length)
		}
		return s, nil
	case KindDecimal:
		d, err := toDecimal(v)
		if err != nil {
			return nil, err
		}
		if prm.Precision > 0 && !fitsPrecision(d, prm.Precision, prm.Scale) {
			return nil, fmt.Errorf("%s no cabe en Decimal(%d,%d)", d.String(), prm.Precision, prm.Scale)
		}
		return d.Round(int32(prm.Scale)), nil
	case KindInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case string:
			i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("entero inválido %q", n)
			}
			return i, nil
		}
		return nil, fmt.Errorf("se esperaba entero, llegó %T", v)
	case KindDateTime:
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("se esperaba fecha, llegó %T", v)
		}
		return t, nil
	case KindFloat:
		switch f := v.(type) {
		case float64:
			return f, nil
		case float32:
			return float64(f), nil
		case int:
			return float64(f), nil
		case decimal.Decimal:
			return f.InexactFloat64(), nil
		}
		return nil, fmt.Errorf("se esperaba número, llegó %T", v)
	}
	return nil, fmt.Errorf("tipo %s no soportado", prm.Kind)
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch d := v.(type) {
	case decimal.Decimal:
		return d, nil
	case int:
		return decimal.NewFromInt(int64(d)), nil
	case int64:
		return decimal.NewFromInt(d), nil
	case float64:
		return decimal.NewFromFloat(d), nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(d))
	}
	return decimal.Zero, fmt.Errorf("se esperaba decimal, llegó %T", v)
}

// fitsPrecision verifica que la parte entera quepa en precision-scale dígitos.
func fitsPrecision(d decimal.Decimal, precision, scale int) bool {
	intDigits := len(d.Abs().Truncate(0).String())
	if d.Abs().LessThan(decimal.NewFromInt(1)) {
		intDigits = 0
	}
	return intDigits <= precision-scale
}
