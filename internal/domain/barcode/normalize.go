// Package barcode normaliza los identificadores que llegan desde los escáneres:
// decodificación base64, relleno de ceros y lectura de códigos compuestos.
package barcode

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaterialLength = 18
	OrderLength    = 12
)

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)

// DecodeResult resultado del intento de decodificación. Un fallo no es fatal:
// Value conserva el valor original y Err explica por qué no se decodificó.
type DecodeResult struct {
	Value   string
	Decoded bool
	Err     error
}

// Decode decodifica el código si parece base64. Los lectores de algunas terminales
// envían el contenido codificado; los demás llegan en claro y pasan sin cambios.
// Un resultado que no es texto imprimible se trata como fallo de decodificación.
func Decode(raw string) DecodeResult {
	value := strings.TrimSpace(raw)
	if value == "" || !base64Pattern.MatchString(value) {
		return DecodeResult{Value: value}
	}
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return DecodeResult{Value: value, Err: fmt.Errorf("base64: %w", err)}
	}
	decoded := string(b)
	if !isPrintable(decoded) {
		return DecodeResult{Value: value, Err: fmt.Errorf("base64: el contenido decodificado no es texto")}
	}
	return DecodeResult{Value: strings.TrimSpace(decoded), Decoded: true}
}

func isPrintable(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// PadLeft rellena con '0' a la izquierda hasta n caracteres. Nunca trunca.
func PadLeft(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}

// PadMaterial código de material SAP (18 caracteres).
func PadMaterial(material string) string { return PadLeft(material, MaterialLength) }

// PadOrder número de orden SAP (12 caracteres).
func PadOrder(order string) string { return PadLeft(order, OrderLength) }

// TrimLeadingZeros quita los ceros de relleno para mostrar. "0000" queda "0".
func TrimLeadingZeros(s string) string {
	s = strings.TrimSpace(s)
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" && s != "" {
		return "0"
	}
	return trimmed
}

var unitISO = map[string]string{
	"EA":  "EA",
	"KG":  "KGM",
	"ST":  "PCE",
	"PC":  "PCE",
	"L":   "LTR",
	"M":   "MTR",
	"CAR": "CT",
	"BOX": "BX",
}

// NormalizeUnit unidad de medida en mayúsculas; vacía significa "EA".
func NormalizeUnit(unit string) string {
	u := strings.ToUpper(strings.TrimSpace(unit))
	if u == "" {
		return "EA"
	}
	return u
}

// UnitISO código ISO de la unidad para ENTRY_UOM_ISO. Si no hay equivalencia conocida
// se envía la misma unidad.
func UnitISO(unit string) string {
	u := NormalizeUnit(unit)
	if iso, ok := unitISO[u]; ok {
		return iso
	}
	return u
}
