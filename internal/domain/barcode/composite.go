package barcode

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sap-api/internal/domain"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
)

// Delimitadores del código compuesto de escaneo, de mayor a menor nivel:
//
//	PAL1#10;S1$S2*PAL2#5;S3
//	└ grupos (*) └ pallet/resto (#) └ cantidad/series (;) └ series ($)
const (
	GroupSep    = "*"
	PalletSep   = "#"
	QuantitySep = ";"
	SerialSep   = "$"
)

// ParseScan lee el código compuesto de escaneo. Cada grupo debe tener exactamente un
// pallet y una cantidad positiva; las series son opcionales.
func ParseScan(raw string) ([]entity.PalletScan, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, malformed("código vacío")
	}
	groups := strings.Split(raw, GroupSep)
	out := make([]entity.PalletScan, 0, len(groups))
	for i, g := range groups {
		scan, err := parseGroup(g)
		if err != nil {
			return nil, fmt.Errorf("grupo %d: %w", i+1, err)
		}
		out = append(out, scan)
	}
	return out, nil
}

func parseGroup(g string) (entity.PalletScan, error) {
	parts := strings.Split(g, PalletSep)
	if len(parts) != 2 {
		return entity.PalletScan{}, malformed(fmt.Sprintf("se esperaba PALLET%sRESTO en %q", PalletSep, g))
	}
	pallet := strings.TrimSpace(parts[0])
	if pallet == "" {
		return entity.PalletScan{}, malformed("pallet vacío")
	}
	rest := strings.Split(parts[1], QuantitySep)
	if len(rest) > 2 {
		return entity.PalletScan{}, malformed(fmt.Sprintf("demasiados %q en %q", QuantitySep, g))
	}
	qty, err := decimal.NewFromString(strings.TrimSpace(rest[0]))
	if err != nil || !qty.IsPositive() {
		return entity.PalletScan{}, malformed(fmt.Sprintf("cantidad inválida %q", rest[0]))
	}
	scan := entity.PalletScan{PalletBarcode: pallet, Quantity: qty}
	if len(rest) == 2 && rest[1] != "" {
		for _, s := range strings.Split(rest[1], SerialSep) {
			if strings.TrimSpace(s) == "" {
				return entity.PalletScan{}, malformed("serie vacía")
			}
			scan.Serials = append(scan.Serials, strings.TrimSpace(s))
		}
	}
	return scan, nil
}

// FormatScan es la inversa de ParseScan.
func FormatScan(scans []entity.PalletScan) string {
	groups := make([]string, len(scans))
	for i, s := range scans {
		g := s.PalletBarcode + PalletSep + s.Quantity.String()
		if len(s.Serials) > 0 {
			g += QuantitySep + strings.Join(s.Serials, SerialSep)
		}
		groups[i] = g
	}
	return strings.Join(groups, GroupSep)
}

// ParseLabel lee la etiqueta de pallet "ORDEN|MATERIAL|LOTE|PALLET" (también con ';').
// No rellena ceros: eso lo decide quien arma la posición SAP.
func ParseLabel(raw string) (entity.PalletLabel, error) {
	raw = strings.TrimSpace(raw)
	sep := "|"
	if !strings.Contains(raw, sep) {
		sep = ";"
	}
	fields := strings.Split(raw, sep)
	if len(fields) != 4 {
		return entity.PalletLabel{}, malformed(fmt.Sprintf("la etiqueta debe tener 4 campos, tiene %d", len(fields)))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	label := entity.PalletLabel{
		OrderID:      fields[0],
		Material:     fields[1],
		Batch:        fields[2],
		PalletNumber: fields[3],
	}
	if label.OrderID == "" || label.Material == "" || label.PalletNumber == "" {
		return entity.PalletLabel{}, malformed("orden, material y pallet son obligatorios")
	}
	return label, nil
}

// FormatLabel es la inversa de ParseLabel (siempre con '|').
func FormatLabel(l entity.PalletLabel) string {
	return strings.Join([]string{l.OrderID, l.Material, l.Batch, l.PalletNumber}, "|")
}

func malformed(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedBarcode, msg)
}
