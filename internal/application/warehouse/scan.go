package warehouse

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/dto"
	"github.com/jhoicas/wms-sap-api/internal/domain/barcode"
	"github.com/jhoicas/wms-sap-api/internal/domain/storedproc"
)

// ScanUseCase normalización de códigos para los clientes de escáner.
type ScanUseCase struct {
	log zerolog.Logger
}

// NewScanUseCase construye el caso de uso.
func NewScanUseCase(log zerolog.Logger) *ScanUseCase {
	return &ScanUseCase{log: log}
}

// Normalize decodifica el código y, si es compuesto o etiqueta, lo desarma.
// Un código mal formado responde Status 'F', nunca error.
func (uc *ScanUseCase) Normalize(req dto.NormalizeScanRequest) *dto.NormalizeScanResponse {
	dec := barcode.Decode(req.Barcode)
	out := &dto.NormalizeScanResponse{Status: storedproc.StatusOK, Value: dec.Value, Decoded: dec.Decoded}
	if dec.Err != nil {
		out.DecodeError = dec.Err.Error()
	}

	switch {
	case strings.Contains(dec.Value, barcode.PalletSep):
		scans, err := barcode.ParseScan(dec.Value)
		if err != nil {
			out.Status, out.Message = storedproc.StatusRejected, err.Error()
			return out
		}
		for _, s := range scans {
			out.Pallets = append(out.Pallets, dto.PalletScanDTO{
				PalletBarcode: s.PalletBarcode,
				Quantity:      s.Quantity,
				Serials:       s.Serials,
			})
		}
	case strings.ContainsAny(dec.Value, "|;"):
		label, err := barcode.ParseLabel(dec.Value)
		if err != nil {
			out.Status, out.Message = storedproc.StatusRejected, err.Error()
			return out
		}
		out.Label = &dto.PalletLabelDTO{
			OrderID:      barcode.PadOrder(label.OrderID),
			Material:     barcode.PadMaterial(label.Material),
			MaterialText: barcode.TrimLeadingZeros(label.Material),
			Batch:        label.Batch,
			PalletNumber: label.PalletNumber,
		}
	}
	return out
}
