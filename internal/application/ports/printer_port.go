package ports

import "context"

// LabelPrinter impresora de etiquetas. host es "ip" o "ip:puerto"; template es el
// nombre del archivo .prn y values los tokens a sustituir.
type LabelPrinter interface {
	Print(ctx context.Context, host, template string, values map[string]string) error
}
