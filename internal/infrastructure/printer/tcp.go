package printer

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-sap-api/internal/application/ports"
	"github.com/jhoicas/wms-sap-api/pkg/config"
)

var _ ports.LabelPrinter = (*Printer)(nil)

// Printer envía etiquetas: un socket por trabajo, sin reutilización ni acuse más allá del TCP.
type Printer struct {
	templates    *Templates
	port         int
	dialTimeout  time.Duration
	writeTimeout time.Duration
	log          zerolog.Logger
}

// New construye la impresora a partir de la configuración.
func New(cfg config.PrinterConfig, log zerolog.Logger) *Printer {
	p := &Printer{
		templates:    NewTemplates(cfg.TemplateDir),
		port:         cfg.Port,
		dialTimeout:  cfg.DialTimeout,
		writeTimeout: cfg.WriteTimeout,
		log:          log,
	}
	if p.port == 0 {
		p.port = 9100
	}
	if p.dialTimeout <= 0 {
		p.dialTimeout = 3 * time.Second
	}
	if p.writeTimeout <= 0 {
		p.writeTimeout = 5 * time.Second
	}
	return p
}

// Print renderiza la plantilla con values y la envía a host (ip o ip:puerto).
func (p *Printer) Print(ctx context.Context, host, template string, values map[string]string) error {
	tpl, err := p.templates.Get(template)
	if err != nil {
		return err
	}
	payload, err := Render(tpl, values)
	if err != nil {
		return err
	}
	return p.Send(ctx, host, payload)
}

// Send escribe payload en la impresora. La conexión se cierra siempre: éxito, error o timeout.
func (p *Printer) Send(ctx context.Context, host string, payload []byte) error {
	addr := host
	if _, _, err := net.SplitHostPort(host); err != nil {
		addr = net.JoinHostPort(host, strconv.Itoa(p.port))
	}

	dialer := net.Dialer{Timeout: p.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("conectar impresora %s: %w", addr, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(p.writeTimeout)); err != nil {
		return fmt.Errorf("impresora %s: %w", addr, err)
	}
	n, err := conn.Write(payload)
	if err != nil {
		return fmt.Errorf("escribir en impresora %s: %w", addr, err)
	}
	p.log.Debug().Str("printer", addr).Int("bytes", n).Msg("etiqueta enviada")
	return nil
}
