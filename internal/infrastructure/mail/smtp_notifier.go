// Package mail envía las notificaciones de la bodega por SMTP.
package mail

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/wms-sap-api/internal/application/ports"
	"github.com/jhoicas/wms-sap-api/internal/domain/entity"
	"github.com/jhoicas/wms-sap-api/pkg/config"
)

var _ ports.ScrapNotifier = (*SMTPNotifier)(nil)

// Sender abstrae el envío para poder probar sin servidor SMTP.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier notificaciones por correo. No es transaccional con la base: quien lo
// llama decide qué hacer con el error (la bodega solo lo registra).
type SMTPNotifier struct {
	sender    Sender
	from      string
	approvers []string
	log       zerolog.Logger
}

// NewSMTPNotifier construye el notificador con un gomail.Dialer.
func NewSMTPNotifier(cfg config.SMTPConfig, log zerolog.Logger) *SMTPNotifier {
	return NewNotifierWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg.From, cfg.ScrapApprovers, log)
}

// NewNotifierWithSender permite inyectar el Sender.
func NewNotifierWithSender(sender Sender, from string, approvers []string, log zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{sender: sender, from: from, approvers: approvers, log: log}
}

// NotifyScrapRequest avisa a los aprobadores que hay una solicitud de desecho pendiente.
func (n *SMTPNotifier) NotifyScrapRequest(ctx context.Context, req entity.ScrapRequest) error {
	if len(n.approvers) == 0 {
		return fmt.Errorf("no hay aprobadores configurados")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage(gomail.SetEncoding(gomail.Unencoded))
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.approvers...)
	m.SetHeader("Subject", fmt.Sprintf("Solicitud de desecho #%d pendiente de aprobación", req.RequestID))
	m.SetBody("text/html", scrapBody(req))

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo de desecho #%d: %w", req.RequestID, err)
	}
	n.log.Info().Int64("request_id", req.RequestID).Strs("to", n.approvers).Msg("correo de desecho enviado")
	return nil
}

func scrapBody(req entity.ScrapRequest) string {
	var b strings.Builder
	b.WriteString("<p>Se registró una solicitud de desecho:</p><table>")
	row := func(k, v string) {
		fmt.Fprintf(&b, "<tr><td><b>%s</b></td><td>%s</td></tr>", k, html.EscapeString(v))
	}
	row("Solicitud", fmt.Sprint(req.RequestID))
	row("Pallet", req.PalletBarcode)
	row("Material", req.Material)
	row("Lote", req.Batch)
	row("Cantidad", strings.TrimSpace(req.Quantity.String()+" "+req.Unit))
	row("Motivo", req.Reason)
	row("Solicitado por", req.RequestedBy)
	b.WriteString("</table>")
	return b.String()
}
