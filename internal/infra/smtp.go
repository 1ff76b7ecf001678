package infra

import (
	"fmt"
	"net/smtp"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending order notifications.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// NotificarEstadoPedido emails the customer when an order changes state.
func (m *Mailer) NotificarEstadoPedido(correo, pedidoID, estado, motivo string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{correo}
	e.Subject = fmt.Sprintf("Pedido %s: %s", pedidoID, estado)

	cuerpo := fmt.Sprintf(
		"Hola,\n\nSu pedido %s cambió al estado: %s.\n",
		pedidoID, estado,
	)
	if motivo != "" {
		cuerpo += fmt.Sprintf("\nMotivo: %s\n", motivo)
	}
	cuerpo += "\nGracias por su compra.\nInversiones Ledezma"
	e.Text = []byte(cuerpo)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
