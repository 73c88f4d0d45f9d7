package notificacao

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

var ErrSMTPNaoConfigurado = errors.New("smtp não configurado")

type Remetente interface {
	EnviarSenhaTemporaria(ctx context.Context, para, nome, senha string) error
}

type Mailer struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NovoMailer(host string, port int, user, password string) *Mailer {
	return &Mailer{Host: host, Port: port, User: user, Password: password, From: user}
}

func (m *Mailer) EnviarSenhaTemporaria(_ context.Context, para, nome, senha string) error {
	if m == nil || m.Host == "" {
		return ErrSMTPNaoConfigurado
	}
	e := email.NewEmail()
	e.From = m.From
	e.To = []string{para}
	e.Subject = "Gestão de Combustível - senha temporária"
	e.Text = []byte(fmt.Sprintf(
		"Olá, %s.\n\nSua senha temporária é: %s\n\nAcesse o sistema e altere a senha no primeiro login.\n",
		nome, senha,
	))

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Password, m.Host)
	}
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("enviar e-mail para %s: %w", para, err)
	}
	return nil
}
