package email

import (
	"context"
	"errors"
)

// Sender define la interfaz para envío de correos de recuperación de contraseña.
type Sender interface {
	SendTemporaryPassword(ctx context.Context, toEmail string, tempPassword string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendTemporaryPassword(_ context.Context, _ string, _ string) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
