package service

import (
	"context"
	"errors"

	"mireparto/internal/realtime"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrNoEncontrado is returned when the requested document does not exist.
var ErrNoEncontrado = errors.New("no encontrado")

// ValidacionError carries a message meant for the operator.
type ValidacionError struct {
	Mensaje string
}

func (e *ValidacionError) Error() string { return e.Mensaje }

func invalido(msg string) error { return &ValidacionError{Mensaje: msg} }

// noEncontrado maps gorm's not-found error onto ErrNoEncontrado.
func noEncontrado(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoEncontrado
	}
	return err
}

// publicar announces a change. The write already happened, so a failure is
// only logged.
func publicar(ctx context.Context, n realtime.Notifier, coleccion string) {
	if n == nil {
		return
	}
	if err := n.Publish(ctx, coleccion); err != nil {
		log.Warn().Err(err).Str("coleccion", coleccion).Msg("realtime: publish failed")
	}
}
