package ports

import (
	"context"

	"github.com/alejandrodnm/matbook/internal/domain"
)

// Presenter muestra la hoja de apuestas al usuario. El core solo le pasa
// datos planos: flags de validez y actividad, nunca estilos.
type Presenter interface {
	// ShowSheet imprime la hoja completa: combates, apuestas, violaciones
	// y los totales del bankroll.
	ShowSheet(ctx context.Context, event domain.Event, matches []domain.Match, totals domain.Totals) error

	// ShowReceipt imprime el resguardo del envío ya bloqueado.
	ShowReceipt(ctx context.Context, sub domain.Submission) error
}
