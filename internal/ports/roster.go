package ports

import (
	"context"

	"github.com/alejandrodnm/matbook/internal/domain"
)

// RosterSource carga el roster del evento desde la fuente configurada.
type RosterSource interface {
	// ListEventIDs devuelve los ids de evento disponibles, en orden de
	// primera aparición.
	ListEventIDs(ctx context.Context) ([]string, error)

	// LoadEvent devuelve los metadatos del evento y sus combates en orden.
	// El id se compara de forma case-insensitive.
	LoadEvent(ctx context.Context, eventID string) (domain.Event, []domain.Match, error)
}
