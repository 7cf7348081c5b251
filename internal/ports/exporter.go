package ports

import (
	"context"

	"github.com/alejandrodnm/matbook/internal/domain"
)

// Exporter emite el envío como documento estructurado auto-contenido y
// re-parseable. Es el único artefacto de intercambio de la sesión.
type Exporter interface {
	// Export escribe el documento y devuelve la ruta creada.
	Export(ctx context.Context, sub domain.Submission) (string, error)
}
