package ports

import (
	"context"

	"github.com/alejandrodnm/matbook/internal/domain"
)

// Storage archiva la hoja enviada. Una sesión produce como máximo un envío.
type Storage interface {
	// SaveSubmission persiste el registro inmutable del envío con sus picks.
	SaveSubmission(ctx context.Context, sub domain.Submission) error

	// LatestSubmission devuelve el último envío archivado para un evento,
	// o nil si no hay ninguno.
	LatestSubmission(ctx context.Context, eventID string) (*domain.Submission, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
