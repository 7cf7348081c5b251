package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alejandrodnm/matbook/internal/domain"
)

// JSONWriter implementa ports.Exporter escribiendo el envío como documento
// JSON auto-contenido: el único artefacto de intercambio de la sesión.
type JSONWriter struct {
	dir string
}

// NewJSONWriter crea el exportador apuntando al directorio de salida.
func NewJSONWriter(dir string) *JSONWriter {
	return &JSONWriter{dir: dir}
}

// Export escribe el documento y devuelve la ruta creada. El nombre lleva el
// evento y el timestamp del envío para que dos exports no se pisen.
func (w *JSONWriter) Export(_ context.Context, sub domain.Submission) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("export.Export: create dir %q: %w", w.dir, err)
	}

	name := fmt.Sprintf("%s_picks_%s.json",
		sanitize(sub.EventID), sub.SubmittedAt.Format("20060102_150405"))
	path := filepath.Join(w.dir, name)

	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export.Export: marshal submission %s: %w", sub.ID, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export.Export: write %q: %w", path, err)
	}
	return path, nil
}

// sanitize deja el id apto para nombre de archivo.
func sanitize(id string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, strings.TrimSpace(id))
	if cleaned == "" {
		return "event"
	}
	return strings.ToLower(cleaned)
}
