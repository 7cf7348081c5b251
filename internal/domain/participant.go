package domain

import (
	"regexp"
	"strings"
)

// unknownWrestler es el nombre que se muestra cuando el roster no trae uno.
const unknownWrestler = "Unknown Wrestler"

// imgMarkup detecta imágenes embebidas en el nombre (iconos de cinturón, etc.).
var imgMarkup = regexp.MustCompile(`(?i)<img[^>]*>`)

// placeholderNames son los nombres que marcan un hueco sin luchador real.
// No cuentan para los límites de selección del combate.
var placeholderNames = map[string]struct{}{
	"":                 {},
	"tbd":              {},
	"unknown wrestler": {},
}

// Participant es un luchador dentro de un combate, con su apuesta actual.
type Participant struct {
	Name     string // nombre ya limpio (sin markup, sin espacios sobrantes)
	Odds     Odds
	Champion bool // campeón vigente del título en juego

	Wager    float64 // apuesta actual en puntos, siempre ≥ 0
	RawInput string  // último texto crudo introducido; la puerta de envío lo revalida
	Enabled  bool    // false con cuota TBD o tras el envío de la hoja
	Active   bool    // Wager > 0, mantenido por cada recomputación
}

// CleanName elimina el markup de imágenes embebido y los espacios sobrantes.
func CleanName(raw string) string {
	return strings.TrimSpace(imgMarkup.ReplaceAllString(raw, ""))
}

// IsPlaceholder devuelve true si el participante es un hueco sin luchador real.
func (p Participant) IsPlaceholder() bool {
	_, ok := placeholderNames[strings.ToLower(strings.TrimSpace(p.Name))]
	return ok
}

// DisplayName devuelve el nombre para mostrar, con fallback si está vacío.
func (p Participant) DisplayName() string {
	name := CleanName(p.Name)
	if name == "" {
		return unknownWrestler
	}
	return name
}

// Profit devuelve la ganancia proyectada de la apuesta actual.
func (p Participant) Profit() float64 {
	return Profit(p.Wager, p.Odds)
}
