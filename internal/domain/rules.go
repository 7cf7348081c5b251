package domain

import "fmt"

// Limits son las constantes de la sesión: bankroll total, apuesta mínima por
// luchador y tope de puntos por combate. Se fijan al crear la sesión.
type Limits struct {
	Bankroll    float64
	MinWager    float64
	MaxPerMatch float64
}

// DefaultLimits devuelve las reglas estándar del juego.
func DefaultLimits() Limits {
	return Limits{
		Bankroll:    100,
		MinWager:    5,
		MaxPerMatch: 25,
	}
}

// Validation es el resultado de validar un combate.
type Validation struct {
	Valid    bool
	Messages []string
}

// ValidateMatch evalúa las tres reglas del combate de forma independiente y
// concatena los mensajes: una misma fila puede acumular varias violaciones.
// Los participantes deshabilitados (cuota TBD o post-envío) quedan fuera de
// todas las comprobaciones — solo se valida el estado editable.
func ValidateMatch(m Match, limits Limits) Validation {
	var msgs []string

	for _, p := range m.Participants {
		if p.Enabled && p.Wager > 0 && p.Wager < limits.MinWager {
			msgs = append(msgs, fmt.Sprintf(
				"%s: minimum bet is %.0f points", p.DisplayName(), limits.MinWager))
		}
	}

	if total := m.WagerTotal(); total > limits.MaxPerMatch {
		msgs = append(msgs, fmt.Sprintf(
			"match total %.1f exceeds the %.0f point cap", total, limits.MaxPerMatch))
	}

	if picked := m.SelectionCount(); picked > m.Constraints.MaxSelections {
		msgs = append(msgs, fmt.Sprintf(
			"%d selections exceed the allowed %d (match has %d wrestlers)",
			picked, m.Constraints.MaxSelections, m.Constraints.ParticipantCount))
	}

	return Validation{Valid: len(msgs) == 0, Messages: msgs}
}

// AllValid devuelve true si todos los combates pasaron su última validación.
func AllValid(matches []Match) bool {
	for _, m := range matches {
		if !m.Validation.Valid {
			return false
		}
	}
	return true
}
