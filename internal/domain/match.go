package domain

// Match es un combate del evento con sus participantes en el orden del roster.
type Match struct {
	Name         string
	Participants []Participant

	// Constraints se derivan una sola vez al cargar el evento: el roster es
	// estático durante la sesión, no se recalculan por edición.
	Constraints Constraints

	// Validation es el resultado de la última pasada de validación.
	Validation Validation
}

// Constraints son los límites derivados del roster de un combate.
type Constraints struct {
	ParticipantCount int // participantes reales (sin placeholders)
	MaxSelections    int // floor(ParticipantCount / 2)
}

// DeriveConstraints calcula los límites del combate a partir del roster.
func DeriveConstraints(m Match) Constraints {
	count := 0
	for _, p := range m.Participants {
		if !p.IsPlaceholder() {
			count++
		}
	}
	return Constraints{
		ParticipantCount: count,
		MaxSelections:    count / 2,
	}
}

// WagerTotal suma las apuestas de los participantes habilitados.
func (m Match) WagerTotal() float64 {
	var total float64
	for _, p := range m.Participants {
		if p.Enabled {
			total += p.Wager
		}
	}
	return total
}

// SelectionCount cuenta los participantes habilitados con apuesta puesta.
func (m Match) SelectionCount() int {
	count := 0
	for _, p := range m.Participants {
		if p.Enabled && p.Wager > 0 {
			count++
		}
	}
	return count
}
