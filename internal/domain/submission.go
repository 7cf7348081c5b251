package domain

import (
	"math"
	"time"
)

// Pick es una apuesta no nula lista para exportar.
type Pick struct {
	Match    string  `json:"match"`
	Wrestler string  `json:"wrestler"`
	Odds     string  `json:"odds"`  // tal y como se muestra: "+150", "-200", "TBD"
	Wager    float64 `json:"wager"` // redondeada a un decimal
}

// CollectPicks recorre los combates en su orden y extrae una Pick por cada
// participante con apuesta puesta. El orden es estable: combate, luego
// participante dentro del combate. No filtra por validez — la legalidad la
// impone la puerta de envío, no el colector.
func CollectPicks(matches []Match) []Pick {
	var picks []Pick
	for _, m := range matches {
		for _, p := range m.Participants {
			if p.Wager <= 0 {
				continue
			}
			picks = append(picks, Pick{
				Match:    m.Name,
				Wrestler: p.DisplayName(),
				Odds:     p.Odds.String(),
				Wager:    RoundWager(p.Wager),
			})
		}
	}
	return picks
}

// RoundWager redondea a un decimal con half-up en las décimas (2.25 → 2.3).
func RoundWager(w float64) float64 {
	return math.Floor(w*10+0.5) / 10
}

// Submission es el registro inmutable de la hoja enviada. Se crea como máximo
// una vez por sesión; después de crearlo no hay más ediciones ni envíos.
type Submission struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	EventName   string    `json:"event_name"`
	Player      string    `json:"player"`
	SubmittedAt time.Time `json:"submitted_at"`
	Bankroll    float64   `json:"bankroll"`
	Picks       []Pick    `json:"picks"`
	Totals      Totals    `json:"totals"`
}
