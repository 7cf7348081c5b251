package domain

// Totals es el snapshot derivado de una recomputación completa del bankroll.
// Inmutable: cada edición produce un snapshot nuevo.
type Totals struct {
	TotalWagered float64 `json:"total_wagered"`
	TotalProfit  float64 `json:"total_profit"`
	TotalReturn  float64 `json:"total_return"` // wagered + profit

	// Remaining está clampeado a cero: es el valor para mostrar. OverLimit usa
	// la comparación cruda wagered > bankroll. Son representaciones distintas a
	// propósito: unificarlas cambiaría la condición de frontera del overrun.
	Remaining float64 `json:"remaining"`
	OverLimit bool    `json:"over_limit"`

	MatchesNotWagered int `json:"matches_not_wagered"`
}

// Aggregate recalcula los totales del bankroll desde cero a partir de las
// apuestas actuales. Siempre recomputación completa, nada incremental: así no
// hay drift posible tras ediciones arbitrarias (incluido un reset programático
// que toque varias filas en una sola operación).
func Aggregate(matches []Match, limits Limits) Totals {
	var t Totals

	for _, m := range matches {
		var matchWagered float64
		for _, p := range m.Participants {
			matchWagered += p.Wager
			t.TotalProfit += p.Profit()
		}
		t.TotalWagered += matchWagered
		if matchWagered == 0 {
			t.MatchesNotWagered++
		}
	}

	t.TotalReturn = t.TotalWagered + t.TotalProfit
	t.OverLimit = t.TotalWagered > limits.Bankroll

	t.Remaining = limits.Bankroll - t.TotalWagered
	if t.Remaining < 0 {
		t.Remaining = 0
	}

	return t
}

// AverageRemainingPerOpenMatch reparte los puntos restantes entre los combates
// que aún no tienen apuesta. ok=false cuando todos los combates tienen apuesta.
func (t Totals) AverageRemainingPerOpenMatch() (float64, bool) {
	if t.MatchesNotWagered == 0 {
		return 0, false
	}
	return t.Remaining / float64(t.MatchesNotWagered), true
}
