package domain

import (
	"math"
	"strconv"
	"strings"
)

// Odds es una cuota americana firmada. Known=false significa que la cuota
// no está definida todavía (TBD) o que el texto no se pudo parsear — estado
// normal para participantes sin confirmar, nunca un error.
type Odds struct {
	Value int
	Known bool
}

// KnownOdds construye una cuota definida.
func KnownOdds(v int) Odds {
	return Odds{Value: v, Known: true}
}

// ParseAmericanOdds convierte texto como "150", "+150" o "-200" a Odds.
// Texto vacío o no numérico devuelve una cuota desconocida.
func ParseAmericanOdds(text string) Odds {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return Odds{}
	}
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return Odds{}
	}
	return Odds{Value: v, Known: true}
}

// String devuelve la cuota tal y como se muestra al usuario:
// positivas con signo "+" (150 → "+150"), desconocidas como "TBD".
func (o Odds) String() string {
	if !o.Known {
		return "TBD"
	}
	if o.Value > 0 {
		return "+" + strconv.Itoa(o.Value)
	}
	return strconv.Itoa(o.Value)
}

// Profit calcula la ganancia proyectada de una apuesta según la convención
// de cuotas americanas:
//   - cuota ≥ 0 (underdog/even): profit = wager × (cuota / 100)
//   - cuota < 0 (favorito):      profit = wager × (100 / |cuota|)
//
// Devuelve 0 si la apuesta no es finita o es ≤ 0, o si la cuota es
// desconocida. Función pura, sin efectos.
func Profit(wager float64, odds Odds) float64 {
	if math.IsNaN(wager) || math.IsInf(wager, 0) || wager <= 0 || !odds.Known {
		return 0
	}
	if odds.Value >= 0 {
		return wager * float64(odds.Value) / 100
	}
	return wager * 100 / math.Abs(float64(odds.Value))
}
