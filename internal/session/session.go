package session

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/matbook/internal/domain"
)

// State es el estado de la puerta de envío.
type State int

const (
	// StateEditable permite editar apuestas y nombre de jugador.
	StateEditable State = iota
	// StateSubmitted es terminal: no existe transición inversa.
	StateSubmitted
)

// Errores de la puerta de envío. Son recuperables: el usuario corrige y
// reintenta, salvo ErrAlreadySubmitted que es definitivo para la sesión.
var (
	ErrAlreadySubmitted = errors.New("session: sheet already submitted")
	ErrInvalidMatches   = errors.New("session: fix the highlighted matches before submitting")
	ErrNoPlayer         = errors.New("session: player name is required")
	ErrOverBankroll     = errors.New("session: total wagered exceeds the bankroll")
	ErrBadWagerInput    = errors.New("session: a wager input is not a valid number")
)

// Session es el contexto de una sesión de juego: el evento cargado, los
// combates con sus apuestas, las constantes del bankroll y la puerta de envío.
// Un solo escritor (cada edición recomputa de forma síncrona) y una sola
// transición Editable → Submitted por sesión.
type Session struct {
	event   domain.Event
	matches []domain.Match
	limits  domain.Limits

	player     string
	state      State
	totals     domain.Totals
	hasTotals  bool
	submission *domain.Submission
}

// New crea la sesión, deriva los límites de cada combate (una sola vez: el
// roster es estático) y ejecuta la primera recomputación.
func New(event domain.Event, matches []domain.Match, limits domain.Limits) *Session {
	for i := range matches {
		matches[i].Constraints = domain.DeriveConstraints(matches[i])
	}
	s := &Session{event: event, matches: matches, limits: limits}
	s.recompute()
	return s
}

// Event devuelve los metadatos del evento.
func (s *Session) Event() domain.Event { return s.event }

// Matches devuelve los combates con su estado de validación actual.
func (s *Session) Matches() []domain.Match { return s.matches }

// Limits devuelve las constantes de la sesión.
func (s *Session) Limits() domain.Limits { return s.limits }

// State devuelve el estado de la puerta de envío.
func (s *Session) State() State { return s.state }

// Player devuelve el nombre de jugador actual.
func (s *Session) Player() string { return s.player }

// Totals devuelve el último snapshot de totales.
func (s *Session) Totals() domain.Totals { return s.totals }

// Valid devuelve true si todos los combates pasan sus reglas.
func (s *Session) Valid() bool { return domain.AllValid(s.matches) }

// Submission devuelve el envío si ya existe.
func (s *Session) Submission() (*domain.Submission, bool) {
	return s.submission, s.submission != nil
}

// SetPlayer fija el nombre del jugador. No-op tras el envío.
func (s *Session) SetPlayer(name string) {
	if s.state == StateSubmitted {
		return
	}
	s.player = name
}

// SetWager aplica el texto crudo de una apuesta y recomputa todo de forma
// síncrona antes de devolver: no hay ventana de staleness visible. La entrada
// malformada se coerce en silencio a 0 (apuesta no puesta) pero el texto crudo
// se conserva — la puerta de envío lo revalida. Tras el envío es un no-op.
func (s *Session) SetWager(matchIdx, partIdx int, raw string) error {
	if s.state == StateSubmitted {
		return nil
	}
	if matchIdx < 0 || matchIdx >= len(s.matches) {
		return fmt.Errorf("session.SetWager: no match %d", matchIdx+1)
	}
	m := &s.matches[matchIdx]
	if partIdx < 0 || partIdx >= len(m.Participants) {
		return fmt.Errorf("session.SetWager: no wrestler %d in %q", partIdx+1, m.Name)
	}
	p := &m.Participants[partIdx]
	if !p.Enabled {
		return fmt.Errorf("session.SetWager: wagers are locked for %s (odds TBD)", p.DisplayName())
	}

	p.RawInput = raw
	p.Wager = coerceWager(raw)
	s.recompute()
	return nil
}

// ClearMatch pone a cero todas las apuestas de un combate en una operación.
// Una sola recomputación al final, siempre completa.
func (s *Session) ClearMatch(matchIdx int) error {
	if s.state == StateSubmitted {
		return nil
	}
	if matchIdx < 0 || matchIdx >= len(s.matches) {
		return fmt.Errorf("session.ClearMatch: no match %d", matchIdx+1)
	}
	for i := range s.matches[matchIdx].Participants {
		p := &s.matches[matchIdx].Participants[i]
		p.Wager = 0
		p.RawInput = ""
	}
	s.recompute()
	return nil
}

// recompute revalida cada combate y rehace los totales desde cero. Mantiene
// los flags Active (apuesta puesta) que consumen los colaboradores de vista.
func (s *Session) recompute() {
	for i := range s.matches {
		m := &s.matches[i]
		m.Validation = domain.ValidateMatch(*m, s.limits)
		for j := range m.Participants {
			p := &m.Participants[j]
			p.Active = p.Wager > 0
		}
	}
	s.totals = domain.Aggregate(s.matches, s.limits)
	s.hasTotals = true
}

// Submit intenta la transición Editable → Submitted. Las guardas se evalúan
// en orden sobre un snapshot recién recomputado y cualquier fallo rechaza sin
// cambiar de estado. En éxito construye el registro inmutable, deshabilita
// todas las filas y bloquea la sesión de forma definitiva.
func (s *Session) Submit(now time.Time) (*domain.Submission, error) {
	if s.state == StateSubmitted {
		return nil, ErrAlreadySubmitted
	}

	// Snapshot fresco: la puerta solo consulta totales recién calculados.
	s.recompute()

	if !domain.AllValid(s.matches) {
		return nil, ErrInvalidMatches
	}

	player := strings.TrimSpace(s.player)
	if player == "" {
		return nil, ErrNoPlayer
	}

	if !s.hasTotals || s.totals.OverLimit {
		return nil, ErrOverBankroll
	}

	if err := s.checkRawInputs(); err != nil {
		return nil, err
	}

	sub := &domain.Submission{
		ID:          uuid.NewString(),
		EventID:     s.event.ID,
		EventName:   s.event.DisplayName(),
		Player:      player,
		SubmittedAt: now.UTC(),
		Bankroll:    s.limits.Bankroll,
		Picks:       domain.CollectPicks(s.matches),
		Totals:      roundTotals(s.totals),
	}

	for i := range s.matches {
		for j := range s.matches[i].Participants {
			s.matches[i].Participants[j].Enabled = false
		}
	}
	s.player = player
	s.submission = sub
	s.state = StateSubmitted
	return sub, nil
}

// checkRawInputs rechaza el envío si alguna fila habilitada conserva texto
// no vacío que parsea a un número negativo o no finito. La coerción ya puso
// la apuesta a 0, pero el texto pendiente delata una entrada corrupta.
func (s *Session) checkRawInputs() error {
	for _, m := range s.matches {
		for _, p := range m.Participants {
			if !p.Enabled {
				continue
			}
			raw := strings.TrimSpace(p.RawInput)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return ErrBadWagerInput
			}
		}
	}
	return nil
}

// coerceWager convierte el texto crudo en una apuesta segura: vacío, no
// numérico, no finito o negativo ⇒ 0 (sin error, es "apuesta no puesta").
func coerceWager(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// roundTotals redondea el snapshot a un decimal para el registro del envío.
func roundTotals(t domain.Totals) domain.Totals {
	t.TotalWagered = domain.RoundWager(t.TotalWagered)
	t.TotalProfit = domain.RoundWager(t.TotalProfit)
	t.TotalReturn = domain.RoundWager(t.TotalReturn)
	t.Remaining = domain.RoundWager(t.Remaining)
	return t
}
