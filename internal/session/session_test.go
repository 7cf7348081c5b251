package session_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/matbook/internal/domain"
	"github.com/alejandrodnm/matbook/internal/session"
)

func testEvent() domain.Event {
	return domain.Event{ID: "EC2026", Name: "Elimination Chamber 2026"}
}

func testMatches() []domain.Match {
	return []domain.Match{
		{
			Name: "World Heavyweight Championship",
			Participants: []domain.Participant{
				{Name: "Rey Cometa", Odds: domain.KnownOdds(150), Enabled: true},
				{Name: "El Tigre", Odds: domain.KnownOdds(-200), Enabled: true, Champion: true},
				{Name: "Mistico Jr", Odds: domain.KnownOdds(300), Enabled: true},
				{Name: "La Sombra", Odds: domain.KnownOdds(-110), Enabled: true},
			},
		},
		{
			Name: "Tag Team Titles",
			Participants: []domain.Participant{
				{Name: "Duo X", Odds: domain.KnownOdds(120), Enabled: true},
				{Name: "Duo Y", Odds: domain.KnownOdds(-140), Enabled: true},
			},
		},
	}
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	return session.New(testEvent(), testMatches(), domain.DefaultLimits())
}

func TestNew_DerivesConstraintsAndTotals(t *testing.T) {
	s := newTestSession(t)

	matches := s.Matches()
	assert.Equal(t, 4, matches[0].Constraints.ParticipantCount)
	assert.Equal(t, 2, matches[0].Constraints.MaxSelections)
	assert.Equal(t, 1, matches[1].Constraints.MaxSelections)

	totals := s.Totals()
	assert.Equal(t, 0.0, totals.TotalWagered)
	assert.Equal(t, 2, totals.MatchesNotWagered)
	assert.True(t, s.Valid())
}

func TestConstraints_FixedAfterSetup(t *testing.T) {
	s := newTestSession(t)
	before := []domain.Constraints{
		s.Matches()[0].Constraints,
		s.Matches()[1].Constraints,
	}

	require.NoError(t, s.SetWager(0, 0, "10"))
	require.NoError(t, s.SetWager(0, 1, "25"))
	require.NoError(t, s.SetWager(1, 0, "abc"))
	require.NoError(t, s.ClearMatch(0))
	require.NoError(t, s.SetWager(0, 2, "5"))

	// las restricciones se derivan una sola vez al crear la sesión; ninguna
	// edición posterior las recalcula
	assert.Equal(t, before[0], s.Matches()[0].Constraints)
	assert.Equal(t, before[1], s.Matches()[1].Constraints)
}

func TestSetWager_RecomputesSynchronously(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.SetWager(0, 0, "10")) // Rey Cometa a +150
	require.NoError(t, s.SetWager(0, 1, "10")) // El Tigre a -200

	totals := s.Totals()
	assert.InDelta(t, 20.0, totals.TotalWagered, 0.001)
	assert.InDelta(t, 20.0, totals.TotalProfit, 0.001)
	assert.InDelta(t, 40.0, totals.TotalReturn, 0.001)
	assert.InDelta(t, 80.0, totals.Remaining, 0.001)
	assert.Equal(t, 1, totals.MatchesNotWagered)
	assert.False(t, totals.OverLimit)

	// flag Active observable para la capa de vista
	assert.True(t, s.Matches()[0].Participants[0].Active)
	assert.False(t, s.Matches()[0].Participants[2].Active)
	assert.True(t, s.Valid())
}

func TestSetWager_MalformedInputCoercedSilently(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.SetWager(0, 0, "abc"))
	assert.Equal(t, 0.0, s.Totals().TotalWagered)
	assert.True(t, s.Valid(), "la malformación no es violación de regla")

	require.NoError(t, s.SetWager(0, 0, "-7"))
	assert.Equal(t, 0.0, s.Totals().TotalWagered)
}

func TestSetWager_OutOfRange(t *testing.T) {
	s := newTestSession(t)
	assert.Error(t, s.SetWager(9, 0, "10"))
	assert.Error(t, s.SetWager(0, 9, "10"))
}

func TestSetWager_LockedForUnknownOdds(t *testing.T) {
	matches := testMatches()
	matches[1].Participants = append(matches[1].Participants,
		domain.Participant{Name: "TBD", Odds: domain.Odds{}, Enabled: false})
	s := session.New(testEvent(), matches, domain.DefaultLimits())

	assert.Error(t, s.SetWager(1, 2, "10"))
}

func TestClearMatch_ResetsInOneOperation(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.SetWager(0, 0, "10"))
	require.NoError(t, s.SetWager(0, 1, "10"))

	require.NoError(t, s.ClearMatch(0))
	assert.Equal(t, 0.0, s.Totals().TotalWagered)
	assert.Equal(t, 2, s.Totals().MatchesNotWagered)
}

// --- puerta de envío ---

func TestSubmit_BlockedByInvalidMatch(t *testing.T) {
	s := newTestSession(t)
	s.SetPlayer("Alejandro")
	require.NoError(t, s.SetWager(0, 0, "3")) // por debajo del mínimo de 5

	_, err := s.Submit(time.Now())
	assert.ErrorIs(t, err, session.ErrInvalidMatches)
	assert.Equal(t, session.StateEditable, s.State())
}

func TestSubmit_BlockedBySelectionCap(t *testing.T) {
	s := newTestSession(t)
	s.SetPlayer("Alejandro")
	// tres selecciones en un combate de cuatro (máximo 2)
	require.NoError(t, s.SetWager(0, 0, "5"))
	require.NoError(t, s.SetWager(0, 1, "5"))
	require.NoError(t, s.SetWager(0, 2, "5"))

	_, err := s.Submit(time.Now())
	assert.ErrorIs(t, err, session.ErrInvalidMatches)
	assert.Contains(t, s.Matches()[0].Validation.Messages[0], "allowed 2")
}

func TestSubmit_BlockedByEmptyPlayer(t *testing.T) {
	s := newTestSession(t)
	s.SetPlayer("   ")
	require.NoError(t, s.SetWager(0, 0, "10"))

	_, err := s.Submit(time.Now())
	assert.ErrorIs(t, err, session.ErrNoPlayer)
}

func TestSubmit_BlockedOverBankroll(t *testing.T) {
	// con el cap de 25 por combate y solo dos combates no se puede superar el
	// bankroll de 100: bajamos el bankroll para forzar el overrun
	limits := domain.Limits{Bankroll: 30, MinWager: 5, MaxPerMatch: 25}
	s := session.New(testEvent(), testMatches(), limits)
	s.SetPlayer("Alejandro")
	require.NoError(t, s.SetWager(0, 0, "20"))
	require.NoError(t, s.SetWager(1, 0, "15"))

	_, err := s.Submit(time.Now())
	assert.ErrorIs(t, err, session.ErrOverBankroll)
	assert.Equal(t, session.StateEditable, s.State())

	// el remaining mostrado queda clampeado a cero aunque haya overrun
	assert.Equal(t, 0.0, s.Totals().Remaining)
	assert.True(t, s.Totals().OverLimit)
}

func TestSubmit_BlockedByLingeringBadInput(t *testing.T) {
	s := newTestSession(t)
	s.SetPlayer("Alejandro")
	require.NoError(t, s.SetWager(0, 0, "10"))
	require.NoError(t, s.SetWager(0, 1, "-3")) // coercido a 0, texto pendiente

	_, err := s.Submit(time.Now())
	assert.ErrorIs(t, err, session.ErrBadWagerInput)
}

func TestSubmit_Success(t *testing.T) {
	s := newTestSession(t)
	s.SetPlayer("  Alejandro  ")
	require.NoError(t, s.SetWager(0, 0, "10"))
	require.NoError(t, s.SetWager(0, 1, "10"))

	now := time.Date(2026, 2, 28, 19, 0, 0, 0, time.UTC)
	sub, err := s.Submit(now)
	require.NoError(t, err)
	require.NotNil(t, sub)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "EC2026", sub.EventID)
	assert.Equal(t, "Alejandro", sub.Player)
	assert.Equal(t, now, sub.SubmittedAt)
	assert.Equal(t, 100.0, sub.Bankroll)
	require.Len(t, sub.Picks, 2)
	assert.Equal(t, "+150", sub.Picks[0].Odds)
	assert.InDelta(t, 20.0, sub.Totals.TotalWagered, 0.001)
	assert.InDelta(t, 40.0, sub.Totals.TotalReturn, 0.001)

	assert.Equal(t, session.StateSubmitted, s.State())
	for _, m := range s.Matches() {
		for _, p := range m.Participants {
			assert.False(t, p.Enabled)
		}
	}
}

func TestSubmit_TerminalState(t *testing.T) {
	s := newTestSession(t)
	s.SetPlayer("Alejandro")
	require.NoError(t, s.SetWager(0, 0, "10"))

	_, err := s.Submit(time.Now())
	require.NoError(t, err)
	frozen := s.Totals()

	// las ediciones posteriores son no-ops sin efecto observable
	assert.NoError(t, s.SetWager(0, 1, "25"))
	assert.NoError(t, s.ClearMatch(0))
	s.SetPlayer("otro")
	assert.Equal(t, frozen, s.Totals())
	assert.Equal(t, "Alejandro", s.Player())

	// y un segundo envío se rechaza
	_, err = s.Submit(time.Now())
	assert.ErrorIs(t, err, session.ErrAlreadySubmitted)

	sub, ok := s.Submission()
	assert.True(t, ok)
	assert.Len(t, sub.Picks, 1)
}

// --- roster arbitrario ---

func TestSession_ArbitraryRoster(t *testing.T) {
	faker := gofakeit.New(42)

	var matches []domain.Match
	for i := 0; i < 5; i++ {
		m := domain.Match{Name: faker.Sentence(3)}
		for j := 0; j < faker.Number(2, 5); j++ {
			m.Participants = append(m.Participants, domain.Participant{
				Name:    faker.Name(),
				Odds:    domain.KnownOdds(faker.Number(-300, 300)),
				Enabled: true,
			})
		}
		matches = append(matches, m)
	}

	s := session.New(testEvent(), matches, domain.DefaultLimits())
	for _, m := range s.Matches() {
		assert.Equal(t, len(m.Participants)/2, m.Constraints.MaxSelections)
	}

	// apuestas legales repartidas: la hoja se mantiene válida
	require.NoError(t, s.SetWager(0, 0, "5"))
	require.NoError(t, s.SetWager(1, 0, "5"))
	assert.True(t, s.Valid())
	assert.InDelta(t, 10.0, s.Totals().TotalWagered, 0.001)
}
