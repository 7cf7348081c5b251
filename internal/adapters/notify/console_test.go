package notify_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/matbook/internal/adapters/notify"
	"github.com/alejandrodnm/matbook/internal/domain"
)

func sheetFixture() (domain.Event, []domain.Match, domain.Totals) {
	event := domain.Event{
		ID: "EC2026", Name: "Elimination Chamber 2026",
		Date: "2/28/2026", StartTime: "19:00",
		Country: "Canada", Location: "Toronto", Venue: "Rogers Centre",
	}
	m := domain.Match{
		Name: "World Heavyweight Championship",
		Participants: []domain.Participant{
			{Name: "Rey Cometa", Odds: domain.KnownOdds(150), Wager: 10, Active: true, Enabled: true},
			{Name: "El Tigre", Odds: domain.KnownOdds(-200), Champion: true, Enabled: true},
		},
	}
	m.Constraints = domain.DeriveConstraints(m)
	m.Validation = domain.ValidateMatch(m, domain.DefaultLimits())
	totals := domain.Aggregate([]domain.Match{m}, domain.DefaultLimits())
	return event, []domain.Match{m}, totals
}

func TestConsole_ShowSheet(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	event, matches, totals := sheetFixture()
	require.NoError(t, c.ShowSheet(context.Background(), event, matches, totals))

	out := buf.String()
	assert.Contains(t, out, "Elimination Chamber 2026 (EC2026)")
	assert.Contains(t, out, "Saturday, February 28th, 2026")
	assert.Contains(t, out, "7:00pm EST")
	assert.Contains(t, out, "Rogers Centre, Toronto, Canada")
	assert.Contains(t, out, "Rey Cometa")
	assert.Contains(t, out, "El Tigre (c)")
	assert.Contains(t, out, "+150")
	assert.Contains(t, out, "pick up to 1 of 2")
	assert.Contains(t, out, "Wagered:   10.0")
	assert.Contains(t, out, "Remaining: 90.0")
}

func TestConsole_ShowSheet_Violations(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	event, matches, _ := sheetFixture()
	matches[0].Participants[0].Wager = 3 // por debajo del mínimo
	matches[0].Validation = domain.ValidateMatch(matches[0], domain.DefaultLimits())
	totals := domain.Aggregate(matches, domain.DefaultLimits())

	require.NoError(t, c.ShowSheet(context.Background(), event, matches, totals))
	assert.Contains(t, buf.String(), "minimum bet")
}

func TestConsole_ShowSheet_OverLimit(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	event, matches, totals := sheetFixture()
	totals.OverLimit = true
	require.NoError(t, c.ShowSheet(context.Background(), event, matches, totals))
	assert.Contains(t, buf.String(), "OVER LIMIT")
}

func TestConsole_ShowReceipt(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	sub := domain.Submission{
		ID:          "sub-001",
		EventID:     "EC2026",
		EventName:   "Elimination Chamber 2026",
		Player:      "Alejandro",
		SubmittedAt: time.Date(2026, 2, 28, 19, 0, 0, 0, time.UTC),
		Bankroll:    100,
		Picks: []domain.Pick{
			{Match: "World Heavyweight Championship", Wrestler: "Rey Cometa", Odds: "+150", Wager: 10},
		},
		Totals: domain.Totals{TotalWagered: 10, TotalProfit: 15, TotalReturn: 25, Remaining: 90},
	}

	require.NoError(t, c.ShowReceipt(context.Background(), sub))
	out := buf.String()
	assert.Contains(t, out, "SUBMITTED")
	assert.Contains(t, out, "Alejandro")
	assert.Contains(t, out, "sub-001")
	assert.Contains(t, out, "Rey Cometa")
	assert.Contains(t, out, "locked")
}
