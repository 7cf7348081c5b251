package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/matbook/internal/domain"
)

// Console implementa ports.Presenter escribiendo la hoja en texto plano.
type Console struct {
	out io.Writer
}

// NewConsole crea un presentador que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un presentador para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// ShowSheet imprime la hoja completa: cabecera del evento, una tabla por
// combate con las violaciones debajo, y los totales del bankroll al final.
func (c *Console) ShowSheet(_ context.Context, event domain.Event, matches []domain.Match, totals domain.Totals) error {
	c.printEventHeader(event)

	for i, m := range matches {
		c.printMatch(i+1, m)
	}

	c.printTotals(totals, len(matches))
	return nil
}

// ShowReceipt imprime el resguardo del envío bloqueado.
func (c *Console) ShowReceipt(_ context.Context, sub domain.Submission) error {
	fmt.Fprintf(c.out, "\n=== SUBMITTED — %s ===\n", sub.EventName)
	fmt.Fprintf(c.out, "  Player: %s\n", sub.Player)
	fmt.Fprintf(c.out, "  At:     %s\n", sub.SubmittedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(c.out, "  Ref:    %s\n\n", sub.ID)

	if len(sub.Picks) == 0 {
		fmt.Fprintln(c.out, "  (no picks)")
	} else {
		table := tablewriter.NewWriter(c.out)
		table.Header("Match", "Wrestler", "Odds", "Wager")
		for _, p := range sub.Picks {
			table.Append(p.Match, p.Wrestler, p.Odds, fmt.Sprintf("%.1f", p.Wager))
		}
		table.Render()
	}

	fmt.Fprintf(c.out, "\n  Wagered %.1f of %.0f | projected profit %.1f | return %.1f\n",
		sub.Totals.TotalWagered, sub.Bankroll, sub.Totals.TotalProfit, sub.Totals.TotalReturn)
	fmt.Fprintln(c.out, "  The sheet is locked: no further edits or submissions this session.")
	return nil
}

// printEventHeader imprime los metadatos del evento con los formatos de display.
func (c *Console) printEventHeader(event domain.Event) {
	fmt.Fprintf(c.out, "\n%s (%s)\n", event.DisplayName(), event.ID)
	fmt.Fprintf(c.out, "%s — %s\n", domain.FormatEventDate(event.Date), domain.FormatStartTime(event.StartTime))

	var where []string
	for _, part := range []string{event.Venue, event.Location, event.Country} {
		if strings.TrimSpace(part) != "" {
			where = append(where, part)
		}
	}
	if len(where) > 0 {
		fmt.Fprintln(c.out, strings.Join(where, ", "))
	}
}

// printMatch imprime la tabla del combate y sus violaciones, si las hay.
func (c *Console) printMatch(n int, m domain.Match) {
	fmt.Fprintf(c.out, "\n[%d] %s — pick up to %d of %d\n",
		n, m.Name, m.Constraints.MaxSelections, m.Constraints.ParticipantCount)

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Wrestler", "Odds", "Wager", "Profit")

	for i, p := range m.Participants {
		name := p.DisplayName()
		if p.Champion {
			name += " (c)"
		}

		wager := "-"
		if p.Active {
			wager = fmt.Sprintf("%.1f", p.Wager)
		} else if !p.Enabled {
			wager = "locked"
		}

		profit := "-"
		if v := p.Profit(); v > 0 {
			profit = fmt.Sprintf("%.1f", v)
		}

		table.Append(fmt.Sprintf("%d", i+1), name, p.Odds.String(), wager, profit)
	}

	table.Render()

	for _, msg := range m.Validation.Messages {
		fmt.Fprintf(c.out, "  ✗ %s\n", msg)
	}
}

// printTotals imprime el resumen del bankroll.
func (c *Console) printTotals(totals domain.Totals, matchCount int) {
	fmt.Fprintf(c.out, "\n=== BANKROLL ===\n")
	fmt.Fprintf(c.out, "  Wagered:   %.1f\n", totals.TotalWagered)
	fmt.Fprintf(c.out, "  Profit:    %.1f\n", totals.TotalProfit)
	fmt.Fprintf(c.out, "  Return:    %.1f\n", totals.TotalReturn)
	fmt.Fprintf(c.out, "  Remaining: %.1f\n", totals.Remaining)

	if avg, ok := totals.AverageRemainingPerOpenMatch(); ok {
		fmt.Fprintf(c.out, "  Open matches: %d of %d (~%.1f pts each if split evenly)\n",
			totals.MatchesNotWagered, matchCount, avg)
	}

	if totals.OverLimit {
		fmt.Fprintln(c.out, "  ⚠ OVER LIMIT: total wagered exceeds the bankroll")
	}
}
