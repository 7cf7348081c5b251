package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alejandrodnm/matbook/internal/ports"
	"github.com/alejandrodnm/matbook/internal/session"
)

// repl es el loop interactivo de la hoja de apuestas. Cada comando se procesa
// completo (edición + recomputación síncrona) antes de leer el siguiente.
type repl struct {
	session   *session.Session
	source    ports.RosterSource
	presenter ports.Presenter
	store     ports.Storage
	exporter  ports.Exporter
}

func newREPL(s *session.Session, source ports.RosterSource, presenter ports.Presenter, store ports.Storage, exporter ports.Exporter) *repl {
	return &repl{session: s, source: source, presenter: presenter, store: store, exporter: exporter}
}

const replHelp = `commands:
  show                      print the sheet and totals
  bet <match> <wrestler> <points>   place or change a wager
  clear <match>             zero every wager in a match
  player <name>             set the player name
  submit                    lock the sheet (one time only)
  export                    write the submission JSON
  events                    list the event ids in the roster
  help                      this text
  quit (or exit)            leave`

// Run procesa comandos hasta quit, EOF o cancelación.
func (r *repl) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	r.showSheet(ctx)
	fmt.Fprintln(out, replHelp)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "show":
			r.showSheet(ctx)

		case "bet":
			if len(fields) != 4 {
				fmt.Fprintln(out, "usage: bet <match> <wrestler> <points>")
				continue
			}
			matchIdx, ok1 := parseIndex(fields[1])
			partIdx, ok2 := parseIndex(fields[2])
			if !ok1 || !ok2 {
				fmt.Fprintln(out, "usage: bet <match> <wrestler> <points>")
				continue
			}
			if err := r.session.SetWager(matchIdx, partIdx, fields[3]); err != nil {
				fmt.Fprintf(out, "cannot bet: %v\n", err)
				continue
			}
			r.showSheet(ctx)

		case "clear":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: clear <match>")
				continue
			}
			matchIdx, ok := parseIndex(fields[1])
			if !ok {
				fmt.Fprintln(out, "usage: clear <match>")
				continue
			}
			if err := r.session.ClearMatch(matchIdx); err != nil {
				fmt.Fprintf(out, "cannot clear: %v\n", err)
				continue
			}
			r.showSheet(ctx)

		case "player":
			r.session.SetPlayer(strings.Join(fields[1:], " "))
			fmt.Fprintf(out, "player: %s\n", r.session.Player())

		case "submit":
			r.submit(ctx, out)

		case "export":
			r.export(ctx, out)

		case "events":
			ids, err := r.source.ListEventIDs(ctx)
			if err != nil {
				fmt.Fprintf(out, "cannot list events: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "events: %s\n", strings.Join(ids, ", "))

		case "help":
			fmt.Fprintln(out, replHelp)

		case "quit", "exit":
			return nil

		default:
			fmt.Fprintf(out, "unknown command %q (try: help)\n", fields[0])
		}
	}
	return scanner.Err()
}

// submit intenta la transición por la puerta de envío; en éxito archiva el
// registro y muestra el resguardo.
func (r *repl) submit(ctx context.Context, out io.Writer) {
	sub, err := r.session.Submit(time.Now())
	if err != nil {
		fmt.Fprintf(out, "submission rejected: %v\n", err)
		return
	}

	if err := r.presenter.ShowReceipt(ctx, *sub); err != nil {
		slog.Warn("presenter error", "err", err)
	}

	if err := r.store.SaveSubmission(ctx, *sub); err != nil {
		// el fallo de archivo no revierte el envío: la sesión ya es terminal
		slog.Warn("could not archive submission", "err", err, "id", sub.ID)
		return
	}
	slog.Info("submission archived", "id", sub.ID, "picks", len(sub.Picks))
}

// export escribe el documento JSON del envío. Solo tras submit.
func (r *repl) export(ctx context.Context, out io.Writer) {
	sub, ok := r.session.Submission()
	if !ok {
		fmt.Fprintln(out, "nothing to export: submit the sheet first")
		return
	}
	path, err := r.exporter.Export(ctx, *sub)
	if err != nil {
		// fallo local y no fatal: el envío sigue archivado
		fmt.Fprintf(out, "export failed: %v\n", err)
		return
	}
	fmt.Fprintf(out, "exported to %s\n", path)
}

func (r *repl) showSheet(ctx context.Context) {
	err := r.presenter.ShowSheet(ctx, r.session.Event(), r.session.Matches(), r.session.Totals())
	if err != nil {
		slog.Warn("presenter error", "err", err)
	}
}

// chooseEvent lista los ids disponibles y pide uno por stdin.
func chooseEvent(ctx context.Context, source ports.RosterSource, in io.Reader, out io.Writer) (string, error) {
	ids, err := source.ListEventIDs(ctx)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no events found in the roster")
	}

	fmt.Fprintf(out, "Available events: %s\n", strings.Join(ids, ", "))
	fmt.Fprint(out, "Event id: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return "", fmt.Errorf("no event id given")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// parseIndex convierte un ordinal 1-based de usuario a índice 0-based.
func parseIndex(s string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
