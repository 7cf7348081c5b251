package storage

// sqlite.go — archivo local de envíos.
//
// Una sesión produce como máximo un envío, así que el volumen es mínimo:
//   - `submissions`: una fila por envío con el snapshot de totales.
//   - `picks`: las apuestas no nulas del envío, con su posición para
//     preservar el orden combate → luchador.
// El registro es inmutable: solo INSERT, nunca UPDATE.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/matbook/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Una fila por envío, con el snapshot de totales redondeado
CREATE TABLE IF NOT EXISTS submissions (
    id             TEXT PRIMARY KEY,
    event_id       TEXT     NOT NULL,
    event_name     TEXT,
    player         TEXT     NOT NULL,
    submitted_at   DATETIME NOT NULL,
    bankroll       REAL     NOT NULL,
    total_wagered  REAL     NOT NULL DEFAULT 0,
    total_profit   REAL     NOT NULL DEFAULT 0,
    total_return   REAL     NOT NULL DEFAULT 0,
    remaining      REAL     NOT NULL DEFAULT 0,
    matches_open   INTEGER  NOT NULL DEFAULT 0,
    over_limit     INTEGER  NOT NULL DEFAULT 0
);

-- Las picks del envío, en orden estable
CREATE TABLE IF NOT EXISTS picks (
    submission_id TEXT    NOT NULL REFERENCES submissions(id),
    position      INTEGER NOT NULL,
    match         TEXT    NOT NULL,
    wrestler      TEXT    NOT NULL,
    odds          TEXT    NOT NULL,
    wager         REAL    NOT NULL,
    PRIMARY KEY (submission_id, position)
);

CREATE INDEX IF NOT EXISTS idx_sub_event ON submissions(event_id, submitted_at DESC);
`

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada y aplica
// el schema.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// SaveSubmission persiste el envío y sus picks en una sola transacción.
func (s *SQLiteStorage) SaveSubmission(ctx context.Context, sub domain.Submission) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveSubmission: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO submissions (
			id, event_id, event_name, player, submitted_at, bankroll,
			total_wagered, total_profit, total_return, remaining,
			matches_open, over_limit
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.EventID, sub.EventName, sub.Player, sub.SubmittedAt.UTC(),
		sub.Bankroll, sub.Totals.TotalWagered, sub.Totals.TotalProfit,
		sub.Totals.TotalReturn, sub.Totals.Remaining,
		sub.Totals.MatchesNotWagered, boolToInt(sub.Totals.OverLimit),
	)
	if err != nil {
		return fmt.Errorf("storage.SaveSubmission: insert submission %s: %w", sub.ID, err)
	}

	for i, pick := range sub.Picks {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO picks (submission_id, position, match, wrestler, odds, wager)
			VALUES (?, ?, ?, ?, ?, ?)`,
			sub.ID, i, pick.Match, pick.Wrestler, pick.Odds, pick.Wager,
		)
		if err != nil {
			return fmt.Errorf("storage.SaveSubmission: insert pick %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveSubmission: commit: %w", err)
	}
	return nil
}

// LatestSubmission devuelve el último envío archivado para un evento, con sus
// picks en el orden original. Sin envíos devuelve (nil, nil).
func (s *SQLiteStorage) LatestSubmission(ctx context.Context, eventID string) (*domain.Submission, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, event_id, event_name, player, submitted_at, bankroll,
		       total_wagered, total_profit, total_return, remaining,
		       matches_open, over_limit
		FROM submissions
		WHERE event_id = ?
		ORDER BY submitted_at DESC
		LIMIT 1`, eventID)

	var sub domain.Submission
	var submittedAt time.Time
	var overLimit int
	err := row.Scan(
		&sub.ID, &sub.EventID, &sub.EventName, &sub.Player, &submittedAt,
		&sub.Bankroll, &sub.Totals.TotalWagered, &sub.Totals.TotalProfit,
		&sub.Totals.TotalReturn, &sub.Totals.Remaining,
		&sub.Totals.MatchesNotWagered, &overLimit,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.LatestSubmission: query %q: %w", eventID, err)
	}
	sub.SubmittedAt = submittedAt.UTC()
	sub.Totals.OverLimit = overLimit != 0

	rows, err := s.db.QueryContext(ctx, `
		SELECT match, wrestler, odds, wager
		FROM picks
		WHERE submission_id = ?
		ORDER BY position`, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("storage.LatestSubmission: query picks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Pick
		if err := rows.Scan(&p.Match, &p.Wrestler, &p.Odds, &p.Wager); err != nil {
			return nil, fmt.Errorf("storage.LatestSubmission: scan pick: %w", err)
		}
		sub.Picks = append(sub.Picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.LatestSubmission: iterate picks: %w", err)
	}

	return &sub, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
