package roster

// csv.go — fuente de roster desde el CSV del juego.
//
// El CSV trae una fila por luchador con el evento, el combate, la cuota y el
// marcador de campeón. Los encabezados tienen variantes históricas
// ("StartTime" vs "Start Time"), así que cada campo se resuelve contra una
// lista de alias. El orden del archivo manda: combates y luchadores se
// devuelven tal y como aparecen.

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alejandrodnm/matbook/internal/domain"
)

// columnAliases mapea cada campo lógico a sus posibles encabezados.
var columnAliases = map[string][]string{
	"event_id":   {"EventID"},
	"event":      {"Event"},
	"date":       {"Date"},
	"start_time": {"StartTime", "Start Time"},
	"country":    {"Country"},
	"location":   {"Location"},
	"venue":      {"Venue"},
	"match":      {"Match"},
	"wrestler":   {"Wrestler"},
	"champion":   {"CurrentChamp", "Current Champ (Y/N)"},
	"odds":       {"Odds"},
}

// CSVSource implementa ports.RosterSource leyendo el archivo en cada llamada.
type CSVSource struct {
	path string
}

// NewCSVSource crea la fuente apuntando al archivo dado.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// ListEventIDs devuelve los ids de evento únicos en orden de primera aparición.
func (s *CSVSource) ListEventIDs(_ context.Context) ([]string, error) {
	rows, keys, err := s.read()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, row := range rows {
		id := strings.TrimSpace(row[keys["event_id"]])
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// LoadEvent filtra las filas del evento (case-insensitive) y las agrupa en
// combates preservando el orden del archivo.
func (s *CSVSource) LoadEvent(_ context.Context, eventID string) (domain.Event, []domain.Match, error) {
	rows, keys, err := s.read()
	if err != nil {
		return domain.Event{}, nil, err
	}

	want := normalize(eventID)
	var eventRows []map[string]string
	for _, row := range rows {
		if normalize(row[keys["event_id"]]) == want {
			eventRows = append(eventRows, row)
		}
	}
	if len(eventRows) == 0 {
		return domain.Event{}, nil, fmt.Errorf("roster.LoadEvent: no rows for event %q", eventID)
	}

	first := eventRows[0]
	event := domain.Event{
		ID:        strings.TrimSpace(first[keys["event_id"]]),
		Name:      strings.TrimSpace(first[keys["event"]]),
		Date:      strings.TrimSpace(first[keys["date"]]),
		StartTime: strings.TrimSpace(first[keys["start_time"]]),
		Country:   strings.TrimSpace(first[keys["country"]]),
		Location:  strings.TrimSpace(first[keys["location"]]),
		Venue:     strings.TrimSpace(first[keys["venue"]]),
	}

	var matches []domain.Match
	index := make(map[string]int) // nombre de combate → posición
	for _, row := range eventRows {
		matchName := strings.TrimSpace(row[keys["match"]])
		if matchName == "" {
			matchName = "Unknown Match"
		}
		i, ok := index[matchName]
		if !ok {
			i = len(matches)
			index[matchName] = i
			matches = append(matches, domain.Match{Name: matchName})
		}

		odds := domain.ParseAmericanOdds(row[keys["odds"]])
		matches[i].Participants = append(matches[i].Participants, domain.Participant{
			Name:     domain.CleanName(row[keys["wrestler"]]),
			Odds:     odds,
			Champion: domain.IsChampionMarker(row[keys["champion"]]),
			// con cuota TBD la apuesta queda bloqueada desde el principio
			Enabled: odds.Known,
		})
	}

	return event, matches, nil
}

// read carga el CSV completo y resuelve los alias de encabezado.
func (s *CSVSource) read() ([]map[string]string, map[string]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("roster.read: open %q: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // filas cortas aparecen en exports manuales
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("roster.read: parse %q: %w", s.path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("roster.read: %q is empty", s.path)
	}

	header := records[0]
	if len(header) > 0 {
		// los exports de hoja de cálculo llevan BOM UTF-8 en la primera celda
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	keys, err := resolveKeys(header)
	if err != nil {
		return nil, nil, err
	}

	var rows []map[string]string
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, keys, nil
}

// resolveKeys elige, para cada campo lógico, el primer alias presente en el
// encabezado. Falla listando todos los campos sin columna.
func resolveKeys(header []string) (map[string]string, error) {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}

	keys := make(map[string]string, len(columnAliases))
	var missing []string
	for field, aliases := range columnAliases {
		found := ""
		for _, alias := range aliases {
			if _, ok := present[alias]; ok {
				found = alias
				break
			}
		}
		if found == "" {
			missing = append(missing, field)
			continue
		}
		keys[field] = found
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("roster.resolveKeys: missing columns for: %s", strings.Join(missing, ", "))
	}
	return keys, nil
}

// normalize baja a minúsculas y recorta para comparaciones seguras.
func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
