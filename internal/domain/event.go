package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Event son los metadatos del evento tal y como vienen del roster.
type Event struct {
	ID        string
	Name      string
	Date      string // crudo del roster; usar FormatEventDate para mostrar
	StartTime string // crudo del roster; usar FormatStartTime para mostrar
	Country   string
	Location  string
	Venue     string
}

// DisplayName devuelve el nombre del evento con fallback.
func (e Event) DisplayName() string {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return "Unknown Event"
	}
	return name
}

// FormatEventDate convierte fechas como "2/28/2026" en
// "Saturday, February 28th, 2026". Si el texto no se puede parsear se
// devuelve tal cual; vacío devuelve "Unknown Date".
func FormatEventDate(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "Unknown Date"
	}

	var parsed time.Time
	var ok bool
	for _, layout := range []string{"1/2/2006", "1/2/06", "2006-01-02"} {
		if t, err := time.Parse(layout, cleaned); err == nil {
			parsed, ok = t, true
			break
		}
	}
	if !ok {
		return cleaned
	}

	return fmt.Sprintf("%s, %s %s, %d",
		parsed.Weekday(), parsed.Month(), dayOrdinal(parsed.Day()), parsed.Year())
}

// FormatStartTime convierte "19:00" (24h) en "7:00pm EST".
// Texto vacío devuelve "Unknown"; texto no parseable se devuelve tal cual.
func FormatStartTime(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "Unknown"
	}

	parts := strings.Split(cleaned, ":")
	if len(parts) < 2 {
		return cleaned
	}
	hour24, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return cleaned
	}

	suffix := "am"
	if hour24 >= 12 {
		suffix = "pm"
	}
	hour12 := hour24 % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d%s EST", hour12, minute, suffix)
}

// dayOrdinal devuelve el día con su sufijo ordinal (1st, 2nd, 3rd, 11th...).
func dayOrdinal(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return fmt.Sprintf("%dth", day)
	}
	switch day % 10 {
	case 1:
		return fmt.Sprintf("%dst", day)
	case 2:
		return fmt.Sprintf("%dnd", day)
	case 3:
		return fmt.Sprintf("%drd", day)
	default:
		return fmt.Sprintf("%dth", day)
	}
}

// IsChampionMarker interpreta los valores afirmativos habituales del roster.
func IsChampionMarker(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}
