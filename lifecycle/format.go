package lifecycle

import (
	"fmt"
	"time"

	models "github.com/fulld/event-map-go/models"
)

var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// FormatEventDate renders an edition's date for display, Spanish style:
// "12 ene 2026", "12 – 14 ene 2026", "30 ene – 2 feb 2026". Editions without
// usable dates render as their free text or "TBA".
func FormatEventDate(ed *models.Edition) string {
	if ed == nil {
		return "TBA"
	}

	if ed.DateMode == models.DateModeText {
		if ed.DateText != "" {
			return ed.DateText
		}
		return "TBA"
	}

	if ed.DateStart == "" {
		return "TBA"
	}

	start, err := time.Parse("2006-01-02", ed.DateStart)
	if err != nil {
		return "TBA"
	}

	var end time.Time
	if ed.DateEnd != "" {
		if parsed, err := time.Parse("2006-01-02", ed.DateEnd); err == nil {
			end = parsed
		}
	}

	if end.IsZero() || end.Equal(start) {
		return fmt.Sprintf("%d %s %d", start.Day(), spanishMonths[start.Month()-1], start.Year())
	}

	// Same month range
	if start.Month() == end.Month() && start.Year() == end.Year() {
		return fmt.Sprintf("%d – %d %s %d", start.Day(), end.Day(), spanishMonths[start.Month()-1], start.Year())
	}

	// Different month, same year
	if start.Year() == end.Year() {
		return fmt.Sprintf("%d %s – %d %s %d",
			start.Day(), spanishMonths[start.Month()-1],
			end.Day(), spanishMonths[end.Month()-1], start.Year())
	}

	// Different year
	return fmt.Sprintf("%d %s %d – %d %s %d",
		start.Day(), spanishMonths[start.Month()-1], start.Year(),
		end.Day(), spanishMonths[end.Month()-1], end.Year())
}
