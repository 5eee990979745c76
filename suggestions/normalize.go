package suggestions

import (
	models "github.com/fulld/event-map-go/models"
)

// Normalize maps a raw suggestion row to its canonical shape, filling the
// type tag and structured payload from legacy flat columns when they are
// missing. Runs once, before any business logic touches the row.
func Normalize(s models.Suggestion) models.Suggestion {
	if s.Type == "" {
		if s.Kind == "EDITION" {
			s.Type = models.SuggestionTypeEdition
		} else {
			s.Type = models.SuggestionTypeEvent
		}
	}

	if s.Payload.IsEmpty() {
		s.Payload = models.SuggestionPayload{
			Title:       orDefault(s.SuggestedName, "Untitled Suggestion"),
			Description: s.Notes,
			DateMode:    orDefault(s.DateMode, models.DateModeText),
			DateStart:   s.DateStart,
			DateEnd:     s.DateEnd,
			DateText:    orDefault(s.DateText, "TBA"),
			Lat:         s.Lat,
			Lng:         s.Lng,
			City:        s.Municipio,
			Province:    s.Provincia,
			Community:   s.Comunidad,
		}
	}

	return s
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
