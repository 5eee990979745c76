package lifecycle

import (
	models "github.com/fulld/event-map-go/models"
)

// ActiveEdition picks the edition to display for an event:
//  1. Prefer date-mode editions with date_start >= today; among those, the
//     nearest start wins (first encountered on a tie).
//  2. Fallback: the most recently created edition, regardless of mode.
//
// Returns nil only when editions is empty.
func ActiveEdition(editions []models.Edition, today string) *models.Edition {
	if len(editions) == 0 {
		return nil
	}

	// --- Phase 1: nearest upcoming date edition ---
	var nearest *models.Edition
	for i := range editions {
		ed := &editions[i]
		if ed.DateMode != models.DateModeDate || ed.DateStart == "" || ed.DateStart < today {
			continue
		}
		if nearest == nil || ed.DateStart < nearest.DateStart {
			nearest = ed
		}
	}
	if nearest != nil {
		return nearest
	}

	// --- Phase 2: most recently created, any mode ---
	latest := &editions[0]
	for i := range editions {
		if editions[i].CreatedAt.After(latest.CreatedAt) {
			latest = &editions[i]
		}
	}
	return latest
}
