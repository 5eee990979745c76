package lifecycle

import (
	"time"

	models "github.com/fulld/event-map-go/models"
)

// EditionStatus is the temporal state of an edition.
type EditionStatus string

const (
	StatusTBA      EditionStatus = "tba"
	StatusUpcoming EditionStatus = "upcoming"
	StatusLive     EditionStatus = "live"
	StatusPast     EditionStatus = "past"
)

// Today returns the current calendar day as YYYY-MM-DD.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// ClassifyEdition determines the temporal status of an edition:
//   - tba: nil edition, date_mode != date, or no start date
//   - upcoming: today < date_start
//   - past: date_end set and today > date_end
//   - live: otherwise (today within [date_start, date_end], or started with no end)
//
// Compares YYYY-MM-DD strings to avoid timezone shifts. Never fails; malformed
// input degrades to tba.
func ClassifyEdition(ed *models.Edition, today string) EditionStatus {
	if ed == nil || ed.DateMode != models.DateModeDate || ed.DateStart == "" {
		return StatusTBA
	}

	if today < ed.DateStart {
		return StatusUpcoming
	}

	if ed.DateEnd != "" && today > ed.DateEnd {
		return StatusPast
	}

	return StatusLive
}
