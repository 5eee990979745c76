package lifecycle

import (
	"testing"

	models "github.com/fulld/event-map-go/models"
)

func TestClassifyEditionDegradesToTBA(t *testing.T) {
	today := "2026-03-15"

	cases := []struct {
		name    string
		edition *models.Edition
	}{
		{"nil edition", nil},
		{"text mode", &models.Edition{DateMode: models.DateModeText, DateText: "Verano 2026"}},
		{"tbd mode", &models.Edition{DateMode: models.DateModeTBD}},
		{"date mode without start", &models.Edition{DateMode: models.DateModeDate}},
		{"unknown mode", &models.Edition{DateMode: "weird", DateStart: "2026-03-20"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyEdition(tc.edition, today); got != StatusTBA {
				t.Fatalf("ClassifyEdition = %v, want %v", got, StatusTBA)
			}
		})
	}
}

func TestClassifyEditionDateRanges(t *testing.T) {
	today := "2026-03-15"

	cases := []struct {
		name  string
		start string
		end   string
		want  EditionStatus
	}{
		{"starts tomorrow", "2026-03-16", "", StatusUpcoming},
		{"starts next year", "2027-01-01", "2027-01-03", StatusUpcoming},
		{"started yesterday no end", "2026-03-14", "", StatusLive},
		{"starts today", "2026-03-15", "", StatusLive},
		{"inside range", "2026-03-10", "2026-03-20", StatusLive},
		{"ends today", "2026-03-13", "2026-03-15", StatusLive},
		{"ended yesterday", "2026-03-10", "2026-03-14", StatusPast},
		{"long over", "2020-01-01", "2020-01-02", StatusPast},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ed := &models.Edition{DateMode: models.DateModeDate, DateStart: tc.start, DateEnd: tc.end}
			if got := ClassifyEdition(ed, today); got != tc.want {
				t.Fatalf("ClassifyEdition(%s..%s) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
