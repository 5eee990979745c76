package lifecycle

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/fulld/event-map-go/models"
)

// ProjectedEvent is the read model handed to map/sidebar consumers: the event
// itself plus the selected edition and derived lifecycle flags.
type ProjectedEvent struct {
	models.Event

	// ActiveEdition is the Selector's pick, nil when the event has no editions.
	ActiveEdition *models.Edition `json:"active_edition,omitempty"`

	// EditionStatus is the classification of the selected edition, for badges.
	EditionStatus EditionStatus `json:"edition_status"`

	// DateDisplay is the selected edition's date rendered for display,
	// "TBA" when there is none.
	DateDisplay string `json:"date_display"`

	// HasActiveEdition is true when ANY edition of the event classifies as
	// upcoming or live, not just the selected one. The fallback rule can pick
	// a past or text edition while another one is still running; filtering
	// and sorting consumers must use this flag, not EditionStatus.
	HasActiveEdition bool `json:"has_active_edition"`
}

// Project joins events with their editions into the enriched read model.
// Pure; recomputed on every refresh.
func Project(events []models.Event, editions []models.Edition, today string) []ProjectedEvent {
	byEvent := make(map[primitive.ObjectID][]models.Edition, len(events))
	for _, ed := range editions {
		byEvent[ed.EventID] = append(byEvent[ed.EventID], ed)
	}

	projected := make([]ProjectedEvent, 0, len(events))
	for _, ev := range events {
		eventEditions := byEvent[ev.ID]
		selected := ActiveEdition(eventEditions, today)

		active := false
		for i := range eventEditions {
			status := ClassifyEdition(&eventEditions[i], today)
			if status == StatusUpcoming || status == StatusLive {
				active = true
				break
			}
		}

		projected = append(projected, ProjectedEvent{
			Event:            ev,
			ActiveEdition:    selected,
			EditionStatus:    ClassifyEdition(selected, today),
			DateDisplay:      FormatEventDate(selected),
			HasActiveEdition: active,
		})
	}
	return projected
}
