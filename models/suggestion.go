package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Suggestion types and statuses.
const (
	SuggestionTypeEvent   = "event"
	SuggestionTypeEdition = "edition"

	SuggestionPending  = "pending"
	SuggestionApproved = "approved"
	SuggestionRejected = "rejected"
)

// SuggestionPayload carries a superset of Event and Edition fields; which of
// them are used depends on the suggestion type.
type SuggestionPayload struct {
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	DateMode    string `bson:"date_mode,omitempty" json:"date_mode,omitempty"`
	DateStart   string `bson:"date_start,omitempty" json:"date_start,omitempty"`
	DateEnd     string `bson:"date_end,omitempty" json:"date_end,omitempty"`
	DateText    string `bson:"date_text,omitempty" json:"date_text,omitempty"`
	Notes       string `bson:"notes,omitempty" json:"notes,omitempty"`
	Link        string `bson:"link,omitempty" json:"link,omitempty"`

	// Event suggestions only.
	Name      string  `bson:"name,omitempty" json:"name,omitempty"`
	GroupKey  string  `bson:"group_key,omitempty" json:"group_key,omitempty"`
	Category  string  `bson:"category,omitempty" json:"category,omitempty"`
	Lat       float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng       float64 `bson:"lng,omitempty" json:"lng,omitempty"`
	City      string  `bson:"city,omitempty" json:"city,omitempty"`
	Province  string  `bson:"province,omitempty" json:"province,omitempty"`
	Community string  `bson:"community,omitempty" json:"community,omitempty"`

	// Edition suggestions only.
	EventID primitive.ObjectID `bson:"event_id,omitempty" json:"event_id,omitempty"`
}

// IsEmpty reports whether no payload field was filled in, which means the row
// predates the structured payload column.
func (p SuggestionPayload) IsEmpty() bool {
	return p == SuggestionPayload{}
}

type Suggestion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      string             `bson:"suggestion_type,omitempty" json:"suggestion_type"` // event, edition
	Status    string             `bson:"status" json:"status"`
	EventID   primitive.ObjectID `bson:"event_id,omitempty" json:"event_id,omitempty"`
	Payload   SuggestionPayload  `bson:"payload,omitempty" json:"payload"`
	PosterURL string             `bson:"poster_url,omitempty" json:"poster_url,omitempty"`
	CreatedBy primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	// Legacy flat columns, still present on rows written before the payload
	// column existed. Mirrored on insert for older readers.
	Kind          string  `bson:"kind,omitempty" json:"-"` // EVENT, EDITION
	SuggestedName string  `bson:"suggested_name,omitempty" json:"-"`
	Notes         string  `bson:"notes,omitempty" json:"-"`
	DateMode      string  `bson:"date_mode,omitempty" json:"-"`
	DateStart     string  `bson:"date_start,omitempty" json:"-"`
	DateEnd       string  `bson:"date_end,omitempty" json:"-"`
	DateText      string  `bson:"date_text,omitempty" json:"-"`
	Lat           float64 `bson:"lat,omitempty" json:"-"`
	Lng           float64 `bson:"lng,omitempty" json:"-"`
	Municipio     string  `bson:"municipio,omitempty" json:"-"`
	Provincia     string  `bson:"provincia,omitempty" json:"-"`
	Comunidad     string  `bson:"comunidad,omitempty" json:"-"`
}
