package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Date modes for an edition.
const (
	DateModeDate = "date"
	DateModeText = "text"
	DateModeTBD  = "tbd"
)

// Edition is one concrete occurrence of an Event. Date fields are kept as
// YYYY-MM-DD strings so all lifecycle comparisons stay on calendar-day
// granularity regardless of the server timezone.
type Edition struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID     primitive.ObjectID `bson:"event_id" json:"event_id"`
	DateMode    string             `bson:"date_mode" json:"date_mode"` // date, text, tbd
	DateStart   string             `bson:"date_start,omitempty" json:"date_start,omitempty"`
	DateEnd     string             `bson:"date_end,omitempty" json:"date_end,omitempty"`
	DateText    string             `bson:"date_text,omitempty" json:"date_text,omitempty"`
	Title       string             `bson:"title,omitempty" json:"title,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	PosterURL   string             `bson:"poster_url,omitempty" json:"poster_url,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
