package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Moderation statuses. Only approved events are visible to the public.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusArchived = "archived"
)

// Coordinates struct for latitude and longitude
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Event struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Slug             string             `bson:"slug,omitempty" json:"slug,omitempty"`
	GroupKey         string             `bson:"group_key" json:"group_key"` // FULLDFIESTA, FULLDMOTOR
	CategoryID       primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	EventType        string             `bson:"event_type,omitempty" json:"event_type,omitempty"` // FIJO, ITINERANTE
	Coordinates      Coordinates        `bson:"coordinates" json:"coordinates"`
	City             string             `bson:"city,omitempty" json:"city,omitempty"`
	Province         string             `bson:"province,omitempty" json:"province,omitempty"`
	Community        string             `bson:"community,omitempty" json:"community,omitempty"`
	Venue            string             `bson:"venue,omitempty" json:"venue,omitempty"`
	ShortDescription string             `bson:"short_description,omitempty" json:"short_description,omitempty"`
	StatusModeration string             `bson:"status_moderation" json:"status_moderation"`
	ImageURL         string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedBy        primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}
