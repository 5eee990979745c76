package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupKey  string             `bson:"group_key" json:"group_key"`
	Key       string             `bson:"key" json:"key"`
	Label     string             `bson:"label" json:"label"`
	SortOrder *int               `bson:"sort_order,omitempty" json:"sort_order,omitempty"`
	IsActive  *bool              `bson:"is_active,omitempty" json:"is_active,omitempty"`
}

// SortOrderOrDefault treats a missing sort order as last.
func (c Category) SortOrderOrDefault() int {
	if c.SortOrder == nil {
		return 999
	}
	return *c.SortOrder
}

// Active treats a missing flag as active.
func (c Category) Active() bool {
	return c.IsActive == nil || *c.IsActive
}
