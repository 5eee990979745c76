package gateway

import (
	"context"
	"errors"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/fulld/event-map-go/models"
)

// Error kinds surfaced by the gateway. Callers match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrValidation        = errors.New("validation failed")
	ErrUnavailable       = errors.New("gateway unavailable")
	ErrInconsistentState = errors.New("inconsistent state")
)

// Gateway is the persistence collaborator. Durable storage is the source of
// truth after any refresh; the store and pipeline only hold session copies.
type Gateway interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListEditions(ctx context.Context, eventIDs []primitive.ObjectID) ([]models.Edition, error)
	// ListActiveEditions narrows to editions still relevant for the map view:
	// date-mode editions starting today or later, plus all non-date editions
	// (needed for the selector's fallback).
	ListActiveEditions(ctx context.Context, eventIDs []primitive.ObjectID, today string) ([]models.Edition, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateEvent(ctx context.Context, event models.Event) (primitive.ObjectID, error)
	UpdateEvent(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error

	CreateEdition(ctx context.Context, edition models.Edition) (primitive.ObjectID, error)
	UpdateEdition(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteEdition(ctx context.Context, id primitive.ObjectID) error
	DeleteEditionsByEvent(ctx context.Context, eventID primitive.ObjectID) error

	ListSuggestions(ctx context.Context, status string) ([]models.Suggestion, error)
	GetSuggestion(ctx context.Context, id primitive.ObjectID) (models.Suggestion, error)
	CreateSuggestion(ctx context.Context, suggestion models.Suggestion) (primitive.ObjectID, error)
	UpdateSuggestion(ctx context.Context, id primitive.ObjectID, update bson.M) error
	UpdateSuggestionStatus(ctx context.Context, id primitive.ObjectID, status string) error

	UploadPoster(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
}
