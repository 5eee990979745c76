package suggestions

import (
	"context"
	"log"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/fulld/event-map-go/models"
)

// IntakeInput is a community submission: the structured payload plus an
// optional poster file.
type IntakeInput struct {
	Type         string
	EventID      primitive.ObjectID
	Payload      models.SuggestionPayload
	CreatedBy    primitive.ObjectID
	Poster       multipart.File
	PosterHeader *multipart.FileHeader
}

// Submit creates a pending suggestion, then uploads the poster and patches
// poster_url onto the row. A failed upload does not fail the suggestion; the
// row simply ends up without a poster.
func (p *Pipeline) Submit(ctx context.Context, in IntakeInput) (models.Suggestion, error) {
	legacyKind := "EVENT"
	if in.Type == models.SuggestionTypeEdition {
		legacyKind = "EDITION"
	}

	suggestion := models.Suggestion{
		Type:      in.Type,
		Status:    models.SuggestionPending,
		EventID:   in.EventID,
		Payload:   in.Payload,
		CreatedBy: in.CreatedBy,
		CreatedAt: p.clock(),

		// Mirror legacy columns for older readers.
		Kind:      legacyKind,
		Lat:       in.Payload.Lat,
		Lng:       in.Payload.Lng,
		Municipio: in.Payload.City,
		Provincia: in.Payload.Province,
	}

	id, err := p.gw.CreateSuggestion(ctx, suggestion)
	if err != nil {
		return models.Suggestion{}, err
	}
	suggestion.ID = id

	if in.Poster != nil {
		url, err := p.gw.UploadPoster(ctx, in.Poster, in.PosterHeader)
		if err != nil {
			log.Printf("suggestion %s poster upload failed: %v", id.Hex(), err)
			return suggestion, nil
		}
		if err := p.gw.UpdateSuggestion(ctx, id, bson.M{"poster_url": url}); err != nil {
			log.Printf("suggestion %s poster_url update failed: %v", id.Hex(), err)
			return suggestion, nil
		}
		suggestion.PosterURL = url
	}

	return suggestion, nil
}
