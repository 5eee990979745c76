package suggestions

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	gateway "github.com/fulld/event-map-go/gateway"
	models "github.com/fulld/event-map-go/models"
)

// Pipeline promotes community suggestions into first-class events and
// editions. A suggestion moves pending -> approved or pending -> rejected;
// both end states are terminal.
type Pipeline struct {
	gw    gateway.Gateway
	clock func() time.Time
}

func NewPipeline(gw gateway.Gateway) *Pipeline {
	return &Pipeline{gw: gw, clock: time.Now}
}

// List returns suggestions with the given status, normalized.
func (p *Pipeline) List(ctx context.Context, status string) ([]models.Suggestion, error) {
	rows, err := p.gw.ListSuggestions(ctx, status)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i] = Normalize(rows[i])
	}
	return rows, nil
}

// Approve promotes a pending suggestion: type event creates a new approved
// Event (plus an initial Edition when the payload carries date info), type
// edition creates an Edition under the target event. The suggestion's status
// flips to approved only after creation succeeds, so a failed creation leaves
// it pending and retryable. If the final status write fails after creation,
// the error is surfaced and a retry would create a duplicate; there is no
// idempotency key to guard that.
func (p *Pipeline) Approve(ctx context.Context, id primitive.ObjectID) error {
	row, err := p.gw.GetSuggestion(ctx, id)
	if err != nil {
		return err
	}
	if row.Status != models.SuggestionPending {
		return fmt.Errorf("%w: suggestion %s is already %s", gateway.ErrInconsistentState, id.Hex(), row.Status)
	}

	s := Normalize(row)
	now := p.clock()

	if s.Type == models.SuggestionTypeEvent {
		if err := p.promoteEvent(ctx, s, now); err != nil {
			return err
		}
	} else {
		if err := p.promoteEdition(ctx, s, now); err != nil {
			return err
		}
	}

	return p.gw.UpdateSuggestionStatus(ctx, id, models.SuggestionApproved)
}

func (p *Pipeline) promoteEvent(ctx context.Context, s models.Suggestion, now time.Time) error {
	payload := s.Payload

	name := payload.Name
	if name == "" {
		name = payload.Title
	}
	groupKey := payload.GroupKey
	if groupKey == "" {
		groupKey = "OTHER"
	}
	community := payload.Community
	if community == "" {
		community = payload.Province
	}

	event := models.Event{
		Name:             name,
		GroupKey:         groupKey,
		Coordinates:      models.Coordinates{Lat: payload.Lat, Lng: payload.Lng},
		City:             payload.City,
		Province:         payload.Province,
		Community:        community,
		ShortDescription: payload.Description,
		// Promotion is the approval: bypass the pending default.
		StatusModeration: models.StatusApproved,
		CreatedBy:        s.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if categoryID, err := primitive.ObjectIDFromHex(payload.Category); err == nil {
		event.CategoryID = categoryID
	}

	eventID, err := p.gw.CreateEvent(ctx, event)
	if err != nil {
		return err
	}

	if payload.DateMode == "" {
		return nil
	}
	_, err = p.gw.CreateEdition(ctx, p.editionFrom(s, eventID, now))
	return err
}

func (p *Pipeline) promoteEdition(ctx context.Context, s models.Suggestion, now time.Time) error {
	targetID := s.EventID
	if targetID.IsZero() {
		targetID = s.Payload.EventID
	}
	if targetID.IsZero() {
		return fmt.Errorf("%w: missing event id for edition suggestion %s", gateway.ErrValidation, s.ID.Hex())
	}

	_, err := p.gw.CreateEdition(ctx, p.editionFrom(s, targetID, now))
	return err
}

func (p *Pipeline) editionFrom(s models.Suggestion, eventID primitive.ObjectID, now time.Time) models.Edition {
	return models.Edition{
		EventID:     eventID,
		Title:       s.Payload.Title,
		Description: s.Payload.Description,
		DateMode:    s.Payload.DateMode,
		DateStart:   s.Payload.DateStart,
		DateEnd:     s.Payload.DateEnd,
		DateText:    s.Payload.DateText,
		PosterURL:   s.PosterURL,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Reject flips a pending suggestion to rejected. No other side effects.
func (p *Pipeline) Reject(ctx context.Context, id primitive.ObjectID) error {
	row, err := p.gw.GetSuggestion(ctx, id)
	if err != nil {
		return err
	}
	if row.Status != models.SuggestionPending {
		return fmt.Errorf("%w: suggestion %s is already %s", gateway.ErrInconsistentState, id.Hex(), row.Status)
	}
	return p.gw.UpdateSuggestionStatus(ctx, id, models.SuggestionRejected)
}
