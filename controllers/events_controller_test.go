package controllers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/fulld/event-map-go/config"
	gateway "github.com/fulld/event-map-go/gateway"
	models "github.com/fulld/event-map-go/models"
	store "github.com/fulld/event-map-go/store"
)

// listGateway serves canned collections; mutations are not exercised here.
type listGateway struct {
	events     []models.Event
	editions   []models.Edition
	categories []models.Category
}

func (g *listGateway) ListEvents(ctx context.Context) ([]models.Event, error) {
	return g.events, nil
}

func (g *listGateway) ListEditions(ctx context.Context, eventIDs []primitive.ObjectID) ([]models.Edition, error) {
	return g.editions, nil
}

func (g *listGateway) ListActiveEditions(ctx context.Context, eventIDs []primitive.ObjectID, today string) ([]models.Edition, error) {
	return g.editions, nil
}

func (g *listGateway) ListCategories(ctx context.Context) ([]models.Category, error) {
	return g.categories, nil
}

func (g *listGateway) CreateEvent(ctx context.Context, event models.Event) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (g *listGateway) UpdateEvent(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	return nil
}

func (g *listGateway) DeleteEvent(ctx context.Context, id primitive.ObjectID) error { return nil }

func (g *listGateway) CreateEdition(ctx context.Context, edition models.Edition) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (g *listGateway) UpdateEdition(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	return nil
}

func (g *listGateway) DeleteEdition(ctx context.Context, id primitive.ObjectID) error { return nil }

func (g *listGateway) DeleteEditionsByEvent(ctx context.Context, eventID primitive.ObjectID) error {
	return nil
}

func (g *listGateway) ListSuggestions(ctx context.Context, status string) ([]models.Suggestion, error) {
	return nil, nil
}

func (g *listGateway) GetSuggestion(ctx context.Context, id primitive.ObjectID) (models.Suggestion, error) {
	return models.Suggestion{}, gateway.ErrNotFound
}

func (g *listGateway) CreateSuggestion(ctx context.Context, s models.Suggestion) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (g *listGateway) UpdateSuggestion(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	return nil
}

func (g *listGateway) UpdateSuggestionStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return nil
}

func (g *listGateway) UploadPoster(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	return "https://example.com/poster.webp", nil
}

func newPublicRouter(t *testing.T, gw gateway.Gateway) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(gw)
	if err := st.Refresh(context.Background()); err != nil {
		t.Fatalf("warm refresh: %v", err)
	}

	cfg := &config.Config{}
	r := gin.New()
	r.GET("/events", ListPublicEvents(cfg, st))
	r.GET("/events/:id", GetEvent(cfg, st))
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodeEvents(t *testing.T, w *httptest.ResponseRecorder) []models.Event {
	t.Helper()
	var events []models.Event
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, w.Body.String())
	}
	return events
}

func TestGetEventHidesUnapprovedFromPublic(t *testing.T) {
	approved := models.Event{ID: primitive.NewObjectID(), Name: "feria", GroupKey: "FULLDFIESTA", StatusModeration: models.StatusApproved}
	pending := models.Event{ID: primitive.NewObjectID(), Name: "borrador", GroupKey: "FULLDFIESTA", StatusModeration: models.StatusPending}
	rejected := models.Event{ID: primitive.NewObjectID(), Name: "rechazado", GroupKey: "FULLDFIESTA", StatusModeration: models.StatusRejected}

	r := newPublicRouter(t, &listGateway{events: []models.Event{approved, pending, rejected}})

	if w := doGet(t, r, "/events/"+approved.ID.Hex()); w.Code != http.StatusOK {
		t.Fatalf("approved event status = %d, want %d", w.Code, http.StatusOK)
	}

	// Moderation drafts must look exactly like missing events, not forbidden
	// ones, so their existence is not disclosed.
	for _, ev := range []models.Event{pending, rejected} {
		w := doGet(t, r, "/events/"+ev.ID.Hex())
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s event status = %d, want %d", ev.StatusModeration, w.Code, http.StatusNotFound)
		}
	}
}

func TestListPublicEventsFilterScopedToRequest(t *testing.T) {
	fiesta := models.Event{ID: primitive.NewObjectID(), Name: "feria", GroupKey: "FULLDFIESTA", StatusModeration: models.StatusApproved}
	motor := models.Event{ID: primitive.NewObjectID(), Name: "rally", GroupKey: "FULLDMOTOR", StatusModeration: models.StatusApproved}

	r := newPublicRouter(t, &listGateway{events: []models.Event{fiesta, motor}})

	if got := decodeEvents(t, doGet(t, r, "/events")); len(got) != 2 {
		t.Fatalf("unfiltered events = %d, want 2", len(got))
	}

	filtered := decodeEvents(t, doGet(t, r, "/events?group_key=FULLDMOTOR"))
	if len(filtered) != 1 || filtered[0].ID != motor.ID {
		t.Fatalf("group-filtered events = %v, want just the motor event", filtered)
	}

	// A later unfiltered request must see everything again: one client's
	// group filter cannot narrow another client's response.
	if got := decodeEvents(t, doGet(t, r, "/events")); len(got) != 2 {
		t.Fatalf("unfiltered events after filtered request = %d, want 2", len(got))
	}
}

func TestListPublicEventsOnlyApproved(t *testing.T) {
	approved := models.Event{ID: primitive.NewObjectID(), GroupKey: "FULLDFIESTA", StatusModeration: models.StatusApproved}
	pending := models.Event{ID: primitive.NewObjectID(), GroupKey: "FULLDFIESTA", StatusModeration: models.StatusPending}

	r := newPublicRouter(t, &listGateway{events: []models.Event{approved, pending}})

	got := decodeEvents(t, doGet(t, r, "/events"))
	if len(got) != 1 || got[0].ID != approved.ID {
		t.Fatalf("public list = %v, want only the approved event", got)
	}
}
