package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	gateway "github.com/fulld/event-map-go/gateway"
	lifecycle "github.com/fulld/event-map-go/lifecycle"
	models "github.com/fulld/event-map-go/models"
)

// Store holds the server's in-memory view of events, editions and categories.
// All mutations go through its methods; the gateway is the source of truth
// after any Refresh. Snapshot reads and the refresh swap are guarded by an
// RWMutex so concurrent request handlers are safe; mutations against the same
// entity are not sequenced here and must be serialized by the caller (e.g.
// disable a control while a call is in flight).
type Store struct {
	gw    gateway.Gateway
	today func() string
	now   func() time.Time

	mu         sync.RWMutex
	events     []models.Event
	editions   []models.Edition
	categories []models.Category

	lastRefresh  time.Time
	refreshedDay string

	loading bool
	err     error
}

// New builds a store around the given gateway. State is empty until the first
// Refresh.
func New(gw gateway.Gateway) *Store {
	return &Store{
		gw:    gw,
		today: lifecycle.Today,
		now:   time.Now,
	}
}

// ---------------- SNAPSHOT ACCESS ----------------

func (s *Store) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Event(nil), s.events...)
}

func (s *Store) Editions() []models.Edition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Edition(nil), s.editions...)
}

func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Projection runs the lifecycle projector over the current snapshot.
func (s *Store) Projection() []lifecycle.ProjectedEvent {
	s.mu.RLock()
	events := append([]models.Event(nil), s.events...)
	editions := append([]models.Edition(nil), s.editions...)
	s.mu.RUnlock()
	return lifecycle.Project(events, editions, s.today())
}

// ---------------- REFRESH ----------------

// Refresh reloads all three collections from the gateway and swaps them in
// atomically: on any failure the previous snapshot is retained and the error
// is surfaced.
func (s *Store) Refresh(ctx context.Context) error {
	s.setLoading(true)
	s.setErr(nil)
	defer s.setLoading(false)

	today := s.today()

	categories, err := s.gw.ListCategories(ctx)
	if err != nil {
		s.setErr(err)
		return err
	}

	events, err := s.gw.ListEvents(ctx)
	if err != nil {
		s.setErr(err)
		return err
	}

	eventIDs := make([]primitive.ObjectID, 0, len(events))
	for _, ev := range events {
		eventIDs = append(eventIDs, ev.ID)
	}

	editions, err := s.gw.ListActiveEditions(ctx, eventIDs, today)
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	s.categories = categories
	s.events = events
	s.editions = editions
	s.lastRefresh = s.now()
	s.refreshedDay = today
	s.mu.Unlock()
	return nil
}

// EnsureFresh refreshes the snapshot when it is older than maxAge, was never
// loaded, or was loaded on a previous calendar day. The day check matters:
// the active-editions fetch and the selector both evaluate against the load
// day, so a snapshot kept across midnight drifts.
func (s *Store) EnsureFresh(ctx context.Context, maxAge time.Duration) error {
	s.mu.RLock()
	fresh := !s.lastRefresh.IsZero() &&
		s.now().Sub(s.lastRefresh) < maxAge &&
		s.refreshedDay == s.today()
	s.mu.RUnlock()

	if fresh {
		return nil
	}
	return s.Refresh(ctx)
}

// ---------------- EVENT MUTATIONS ----------------

// CreateEvent validates and persists a new event, with an optional initial
// edition, then refreshes. Pessimistic: local state is untouched on failure.
// The initial edition is validated before anything is written, so an invalid
// edition payload never leaves a half-created event behind.
func (s *Store) CreateEvent(ctx context.Context, event models.Event, initialEdition *models.Edition) (primitive.ObjectID, error) {
	if !models.IsVisibleGroupKey(event.GroupKey) {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid group key %q", gateway.ErrValidation, event.GroupKey)
	}
	if initialEdition != nil {
		if err := validateEditionDates(*initialEdition); err != nil {
			return primitive.NilObjectID, err
		}
	}
	if event.StatusModeration == "" {
		event.StatusModeration = models.StatusPending
	}

	s.setLoading(true)
	s.setErr(nil)
	defer s.setLoading(false)

	id, err := s.gw.CreateEvent(ctx, event)
	if err != nil {
		s.setErr(err)
		return primitive.NilObjectID, err
	}

	if initialEdition != nil {
		edition := *initialEdition
		edition.EventID = id
		if _, err := s.gw.CreateEdition(ctx, edition); err != nil {
			s.setErr(err)
			return id, err
		}
	}

	if err := s.Refresh(ctx); err != nil {
		return id, err
	}
	return id, nil
}

// UpdateEvent is pessimistic: gateway first, then a full refresh.
func (s *Store) UpdateEvent(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	s.setLoading(true)
	s.setErr(nil)
	defer s.setLoading(false)

	if err := s.gw.UpdateEvent(ctx, id, update); err != nil {
		s.setErr(err)
		return err
	}
	return s.Refresh(ctx)
}

// DeleteEvent removes an event and all its editions. Editions go first so a
// failure never leaves orphaned rows: if the edition step fails the event is
// kept and the error surfaced.
func (s *Store) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	s.setLoading(true)
	s.setErr(nil)
	defer s.setLoading(false)

	if err := s.gw.DeleteEditionsByEvent(ctx, id); err != nil {
		s.setErr(err)
		return err
	}
	if err := s.gw.DeleteEvent(ctx, id); err != nil {
		s.setErr(err)
		return err
	}
	return s.Refresh(ctx)
}

// UpdateEventStatus flips an event's moderation status. This is the one
// optimistic mutation: the local event is updated immediately, and rolled
// back to its pre-call status if the gateway write fails.
func (s *Store) UpdateEventStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.events {
		if s.events[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return fmt.Errorf("%w: event %s", gateway.ErrNotFound, id.Hex())
	}
	previous := s.events[idx].StatusModeration
	s.events[idx].StatusModeration = status
	s.mu.Unlock()

	if err := s.gw.UpdateEvent(ctx, id, bson.M{"status_moderation": status}); err != nil {
		// Rollback, by id: a concurrent refresh may have reordered the slice.
		s.mu.Lock()
		for i := range s.events {
			if s.events[i].ID == id {
				s.events[i].StatusModeration = previous
				break
			}
		}
		s.err = err
		s.mu.Unlock()
		return err
	}
	return nil
}

// ---------------- EDITION MUTATIONS ----------------

func validateEditionDates(edition models.Edition) error {
	if edition.DateMode == models.DateModeDate && edition.DateStart == "" {
		return fmt.Errorf("%w: date edition requires a start date", gateway.ErrValidation)
	}
	if edition.DateEnd != "" && edition.DateEnd < edition.DateStart {
		return fmt.Errorf("%w: end date precedes start date", gateway.ErrValidation)
	}
	return nil
}

func (s *Store) CreateEdition(ctx context.Context, edition models.Edition) (primitive.ObjectID, error) {
	if edition.EventID.IsZero() {
		return primitive.NilObjectID, fmt.Errorf("%w: edition requires an event id", gateway.ErrValidation)
	}
	if err := validateEditionDates(edition); err != nil {
		return primitive.NilObjectID, err
	}

	s.setLoading(true)
	s.setErr(nil)
	defer s.setLoading(false)

	id, err := s.gw.CreateEdition(ctx, edition)
	if err != nil {
		s.setErr(err)
		return primitive.NilObjectID, err
	}
	if err := s.Refresh(ctx); err != nil {
		return id, err
	}
	return id, nil
}

func (s *Store) UpdateEdition(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	s.setLoading(true)
	s.setErr(nil)
	defer s.setLoading(false)

	if err := s.gw.UpdateEdition(ctx, id, update); err != nil {
		s.setErr(err)
		return err
	}
	return s.Refresh(ctx)
}

func (s *Store) DeleteEdition(ctx context.Context, id primitive.ObjectID) error {
	s.setLoading(true)
	s.setErr(nil)
	defer s.setLoading(false)

	if err := s.gw.DeleteEdition(ctx, id); err != nil {
		s.setErr(err)
		return err
	}
	return s.Refresh(ctx)
}

// ---------------- FILTERS ----------------

// FilteredEvents applies group and category filters to the snapshot. Filters
// are per-request arguments, never stored: one caller's view must not leak
// into another's. Empty group key / zero category id mean no filter.
func (s *Store) FilteredEvents(groupKey string, categoryID primitive.ObjectID) []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]models.Event, 0, len(s.events))
	for _, ev := range s.events {
		if groupKey != "" && ev.GroupKey != groupKey {
			continue
		}
		if !categoryID.IsZero() && ev.CategoryID != categoryID {
			continue
		}
		filtered = append(filtered, ev)
	}
	return filtered
}

// CategoriesForGroup returns the active categories of a group, in sort order.
func (s *Store) CategoriesForGroup(groupKey string) []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if !c.Active() {
			continue
		}
		if groupKey != "" && c.GroupKey != groupKey {
			continue
		}
		categories = append(categories, c)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].SortOrderOrDefault() < categories[j].SortOrderOrDefault()
	})
	return categories
}
