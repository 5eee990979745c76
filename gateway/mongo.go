package gateway

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/fulld/event-map-go/models"
	utils "github.com/fulld/event-map-go/utils"
)

// Mongo implements Gateway against the application's MongoDB database.
type Mongo struct {
	Client *mongo.Client
	DBName string
}

func NewMongo(client *mongo.Client, dbName string) *Mongo {
	return &Mongo{Client: client, DBName: dbName}
}

func (m *Mongo) col(name string) *mongo.Collection {
	return m.Client.Database(m.DBName).Collection(name)
}

// mapErr translates driver failures into the gateway error kinds.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && (cmdErr.Code == 13 || cmdErr.Code == 18) {
		// 13 Unauthorized, 18 AuthenticationFailed
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// ---------------- EVENTS ----------------

func (m *Mongo) ListEvents(ctx context.Context) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"group_key": bson.M{"$in": models.VisibleGroupKeys()}}
	cursor, err := m.col("events").Find(ctx, filter)
	if err != nil {
		return nil, mapErr(err)
	}

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, mapErr(err)
	}
	return events, nil
}

func (m *Mongo) CreateEvent(ctx context.Context, event models.Event) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if _, err := m.col("events").InsertOne(ctx, event); err != nil {
		return primitive.NilObjectID, mapErr(err)
	}
	return event.ID, nil
}

func (m *Mongo) UpdateEvent(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update["updated_at"] = time.Now()
	res, err := m.col("events").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: event %s", ErrNotFound, id.Hex())
	}
	return nil
}

func (m *Mongo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := m.col("events").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: event %s", ErrNotFound, id.Hex())
	}
	return nil
}

// ---------------- EDITIONS ----------------

func (m *Mongo) ListEditions(ctx context.Context, eventIDs []primitive.ObjectID) ([]models.Edition, error) {
	if len(eventIDs) == 0 {
		return []models.Edition{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"event_id": bson.M{"$in": eventIDs}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.col("editions").Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(err)
	}

	var editions []models.Edition
	if err := cursor.All(ctx, &editions); err != nil {
		return nil, mapErr(err)
	}
	return editions, nil
}

func (m *Mongo) ListActiveEditions(ctx context.Context, eventIDs []primitive.ObjectID, today string) ([]models.Edition, error) {
	if len(eventIDs) == 0 {
		return []models.Edition{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Future/current date editions plus every non-date edition, so the
	// selector's fallback still has candidates. Avoids downloading thousands
	// of past editions for the global map view.
	filter := bson.M{
		"event_id": bson.M{"$in": eventIDs},
		"$or": []bson.M{
			{"date_start": bson.M{"$gte": today}},
			{"date_mode": bson.M{"$ne": models.DateModeDate}},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.col("editions").Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(err)
	}

	var editions []models.Edition
	if err := cursor.All(ctx, &editions); err != nil {
		return nil, mapErr(err)
	}
	return editions, nil
}

func (m *Mongo) CreateEdition(ctx context.Context, edition models.Edition) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if edition.ID.IsZero() {
		edition.ID = primitive.NewObjectID()
	}
	if _, err := m.col("editions").InsertOne(ctx, edition); err != nil {
		return primitive.NilObjectID, mapErr(err)
	}
	return edition.ID, nil
}

func (m *Mongo) UpdateEdition(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update["updated_at"] = time.Now()
	res, err := m.col("editions").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: edition %s", ErrNotFound, id.Hex())
	}
	return nil
}

func (m *Mongo) DeleteEdition(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := m.col("editions").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: edition %s", ErrNotFound, id.Hex())
	}
	return nil
}

func (m *Mongo) DeleteEditionsByEvent(ctx context.Context, eventID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.col("editions").DeleteMany(ctx, bson.M{"event_id": eventID})
	return mapErr(err)
}

// ---------------- CATEGORIES ----------------

func (m *Mongo) ListCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"group_key": bson.M{"$in": models.VisibleGroupKeys()}}
	opts := options.Find().SetSort(bson.D{
		{Key: "group_key", Value: 1},
		{Key: "sort_order", Value: 1},
	})
	cursor, err := m.col("categories").Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(err)
	}

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, mapErr(err)
	}
	return categories, nil
}

// ---------------- SUGGESTIONS ----------------

func (m *Mongo) ListSuggestions(ctx context.Context, status string) ([]models.Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.col("suggestions").Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(err)
	}

	var suggestions []models.Suggestion
	if err := cursor.All(ctx, &suggestions); err != nil {
		return nil, mapErr(err)
	}
	return suggestions, nil
}

func (m *Mongo) GetSuggestion(ctx context.Context, id primitive.ObjectID) (models.Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var suggestion models.Suggestion
	err := m.col("suggestions").FindOne(ctx, bson.M{"_id": id}).Decode(&suggestion)
	if err != nil {
		return models.Suggestion{}, mapErr(err)
	}
	return suggestion, nil
}

func (m *Mongo) CreateSuggestion(ctx context.Context, suggestion models.Suggestion) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if suggestion.ID.IsZero() {
		suggestion.ID = primitive.NewObjectID()
	}
	if _, err := m.col("suggestions").InsertOne(ctx, suggestion); err != nil {
		return primitive.NilObjectID, mapErr(err)
	}
	return suggestion.ID, nil
}

func (m *Mongo) UpdateSuggestion(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := m.col("suggestions").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: suggestion %s", ErrNotFound, id.Hex())
	}
	return nil
}

func (m *Mongo) UpdateSuggestionStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return m.UpdateSuggestion(ctx, id, bson.M{"status": status})
}

// ---------------- POSTERS ----------------

func (m *Mongo) UploadPoster(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	url, err := utils.UploadPoster(file, header)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return url, nil
}
