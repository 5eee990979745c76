package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/fulld/event-map-go/config"
	lifecycle "github.com/fulld/event-map-go/lifecycle"
	models "github.com/fulld/event-map-go/models"
	store "github.com/fulld/event-map-go/store"
	utils "github.com/fulld/event-map-go/utils"
)

// Public reads serve the in-memory snapshot; it is reloaded when older than
// this, or when the calendar day has rolled over since it was loaded.
const publicSnapshotTTL = 5 * time.Minute

// ---------------- LIST (public) ----------------
func ListPublicEvents(cfg *config.Config, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.EnsureFresh(c.Request.Context(), publicSnapshotTTL); err != nil && len(st.Events()) == 0 {
			respondError(c, err)
			return
		}

		// Filters come straight from the query string, per request.
		groupKey := c.Query("group_key")
		categoryID := primitive.NilObjectID
		if cat := c.Query("category_id"); cat != "" {
			if oid, err := primitive.ObjectIDFromHex(cat); err == nil {
				categoryID = oid
			}
		}

		allowed := make(map[primitive.ObjectID]bool)
		for _, ev := range st.FilteredEvents(groupKey, categoryID) {
			allowed[ev.ID] = true
		}

		// Only approved events are visible to the public.
		projected := st.Projection()
		visible := make([]lifecycle.ProjectedEvent, 0, len(projected))
		var latest models.Event
		for _, pe := range projected {
			if pe.StatusModeration != models.StatusApproved || !allowed[pe.ID] {
				continue
			}
			if pe.UpdatedAt.After(latest.UpdatedAt) {
				latest = pe.Event
			}
			visible = append(visible, pe)
		}

		if len(visible) == 0 {
			c.JSON(http.StatusOK, visible)
			return
		}

		// --- Generate ETag from latest event ---
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, visible)
	}
}

// ---------------- LIST (admin) ----------------
func ListEvents(cfg *config.Config, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.Refresh(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, st.Projection())
	}
}

// ---------------- GET ----------------
func GetEvent(cfg *config.Config, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		if err := st.EnsureFresh(c.Request.Context(), publicSnapshotTTL); err != nil && len(st.Events()) == 0 {
			respondError(c, err)
			return
		}

		for _, pe := range st.Projection() {
			if pe.ID != eventID {
				continue
			}

			// Unapproved events do not exist as far as the public is concerned.
			if pe.StatusModeration != models.StatusApproved {
				break
			}

			etag := utils.GenerateETag(pe.ID, pe.UpdatedAt)
			if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
				c.Status(http.StatusNotModified)
				return
			}
			c.Header("ETag", etag)

			c.JSON(http.StatusOK, pe)
			return
		}

		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	}
}

// ---------------- CREATE ----------------
func CreateEvent(cfg *config.Config, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		// --- Bind form fields ---
		var input struct {
			Name             string  `form:"name" binding:"required"`
			GroupKey         string  `form:"group_key" binding:"required"`
			CategoryID       string  `form:"category_id"`
			EventType        string  `form:"event_type"`
			Lat              float64 `form:"lat" binding:"required"`
			Lng              float64 `form:"lng" binding:"required"`
			City             string  `form:"city"`
			Province         string  `form:"province"`
			Community        string  `form:"community"`
			Venue            string  `form:"venue"`
			ShortDescription string  `form:"short_description"`
			Status           string  `form:"status_moderation"`

			// Optional initial edition
			DateMode     string `form:"date_mode"`
			DateStart    string `form:"date_start"`
			DateEnd      string `form:"date_end"`
			DateText     string `form:"date_text"`
			EditionTitle string `form:"edition_title"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// --- Handle cover image upload ---
		var imageURL string
		form, err := c.MultipartForm()
		if err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}
		if form != nil {
			if files := form.File["image"]; len(files) > 0 {
				file, err := files[0].Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
					return
				}
				url, err := utils.UploadEventImage(file, files[0])
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
					return
				}
				imageURL = url
			}
		}

		now := time.Now()
		event := models.Event{
			Name:             input.Name,
			GroupKey:         input.GroupKey,
			EventType:        input.EventType,
			Coordinates:      models.Coordinates{Lat: input.Lat, Lng: input.Lng},
			City:             input.City,
			Province:         input.Province,
			Community:        input.Community,
			Venue:            input.Venue,
			ShortDescription: input.ShortDescription,
			StatusModeration: input.Status,
			ImageURL:         imageURL,
			CreatedBy:        userID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if input.CategoryID != "" {
			if oid, err := primitive.ObjectIDFromHex(input.CategoryID); err == nil {
				event.CategoryID = oid
			}
		}

		var initialEdition *models.Edition
		if input.DateMode != "" {
			initialEdition = &models.Edition{
				DateMode:  input.DateMode,
				DateStart: input.DateStart,
				DateEnd:   input.DateEnd,
				DateText:  input.DateText,
				Title:     input.EditionTitle,
				CreatedBy: userID,
				CreatedAt: now,
				UpdatedAt: now,
			}
		}

		id, err := st.CreateEvent(c.Request.Context(), event, initialEdition)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": id.Hex(), "message": "event created"})
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(cfg *config.Config, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var input struct {
			Name             string   `form:"name"`
			GroupKey         string   `form:"group_key"`
			CategoryID       string   `form:"category_id"`
			EventType        string   `form:"event_type"`
			Lat              *float64 `form:"lat"`
			Lng              *float64 `form:"lng"`
			City             string   `form:"city"`
			Province         string   `form:"province"`
			Community        string   `form:"community"`
			Venue            string   `form:"venue"`
			ShortDescription string   `form:"short_description"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// --- Prepare update document ---
		update := bson.M{}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.GroupKey != "" {
			if !models.IsVisibleGroupKey(input.GroupKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group key"})
				return
			}
			update["group_key"] = input.GroupKey
		}
		if input.CategoryID != "" {
			if oid, err := primitive.ObjectIDFromHex(input.CategoryID); err == nil {
				update["category_id"] = oid
			}
		}
		if input.EventType != "" {
			update["event_type"] = input.EventType
		}
		if input.Lat != nil && input.Lng != nil {
			update["coordinates"] = models.Coordinates{Lat: *input.Lat, Lng: *input.Lng}
		}
		if input.City != "" {
			update["city"] = input.City
		}
		if input.Province != "" {
			update["province"] = input.Province
		}
		if input.Community != "" {
			update["community"] = input.Community
		}
		if input.Venue != "" {
			update["venue"] = input.Venue
		}
		if input.ShortDescription != "" {
			update["short_description"] = input.ShortDescription
		}

		// --- Handle new cover image ---
		form, _ := c.MultipartForm()
		if form != nil {
			if files := form.File["image"]; len(files) > 0 {
				file, err := files[0].Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open image"})
					return
				}
				url, err := utils.UploadEventImage(file, files[0])
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
					return
				}
				update["image_url"] = url
			}
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		if err := st.UpdateEvent(c.Request.Context(), eventID, update); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "event updated", "id": eventID.Hex()})
	}
}

// ---------------- UPDATE STATUS ----------------
func UpdateEventStatus(cfg *config.Config, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		switch input.Status {
		case models.StatusPending, models.StatusApproved, models.StatusRejected, models.StatusArchived:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		if err := st.UpdateEventStatus(c.Request.Context(), eventID, input.Status); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "status updated", "id": eventID.Hex(), "status": input.Status})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(cfg *config.Config, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		// Keep the image URL around for cleanup after the delete succeeds.
		var imageURL string
		for _, ev := range st.Events() {
			if ev.ID == eventID {
				imageURL = ev.ImageURL
				break
			}
		}

		if err := st.DeleteEvent(c.Request.Context(), eventID); err != nil {
			respondError(c, err)
			return
		}

		if imageURL != "" {
			utils.DeleteImage(imageURL)
		}

		c.JSON(http.StatusOK, gin.H{"message": "event deleted", "id": eventID.Hex()})
	}
}
