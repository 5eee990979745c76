package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/fulld/event-map-go/config"
	models "github.com/fulld/event-map-go/models"
	store "github.com/fulld/event-map-go/store"
	suggestions "github.com/fulld/event-map-go/suggestions"
)

// ---------------- CREATE (public intake) ----------------
func CreateSuggestion(cfg *config.Config, pl *suggestions.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Type        string  `form:"suggestion_type" binding:"required"`
			EventID     string  `form:"event_id"`
			Title       string  `form:"title" binding:"required"`
			Description string  `form:"description"`
			DateMode    string  `form:"date_mode"`
			DateStart   string  `form:"date_start"`
			DateEnd     string  `form:"date_end"`
			DateText    string  `form:"date_text"`
			Notes       string  `form:"notes"`
			Link        string  `form:"link"`
			Name        string  `form:"name"`
			GroupKey    string  `form:"group_key"`
			Category    string  `form:"category"`
			Lat         float64 `form:"lat"`
			Lng         float64 `form:"lng"`
			City        string  `form:"city"`
			Province    string  `form:"province"`
			Community   string  `form:"community"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Type != models.SuggestionTypeEvent && input.Type != models.SuggestionTypeEdition {
			c.JSON(http.StatusBadRequest, gin.H{"error": "suggestion_type must be event or edition"})
			return
		}

		in := suggestions.IntakeInput{
			Type: input.Type,
			Payload: models.SuggestionPayload{
				Title:       input.Title,
				Description: input.Description,
				DateMode:    input.DateMode,
				DateStart:   input.DateStart,
				DateEnd:     input.DateEnd,
				DateText:    input.DateText,
				Notes:       input.Notes,
				Link:        input.Link,
				Name:        input.Name,
				GroupKey:    input.GroupKey,
				Category:    input.Category,
				Lat:         input.Lat,
				Lng:         input.Lng,
				City:        input.City,
				Province:    input.Province,
				Community:   input.Community,
			},
		}

		if input.EventID != "" {
			oid, err := primitive.ObjectIDFromHex(input.EventID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
				return
			}
			in.EventID = oid
		}

		// Submitter is optional: anonymous suggestions are allowed.
		if uid := c.GetString("user_id"); uid != "" {
			if userID, err := primitive.ObjectIDFromHex(uid); err == nil {
				in.CreatedBy = userID
			}
		}

		// --- Optional poster ---
		form, err := c.MultipartForm()
		if err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}
		if form != nil {
			if files := form.File["poster"]; len(files) > 0 {
				file, err := files[0].Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
					return
				}
				defer file.Close()
				in.Poster = file
				in.PosterHeader = files[0]
			}
		}

		suggestion, err := pl.Submit(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, suggestion)
	}
}

// ---------------- LIST (admin inbox) ----------------
func ListSuggestions(cfg *config.Config, pl *suggestions.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.DefaultQuery("status", models.SuggestionPending)

		rows, err := pl.List(c.Request.Context(), status)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, rows)
	}
}

// ---------------- APPROVE ----------------
func ApproveSuggestion(cfg *config.Config, pl *suggestions.Pipeline, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid suggestion id"})
			return
		}

		if err := pl.Approve(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}

		// Pick up the newly created event/edition.
		if err := st.Refresh(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "suggestion approved", "id": id.Hex()})
	}
}

// ---------------- REJECT ----------------
func RejectSuggestion(cfg *config.Config, pl *suggestions.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid suggestion id"})
			return
		}

		if err := pl.Reject(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "suggestion rejected", "id": id.Hex()})
	}
}
