package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/fulld/event-map-go/config"
	gateway "github.com/fulld/event-map-go/gateway"
	models "github.com/fulld/event-map-go/models"
	store "github.com/fulld/event-map-go/store"
	utils "github.com/fulld/event-map-go/utils"
)

// ---------------- LIST ----------------
func ListEditions(cfg *config.Config, gw gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Query("event_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event_id is required"})
			return
		}

		editions, err := gw.ListEditions(c.Request.Context(), []primitive.ObjectID{eventID})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, editions)
	}
}

// ---------------- CREATE ----------------
func CreateEdition(cfg *config.Config, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		var input struct {
			EventID     string `form:"event_id" binding:"required"`
			DateMode    string `form:"date_mode" binding:"required"`
			DateStart   string `form:"date_start"`
			DateEnd     string `form:"date_end"`
			DateText    string `form:"date_text"`
			Title       string `form:"title"`
			Description string `form:"description"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		eventID, err := primitive.ObjectIDFromHex(input.EventID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		// --- Handle poster upload ---
		var posterURL string
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
				url, err := utils.UploadPoster(file, files[0])
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "poster upload failed", "details": err.Error()})
					return
				}
				posterURL = url
			}
		}

		now := time.Now()
		edition := models.Edition{
			EventID:     eventID,
			DateMode:    input.DateMode,
			DateStart:   input.DateStart,
			DateEnd:     input.DateEnd,
			DateText:    input.DateText,
			Title:       input.Title,
			Description: input.Description,
			PosterURL:   posterURL,
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		id, err := st.CreateEdition(c.Request.Context(), edition)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": id.Hex(), "message": "edition created"})
	}
}

// ---------------- UPDATE ----------------
func UpdateEdition(cfg *config.Config, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		editionID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid edition id"})
			return
		}

		var input struct {
			DateMode    string `form:"date_mode"`
			DateStart   string `form:"date_start"`
			DateEnd     string `form:"date_end"`
			DateText    string `form:"date_text"`
			Title       string `form:"title"`
			Description string `form:"description"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{}
		if input.DateMode != "" {
			update["date_mode"] = input.DateMode
		}
		if input.DateStart != "" {
			update["date_start"] = input.DateStart
		}
		if input.DateEnd != "" {
			update["date_end"] = input.DateEnd
		}
		if input.DateText != "" {
			update["date_text"] = input.DateText
		}
		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Description != "" {
			update["description"] = input.Description
		}

		// --- Handle new poster ---
		form, _ := c.MultipartForm()
		if form != nil {
			if files := form.File["poster"]; len(files) > 0 {
				file, err := files[0].Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open poster"})
					return
				}
				url, err := utils.UploadPoster(file, files[0])
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "poster upload failed", "details": err.Error()})
					return
				}
				update["poster_url"] = url
			}
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		if err := st.UpdateEdition(c.Request.Context(), editionID, update); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "edition updated", "id": editionID.Hex()})
	}
}

// ---------------- DELETE ----------------
func DeleteEdition(cfg *config.Config, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		editionID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid edition id"})
			return
		}

		if err := st.DeleteEdition(c.Request.Context(), editionID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "edition deleted", "id": editionID.Hex()})
	}
}
