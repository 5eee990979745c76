package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/fulld/event-map-go/config"
	models "github.com/fulld/event-map-go/models"
	store "github.com/fulld/event-map-go/store"
)

// ---------------- LIST ----------------
func ListCategories(cfg *config.Config, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupKey := c.Query("group_key")
		c.JSON(http.StatusOK, st.CategoriesForGroup(groupKey))
	}
}

// ---------------- GROUPS ----------------
func ListGroups(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Groups)
	}
}
