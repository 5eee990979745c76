package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/fulld/event-map-go/config"
	controllers "github.com/fulld/event-map-go/controllers"
	gateway "github.com/fulld/event-map-go/gateway"
	middleware "github.com/fulld/event-map-go/middleware"
	store "github.com/fulld/event-map-go/store"
	suggestions "github.com/fulld/event-map-go/suggestions"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, gw gateway.Gateway, st *store.Store, pl *suggestions.Pipeline) {
	// public
	r.GET("/events", controllers.ListPublicEvents(cfg, st))
	r.GET("/events/:id", controllers.GetEvent(cfg, st))
	r.GET("/editions", controllers.ListEditions(cfg, gw))
	r.GET("/categories", controllers.ListCategories(cfg, st))
	r.GET("/groups", controllers.ListGroups(cfg))
	r.POST("/suggestions", controllers.CreateSuggestion(cfg, pl))

	// moderation
	auth := middleware.AuthMiddleware(cfg)

	admin := r.Group("/admin")
	admin.Use(auth, middleware.AdminOnly())
	{
		admin.GET("/events", controllers.ListEvents(cfg, st))
		admin.POST("/events", controllers.CreateEvent(cfg, st))
		admin.PATCH("/events/:id", controllers.UpdateEvent(cfg, st))
		admin.PATCH("/events/:id/status", controllers.UpdateEventStatus(cfg, st))
		admin.DELETE("/events/:id", controllers.DeleteEvent(cfg, st))

		admin.POST("/editions", controllers.CreateEdition(cfg, st))
		admin.PATCH("/editions/:id", controllers.UpdateEdition(cfg, st))
		admin.DELETE("/editions/:id", controllers.DeleteEdition(cfg, st))

		admin.GET("/suggestions", controllers.ListSuggestions(cfg, pl))
		admin.POST("/suggestions/:id/approve", controllers.ApproveSuggestion(cfg, pl, st))
		admin.POST("/suggestions/:id/reject", controllers.RejectSuggestion(cfg, pl))
	}
}
