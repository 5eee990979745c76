package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	config "github.com/fulld/event-map-go/config"
	gateway "github.com/fulld/event-map-go/gateway"
	routes "github.com/fulld/event-map-go/routes"
	store "github.com/fulld/event-map-go/store"
	suggestions "github.com/fulld/event-map-go/suggestions"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gw := gateway.NewMongo(cfg.MongoClient, cfg.DBName)
	st := store.New(gw)
	pl := suggestions.NewPipeline(gw)

	// Warm the snapshot; a failure here is not fatal, the first request
	// refresh will retry.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := st.Refresh(ctx); err != nil {
		log.Printf("initial refresh failed: %v", err)
	}
	cancel()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "If-None-Match"},
		MaxAge:          12 * time.Hour,
	}))

	routes.SetupRoutes(r, cfg, gw, st, pl)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
