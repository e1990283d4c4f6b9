package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/studiobela/salon-scheduler/internal/cache"
	"github.com/studiobela/salon-scheduler/internal/config"
	dbpkg "github.com/studiobela/salon-scheduler/internal/db"
	"github.com/studiobela/salon-scheduler/internal/jobs"
	"github.com/studiobela/salon-scheduler/internal/payment"
	"github.com/studiobela/salon-scheduler/internal/routes"

	"github.com/go-redis/redis/v8"
)

func main() {

	// .env é conveniência de desenvolvimento; em produção as variáveis vêm
	// do ambiente
	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var rdb *redis.Client
	if cfg.HasRedis() {
		if opts, err := redis.ParseURL(cfg.RedisURL); err == nil {
			rdb = redis.NewClient(opts)
		}
	}

	sweeper := jobs.NewPendingSweeper(db, cache.NewSlotsCache(rdb), payment.NewFactory())
	sweeper.Start()
	defer sweeper.Stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
