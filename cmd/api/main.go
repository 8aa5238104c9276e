package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/alnourclinic/clinic-scheduler/internal/config"
	dbpkg "github.com/alnourclinic/clinic-scheduler/internal/db"
	"github.com/alnourclinic/clinic-scheduler/internal/notify"
	"github.com/alnourclinic/clinic-scheduler/internal/routes"
)

func main() {

	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	publisher, err := notify.NewRedisPublisher(cfg.RedisURL)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer publisher.Close()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, publisher)

	log.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
