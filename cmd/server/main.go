package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"synapshare/internal/config"
	"synapshare/internal/content"
	"synapshare/internal/db"
	"synapshare/internal/identity"
	"synapshare/internal/logging"
	"synapshare/internal/models"
	"synapshare/internal/router"
	"synapshare/internal/services"
	"synapshare/internal/storage"
	"synapshare/internal/users"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.Production())
	if envErr != nil {
		log.Info("no .env file found, reading env vars from system")
	}
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := db.Open(cfg.DatabaseURL)
	switch {
	case err != nil && (cfg.Production() || database == nil):
		// Hard exit so the supervisor restarts the process.
		log.WithError(err).Fatal("database connection failed")
	case err != nil:
		log.WithError(err).Error("database connection failed, continuing; queries will fail until Postgres is reachable")
	default:
		log.Info("database connection established")
	}

	if cfg.FirebaseCredentials == "" {
		log.Fatal("FIREBASE_CREDENTIALS is required")
	}
	verifier, err := identity.NewFirebase(context.Background(), []byte(cfg.FirebaseCredentials))
	if err != nil {
		log.WithError(err).Fatal("identity provider setup failed")
	}

	deps := router.Deps{
		Cfg:         cfg,
		Log:         log,
		DB:          database,
		Verifier:    verifier,
		Users:       users.NewStore(database),
		Files:       storage.NewFileStore(cfg.UploadDir, cfg.BaseURL),
		News:        services.NewNewsService(cfg.NewsAPIKey),
		Notes:       content.NewStore[models.Note, *models.Note](database),
		Discussions: content.NewStore[models.Discussion, *models.Discussion](database),
		Nodes:       content.NewStore[models.Node, *models.Node](database),
	}

	r := router.New(deps)

	log.Infof("SynapShare API listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
