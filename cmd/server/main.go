package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"media-planner/api/router"
	"media-planner/assetstore"
	"media-planner/auth"
	"media-planner/config"
	"media-planner/db"
	"media-planner/delivery"
	"media-planner/dispatcher"
	"media-planner/eventbus"
	"media-planner/logger"
	"media-planner/repositories"
	"media-planner/services"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Log = logger.NewLogger(cfg.Logging.Level)

	if err := db.Init(context.Background()); err != nil {
		log.Fatal(err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %s: %v", cfg.Timezone, err)
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repositories.NewUserRepository(db.Database())
	postRepo := repositories.NewPostRepository(db.Database())

	var bus eventbus.Publisher = eventbus.Noop{}
	if cfg.KafkaBrokers != "" {
		kp, err := eventbus.NewKafkaPublisher(cfg.KafkaBrokers)
		if err != nil {
			log.Fatal(err)
		}
		defer kp.Close()
		bus = kp
	}

	authSvc := services.NewAuthService(userRepo, jwtManager)
	postSvc := services.NewPostService(
		postRepo,
		delivery.NewWebhookDeliverer(cfg.WebhookURLs),
		bus,
		cfg.EventBus.Topic,
		loc,
		int64(cfg.Dispatcher.BatchSize),
	)

	if cfg.Dispatcher.Enabled {
		d, err := dispatcher.New(postSvc, cfg.Dispatcher.Schedule, loc)
		if err != nil {
			log.Fatal(err)
		}
		d.Start()
		defer func() { <-d.Stop().Done() }()
	}

	r := router.New(router.Deps{
		AuthService: authSvc,
		PostService: postSvc,
		Uploader:    assetstore.New(cfg.AssetStoreURL, cfg.Assets.Folder),
		JWTManager:  jwtManager,
		Users:       userRepo,
	})

	corsOptions := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	if len(cfg.Server.CORSOrigins) > 0 {
		corsOptions.AllowedOrigins = cfg.Server.CORSOrigins
	}
	handler := cors.New(corsOptions).Handler(r)

	logger.InfoWithFields("server listening", logger.Fields{"addr": cfg.Server.Addr})
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
