package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/reelgrowth/lead-relay/internal/config"
	"github.com/reelgrowth/lead-relay/internal/infra/http/handlers"
	appmiddleware "github.com/reelgrowth/lead-relay/internal/infra/http/middleware"
	"github.com/reelgrowth/lead-relay/internal/infra/integration/brevo"
	redisstore "github.com/reelgrowth/lead-relay/internal/infra/store/redis"
	"github.com/reelgrowth/lead-relay/internal/usecase"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	listMap, err := cfg.ListMap()
	if err != nil {
		logger.Fatal("invalid CRM list mapping", zap.Error(err))
	}

	rdb, err := redisstore.NewClient(redisstore.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories and gateways
	leadRepo := redisstore.NewLeadRepository(rdb)
	crm := brevo.NewClient(cfg.BrevoAPIKey, cfg.BrevoBaseURL, listMap)

	// Use cases
	captureUC := usecase.NewCaptureLeadUseCase(leadRepo, crm, cfg.DefaultLeadSource, logger)
	purchaseUC := usecase.NewRecordPurchaseUseCase(leadRepo, crm, logger)
	listUC := usecase.NewListLeadsUseCase(leadRepo)

	// Handlers
	leadHandler := handlers.NewLeadHandler(captureUC, cfg.APISecretKey, logger)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseUC, cfg.PurchaseWebhookSecret, logger)
	listHandler := handlers.NewLeadsListHandler(listUC, cfg.APISecretKey, logger)
	healthHandler := handlers.NewHealthHandler(leadRepo, crm)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "x-api-key", handlers.SignatureHeader},
	}))

	r.Post("/api/lead", leadHandler.Capture)
	r.Get("/api/lead", leadHandler.Active)
	r.Post("/api/purchase", purchaseHandler.Handle)
	r.Get("/api/purchase", purchaseHandler.Active)
	r.Head("/api/purchase", purchaseHandler.Ping)
	r.Get("/api/leads", listHandler.List)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	logger.Info("lead-relay listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
