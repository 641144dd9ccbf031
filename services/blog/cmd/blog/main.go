package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"curiozando/internal/ratelimit"
	"curiozando/internal/util"
	"curiozando/pkg/ai"
	"curiozando/pkg/generate"
	"curiozando/pkg/storage"
	"curiozando/pkg/store"
	"curiozando/services/blog/internal/app"
	"curiozando/services/blog/internal/config"
	"curiozando/services/blog/internal/server"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session ttl: %v", err)
	}
	rateWindow, err := config.ParseRateWindow(cfg.GenerateRateWindow)
	if err != nil {
		log.Fatalf("failed to parse rate window: %v", err)
	}
	trusted, err := util.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Fatalf("failed to parse trusted proxies: %v", err)
	}

	dataStore, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init postgres store: %v", err)
	}

	var sessions store.SessionStore
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		sessions = store.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, sessionTTL)
	default:
		revoker := store.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword)
		sessions, err = store.NewJWTSessionStore(cfg.SessionSecret, sessionTTL, revoker)
		if err != nil {
			log.Fatalf("failed to init session store: %v", err)
		}
	}

	geminiClient, err := ai.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("failed to init gemini client: %v", err)
	}
	geminiGen := ai.NewGeminiGenerator(geminiClient, cfg.GeminiTextModel, cfg.GeminiImageModel)

	// Image archive is optional. Without it generated images are embedded
	// as data URIs in the draft.
	var archive generate.ImageArchive
	if cfg.MinioEndpoint != "" {
		minioStore, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("failed to init minio store: %v", err)
		}
		archive = minioStore
	}
	resolver, err := generate.NewImageResolver(geminiGen, archive)
	if err != nil {
		log.Fatalf("failed to init image resolver: %v", err)
	}
	generator, err := generate.NewGenerator(geminiGen, resolver)
	if err != nil {
		log.Fatalf("failed to init generator: %v", err)
	}

	limiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "curiozando:ratelimit", cfg.GenerateRateLimit, rateWindow)
	if err != nil {
		log.Fatalf("failed to init rate limiter: %v", err)
	}

	appCore, err := app.New(app.Config{
		Store:             dataStore,
		Sessions:          sessions,
		Generator:         generator,
		AdminEmail:        cfg.AdminEmail,
		AdminPasswordHash: cfg.AdminPasswordHash,
		DefaultCategory:   cfg.DefaultPostCategory,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer, err := server.New(server.Config{
		App:            appCore,
		Limiter:        limiter,
		TrustedProxies: trusted,
		AllowedOrigin:  cfg.AllowedOrigin,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("blog server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
