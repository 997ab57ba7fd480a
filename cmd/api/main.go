package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jbfsport-backend/config"
	"jbfsport-backend/internal/delivery/http/middleware"
	v1 "jbfsport-backend/internal/delivery/http/v1"
	"jbfsport-backend/internal/infrastructure/cache"
	"jbfsport-backend/internal/infrastructure/migration"
	"jbfsport-backend/internal/repository/gormrepo"
	"jbfsport-backend/internal/usecase"
	pkgcache "jbfsport-backend/pkg/cache"
	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/storage"
	"jbfsport-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	utils.SetSecret(cfg.JWTSecret)

	// prices go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	pool, err := gormrepo.NewPgxPool(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		// the migrator closes its own handle, so give it a separate one
		if err := migration.Run(stdlib.OpenDBFromPool(pool), "up"); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
		log.Info().Msg("Migrations applied")
	}

	db, sqlDB, err := gormrepo.OpenGorm(pool, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open GORM")
	}
	defer sqlDB.Close()
	log.Info().Msg("Connected to PostgreSQL")

	var appCache pkgcache.CacheService
	switch cfg.CacheDriver {
	case "redis":
		c, closeRedis, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cache.DefaultKeyPrefix,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer closeRedis()
		appCache = c
		log.Info().Str("addr", cfg.RedisAddr).Msg("Using redis cache")
	default:
		appCache = cache.NewMemoryCache(cfg.CacheCategoryTTL, 2*cfg.CacheCategoryTTL)
	}

	// Repositories
	categoryRepo := gormrepo.NewCategoryRepository(db)
	subCategoryRepo := gormrepo.NewSubCategoryRepository(db)
	subSubRepo := gormrepo.NewSubSubCategoryRepository(db)
	productRepo := gormrepo.NewProductRepository(db)
	adminRepo := gormrepo.NewAdminRepository(db)
	contactRepo := gormrepo.NewContactRepository(db)
	statsRepo := gormrepo.NewStatsRepository(db)
	txManager := gormrepo.NewTransactionManager(db)

	// Usecases
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, subCategoryRepo, subSubRepo, productRepo, appCache, cfg)
	taxonomyUC := usecase.NewTaxonomyUsecase(categoryRepo, subCategoryRepo, subSubRepo, productRepo, appCache)
	productUC := usecase.NewProductUsecase(productRepo, subCategoryRepo, subSubRepo, txManager, appCache)
	bulkUC := usecase.NewBulkUsecase(categoryRepo, subCategoryRepo, subSubRepo, productRepo, appCache)
	featuredUC := usecase.NewFeaturedUsecase(categoryRepo, productRepo, txManager, appCache)
	authUC := usecase.NewAuthUsecase(adminRepo, cfg.AccessTokenExpiry)
	contactUC := usecase.NewContactUsecase(contactRepo)
	statsUC := usecase.NewStatsUsecase(statsRepo, appCache)

	// Image storage is optional; without it the upload route answers 503.
	var imageStore v1.ImageStore
	if cfg.StorageEnabled() {
		r2, err := storage.NewR2Storage(ctx, storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
			UploadTimeout:   cfg.R2UploadTimeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 storage")
		}
		imageStore = r2
	} else {
		log.Warn().Msg("R2 storage not configured, image uploads disabled")
	}

	mux := http.NewServeMux()
	v1.RegisterRoutes(mux, v1.Handlers{
		Catalog:      v1.NewCatalogHandler(catalogUC),
		AdminCatalog: v1.NewAdminCatalogHandler(taxonomyUC, productUC),
		AdminBulk:    v1.NewAdminBulkHandler(bulkUC, featuredUC),
		AdminStats:   v1.NewAdminStatsHandler(statsUC),
		Auth:         v1.NewAuthHandler(authUC),
		Contact:      v1.NewContactHandler(contactUC),
		Upload:       v1.NewUploadHandler(imageStore, cfg.MaxUploadSizeMB),
		Ping: func(ctx context.Context) error {
			return gormrepo.Ping(ctx, db)
		},
	})

	metrics := middleware.NewMetrics("jbfsport")
	mux.Handle("GET /metrics", metrics.Handler())

	trustedProxies, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid trusted proxies")
	}
	rateLimiter := middleware.NewRateLimiter(
		ctx,
		cfg.RateLimitRPS,
		cfg.RateLimitBurst,
		time.Minute,
		3*time.Minute,
	).TrustProxies(trustedProxies...)

	// metrics wraps the mux directly so r.Pattern is set when it reads it
	handler := metrics.Middleware(mux)
	handler = middleware.NewCORSMiddleware(cfg)(handler)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()
	logger.ServiceStart("jbfsport-api", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	rateLimiter.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop("jbfsport-api")
}
