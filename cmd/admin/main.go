package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"jbfsport-backend/config"
	"jbfsport-backend/internal/infrastructure/cache"
	"jbfsport-backend/internal/infrastructure/migration"
	"jbfsport-backend/internal/repository/gormrepo"
	"jbfsport-backend/internal/usecase"
	pkgcache "jbfsport-backend/pkg/cache"
	"jbfsport-backend/pkg/logger"

	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "create-admin":
		err = runCreateAdmin(ctx, cfg, os.Args[2:])
	case "migrate":
		err = runMigrate(ctx, cfg, os.Args[2:])
	case "featured":
		err = runFeatured(ctx, cfg, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal().Err(err).Str("command", os.Args[1]).Msg("Command failed")
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: admin <command> [flags]

Commands:
  create-admin -username <u> -email <e> -password <p>   create an admin account
  migrate -direction up|down                           apply or roll back migrations
  featured -auto | -reset                              select or clear category products`)
}

func runCreateAdmin(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	username := fs.String("username", "", "admin username")
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, closeDB, err := openGorm(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	auth := usecase.NewAuthUsecase(gormrepo.NewAdminRepository(db), cfg.AccessTokenExpiry)
	admin, created, err := auth.CreateAdmin(ctx, *username, *email, *password)
	if err != nil {
		return err
	}
	if !created {
		logger.Info().Str("username", admin.Username).Msg("Admin already exists, nothing to do")
		return nil
	}
	logger.Info().Str("username", admin.Username).Str("id", admin.ID).Msg("Admin created")
	return nil
}

func runMigrate(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	direction := fs.String("direction", "up", "up or down")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pool, err := gormrepo.NewPgxPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migration.Run(stdlib.OpenDBFromPool(pool), *direction); err != nil {
		return err
	}
	logger.Info().Str("direction", *direction).Msg("Migrations done")
	return nil
}

func runFeatured(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("featured", flag.ExitOnError)
	auto := fs.Bool("auto", false, "flag the newest products of every active leaf")
	reset := fs.Bool("reset", false, "clear the flag on every product")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *auto == *reset {
		return fmt.Errorf("exactly one of -auto or -reset is required")
	}

	db, closeDB, err := openGorm(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	c, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	featured := usecase.NewFeaturedUsecase(
		gormrepo.NewCategoryRepository(db),
		gormrepo.NewProductRepository(db),
		gormrepo.NewTransactionManager(db),
		c,
	)

	var res *usecase.FeaturedResult
	if *auto {
		res, err = featured.AutoSelect(ctx)
	} else {
		res, err = featured.Reset(ctx)
	}
	if err != nil {
		return err
	}
	logger.Info().Int("processed", res.Processed).Int64("updated", res.Updated).Msg("Featured products updated")
	return nil
}

func openGorm(ctx context.Context, cfg *config.Config) (*gorm.DB, func(), error) {
	pool, err := gormrepo.NewPgxPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	g, sqlDB, err := gormrepo.OpenGorm(pool, cfg)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return g, func() {
		_ = sqlDB.Close()
		pool.Close()
	}, nil
}

// openCache connects to the shared redis so the API sees the invalidation.
// With the memory driver each API process keeps its pages until the TTL runs out.
func openCache(ctx context.Context, cfg *config.Config) (pkgcache.CacheService, func(), error) {
	logger.Debug().Str("driver", cfg.CacheDriver).Msg("Opening cache")
	if cfg.CacheDriver != "redis" {
		return cache.NewMemoryCache(time.Minute, time.Minute), func() {}, nil
	}
	c, closeRedis, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		KeyPrefix: cache.DefaultKeyPrefix,
	})
	if err != nil {
		return nil, nil, err
	}
	return c, func() { _ = closeRedis() }, nil
}
