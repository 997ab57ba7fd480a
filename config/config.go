package config

import (
	"errors"
	"fmt"
	"log"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "default_secret_CHANGE_ME"

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DBUrl         string
	JWTSecret     string
	AllowedOrigin string
	// Admin tokens are issued for this long. Default 24h.
	AccessTokenExpiry time.Duration
	// DB Config
	DBMaxConns           int32
	DBMinConns           int32
	DBMaxConnIdleTime    time.Duration
	DBSlowQueryThreshold time.Duration
	MigrateOnStart       bool
	// Cache
	CacheDriver      string // memory | redis
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	CacheCategoryTTL time.Duration
	CacheProductTTL  time.Duration
	// R2 Storage (product images)
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	R2UploadTimeout   time.Duration
	MaxUploadSizeMB   int64
	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
	// IPs or CIDRs of the reverse proxies whose X-Forwarded-For is believed.
	TrustedProxies []string
}

func LoadConfig() *Config {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// In docker/prod there is usually no .env; system env vars are used.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBUrl:             getEnv("DB_DSN", ""),
		JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		AccessTokenExpiry: getDurationEnv("ACCESS_TOKEN_EXPIRY", 24*time.Hour),

		DBMaxConns:           getInt32Env("DB_MAX_CONNS", 20),
		DBMinConns:           getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime:    getDurationEnv("DB_MAX_CONN_IDLE_TIME", 15*time.Minute),
		DBSlowQueryThreshold: getDurationEnv("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
		MigrateOnStart:       getBoolEnv("MIGRATE_ON_START", false),

		CacheDriver:      getEnv("CACHE_DRIVER", "memory"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getIntEnv("REDIS_DB", 0),
		CacheCategoryTTL: getDurationEnv("CACHE_CATEGORY_TTL", 30*time.Minute),
		CacheProductTTL:  getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		R2UploadTimeout:   getDurationEnv("R2_UPLOAD_TIMEOUT", 30*time.Second),
		MaxUploadSizeMB:   getInt64Env("MAX_UPLOAD_SIZE_MB", 10),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),
		TrustedProxies: getListEnv("TRUSTED_PROXIES"),
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if c.DBUrl == "" {
		return errors.New("DB_DSN environment variable is required")
	}
	if c.JWTSecret == defaultJWTSecret {
		if c.IsProduction() {
			return errors.New("JWT_SECRET must be set in production")
		}
		log.Println("WARNING: Using default JWT secret. Set JWT_SECRET before deploying.")
	}
	if c.CacheDriver != "memory" && c.CacheDriver != "redis" {
		return errors.New("CACHE_DRIVER must be 'memory' or 'redis'")
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return err
	}
	return nil
}

// TrustedProxyPrefixes parses TrustedProxies; a bare address becomes a single-host prefix.
func (c *Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, s := range c.TrustedProxies {
		if strings.Contains(s, "/") {
			p, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: invalid CIDR %q", s)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: invalid address %q", s)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// StorageEnabled is false when no bucket is configured; uploads are then disabled.
func (c *Config) StorageEnabled() bool {
	return c.R2AccountID != "" && c.R2BucketName != ""
}
