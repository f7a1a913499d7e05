package config

import (
	"strings"
	"time"
)

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"hireme"`
	Password string `env:"PASSWORD"                envDefault:"hireme"`
	Name     string `env:"NAME"                    envDefault:"hireme"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
	// HNSWEfSearch is the floor for hnsw.ef_search. Each vector query raises it to top-K.
	HNSWEfSearch int `env:"HNSW_EF_SEARCH" envDefault:"0"`
	// HNSWExactScanLimit ranks filtered candidate sets up to this size by exact distance.
	HNSWExactScanLimit int `env:"HNSW_EXACT_SCAN_LIMIT" envDefault:"5000"`
	// HNSWIterativeScan is strict_order, relaxed_order or empty. Requires pgvector 0.8+.
	HNSWIterativeScan string `env:"HNSW_ITERATIVE_SCAN" envDefault:""`

	MaxOpenConns    int           `env:"MAX_OPEN_CONNS"    envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS"    envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT"   envDefault:"5s"`
}

// Sanitize restores pool defaults for non-positive values.
func (c *DBConfig) Sanitize() {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns < 0 {
		c.MaxIdleConns = 0
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = c.MaxOpenConns
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 5 * time.Minute
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 5 * time.Second
	}
	c.HNSWEfSearch = max(c.HNSWEfSearch, 0)
	c.HNSWExactScanLimit = max(c.HNSWExactScanLimit, 0)
	switch scan := strings.ToLower(strings.TrimSpace(c.HNSWIterativeScan)); scan {
	case "strict_order", "relaxed_order":
		c.HNSWIterativeScan = scan
	default:
		c.HNSWIterativeScan = ""
	}
}

// RedisConfig contains Redis configuration. Redis backs the embedding cache and is optional.
type RedisConfig struct {
	Enabled            bool     `env:"ENABLED"              envDefault:"false"`
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// CacheConfig contains embedding cache configuration (Redis-based).
type CacheConfig struct {
	// EmbeddingTTL is how long a text's vector stays cached. Zero disables expiry.
	EmbeddingTTL time.Duration `env:"CACHE_EMBEDDING_TTL" envDefault:"168h"`

	// Namespace prefixes every cache key.
	Namespace string `env:"CACHE_NAMESPACE" envDefault:"hireme"`
}
