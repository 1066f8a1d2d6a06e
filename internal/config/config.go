package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Category  CategoryConfig  `yaml:"category"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Audit     AuditConfig     `yaml:"audit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig describes how access tokens issued by the identity provider are
// verified. Tokens are HS256-signed with the project's JWT secret.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	Issuer    string        `yaml:"issuer"     env:"AUTH_ISSUER"`
	Audience  string        `yaml:"audience"   env:"AUTH_AUDIENCE"   env-default:"authenticated"`
	Leeway    time.Duration `yaml:"leeway"     env:"AUTH_LEEWAY"     env-default:"30s"`
	// DevTokenTTL is the lifetime of tokens minted by zeitctl for local testing.
	DevTokenTTL time.Duration `yaml:"dev_token_ttl" env:"AUTH_DEV_TOKEN_TTL" env-default:"1h"`
}

// ResolverConfig holds the matching thresholds of the category resolver.
// The defaults are uncalibrated; tune them against real transcription data.
type ResolverConfig struct {
	FuzzyAccept               float64       `yaml:"fuzzy_accept"                env:"RESOLVER_FUZZY_ACCEPT"                env-default:"0.6"`
	AutoResolve               float64       `yaml:"auto_resolve"                env:"RESOLVER_AUTO_RESOLVE"                env-default:"0.8"`
	CaseInsensitiveConfidence float64       `yaml:"case_insensitive_confidence" env:"RESOLVER_CASE_INSENSITIVE_CONFIDENCE" env-default:"0.95"`
	SubstringConfidence       float64       `yaml:"substring_confidence"        env:"RESOLVER_SUBSTRING_CONFIDENCE"        env-default:"0.8"`
	Distance                  string        `yaml:"distance"                    env:"RESOLVER_DISTANCE"                    env-default:"damerau"`
	SessionTTL                time.Duration `yaml:"session_ttl"                 env:"RESOLVER_SESSION_TTL"                 env-default:"30m"`
	MaxSessionsPerUser        int           `yaml:"max_sessions_per_user"       env:"RESOLVER_MAX_SESSIONS_PER_USER"       env-default:"20"`
}

// CategoryConfig holds per-user limits of the category tree.
type CategoryConfig struct {
	MaxAreasPerUser       int `yaml:"max_areas_per_user"      env:"CATEGORY_MAX_AREAS"      env-default:"50"`
	MaxFieldsPerArea      int `yaml:"max_fields_per_area"     env:"CATEGORY_MAX_FIELDS"     env-default:"50"`
	MaxActivitiesPerField int `yaml:"max_activities_per_field" env:"CATEGORY_MAX_ACTIVITIES" env-default:"100"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"     env-default:"120"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"   env-default:"30"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP" env-default:"5m"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// AuditConfig holds audit log retention, enforced by cmd/cleanup.
type AuditConfig struct {
	RetentionDays int `yaml:"retention_days" env:"AUDIT_RETENTION_DAYS" env-default:"365"`
}
