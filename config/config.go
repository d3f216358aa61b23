// Package config provides configuration management for the pantry service.
//
// Values come from, in increasing priority: built-in defaults, an optional
// YAML file, a .env file and the process environment. Environment variable
// names are flat (PORT, MONGODB_URI, ...); the YAML file uses the nested
// keys of the mapstructure tags below.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/guttosm/pantry-service/internal/pantry"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	Store    StoreConfig    `mapstructure:"store"`
	Pantry   PantryConfig   `mapstructure:"pantry"`
	Report   ReportConfig   `mapstructure:"report"`
	Recipes  RecipesConfig  `mapstructure:"recipes"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	RateLimit      int           `mapstructure:"rate_limit"`
	RateWindow     time.Duration `mapstructure:"rate_window"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	SwaggerUser    string        `mapstructure:"swagger_user"`
	SwaggerPass    string        `mapstructure:"swagger_pass"`
	Language       string        `mapstructure:"language"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecretKey     string        `mapstructure:"jwt_secret_key"`
	JWTRefreshSecret string        `mapstructure:"jwt_refresh_secret_key"`
	AccessTokenTTL   time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL  time.Duration `mapstructure:"refresh_token_ttl"`
	// AdminName and AdminPassword bootstrap an admin household at startup
	// when both are set and the household does not exist yet.
	AdminName     string `mapstructure:"admin_name"`
	AdminPassword string `mapstructure:"admin_password"`
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string        `mapstructure:"uri"`
	DatabaseName string        `mapstructure:"name"`
	LogsTTL      time.Duration `mapstructure:"logs_ttl"`
	Enabled      bool          `mapstructure:"enabled"`
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int           `mapstructure:"circuit_breaker_failure_threshold"`
	CircuitBreakerSuccessThreshold int           `mapstructure:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `mapstructure:"circuit_breaker_timeout"`
}

// Document store backends.
const (
	StoreBackendFile = "file"
	StoreBackendHTTP = "http"
)

// StoreConfig selects the document store used when MongoDB is disabled.
type StoreConfig struct {
	Backend string        `mapstructure:"backend"`
	Path    string        `mapstructure:"path"`
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PantryConfig holds domain settings.
type PantryConfig struct {
	NearExpiryDays  int    `mapstructure:"near_expiry_days"`
	DeductionOrder  string `mapstructure:"deduction_order"`
	ConflictRetries int    `mapstructure:"conflict_retries"`
}

// Report sinks.
const (
	ReportSinkFile = "file"
	ReportSinkS3   = "s3"
)

// ReportConfig configures where exported shopping lists go.
type ReportConfig struct {
	Sink     string `mapstructure:"sink"`
	Dir      string `mapstructure:"dir"`
	S3Bucket string `mapstructure:"s3_bucket"`
	S3Region string `mapstructure:"s3_region"`
	S3Prefix string `mapstructure:"s3_prefix"`
}

// RecipesConfig points at an optional recipe catalog seeded on startup.
type RecipesConfig struct {
	SeedFile string `mapstructure:"seed_file"`
}

// bindings maps config keys to their environment variable and default.
var bindings = []struct {
	key   string
	env   string
	value interface{}
}{
	{"server.port", "PORT", "8080"},
	{"server.rate_limit", "RATE_LIMIT", 100},
	{"server.rate_window", "RATE_WINDOW", time.Minute},
	{"server.request_timeout", "REQUEST_TIMEOUT", 30 * time.Second},
	{"server.cors_origins", "CORS_ORIGINS", []string{}},
	{"server.swagger_user", "SWAGGER_USER", ""},
	{"server.swagger_pass", "SWAGGER_PASS", ""},
	{"server.language", "LANGUAGE", "en"},

	{"log.level", "LOG_LEVEL", "info"},
	{"log.pretty", "LOG_PRETTY", false},

	{"auth.jwt_secret_key", "JWT_SECRET_KEY", "your-secret-key-change-in-production"},
	{"auth.jwt_refresh_secret_key", "JWT_REFRESH_SECRET_KEY", "your-refresh-secret-key-change-in-production"},
	{"auth.access_token_ttl", "JWT_ACCESS_TOKEN_TTL", 15 * time.Minute},
	{"auth.refresh_token_ttl", "JWT_REFRESH_TOKEN_TTL", 7 * 24 * time.Hour},
	{"auth.admin_name", "ADMIN_NAME", ""},
	{"auth.admin_password", "ADMIN_PASSWORD", ""},

	{"database.uri", "MONGODB_URI", "mongodb://localhost:27017"},
	{"database.name", "MONGODB_DATABASE", "pantry_service"},
	{"database.logs_ttl", "MONGODB_LOGS_TTL", 30 * 24 * time.Hour},
	{"database.enabled", "MONGODB_ENABLED", false},
	{"database.circuit_breaker_failure_threshold", "CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5},
	{"database.circuit_breaker_success_threshold", "CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2},
	{"database.circuit_breaker_timeout", "CIRCUIT_BREAKER_TIMEOUT", 30 * time.Second},

	{"store.backend", "STORE_BACKEND", StoreBackendFile},
	{"store.path", "STORE_PATH", "data/pantry.json"},
	{"store.url", "STORE_URL", ""},
	{"store.token", "STORE_TOKEN", ""},
	{"store.timeout", "STORE_TIMEOUT", 10 * time.Second},

	{"pantry.near_expiry_days", "NEAR_EXPIRY_DAYS", pantry.DefaultNearExpiryDays},
	{"pantry.deduction_order", "DEDUCTION_ORDER", "insertion"},
	{"pantry.conflict_retries", "CONFLICT_RETRIES", 3},

	{"report.sink", "REPORT_SINK", ReportSinkFile},
	{"report.dir", "REPORT_DIR", "reports"},
	{"report.s3_bucket", "REPORT_S3_BUCKET", ""},
	{"report.s3_region", "REPORT_S3_REGION", ""},
	{"report.s3_prefix", "REPORT_S3_PREFIX", "shopping-lists/"},

	{"recipes.seed_file", "RECIPES_SEED_FILE", ""},
}

// Load reads configuration. configFile may be empty.
func Load(configFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.value)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", b.env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Server.CORSOrigins = withDefaultOrigins(cfg.Server.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	var errs []error

	if _, err := pantry.ParseDeductionOrder(c.Pantry.DeductionOrder); err != nil {
		errs = append(errs, err)
	}
	if c.Pantry.NearExpiryDays < 0 {
		errs = append(errs, fmt.Errorf("pantry.near_expiry_days must not be negative"))
	}
	if c.Pantry.ConflictRetries < 0 {
		errs = append(errs, fmt.Errorf("pantry.conflict_retries must not be negative"))
	}

	if !c.Database.Enabled {
		switch c.Store.Backend {
		case StoreBackendFile:
			if c.Store.Path == "" {
				errs = append(errs, fmt.Errorf("store.path is required for the file backend"))
			}
		case StoreBackendHTTP:
			if c.Store.URL == "" {
				errs = append(errs, fmt.Errorf("store.url is required for the http backend"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
		}
	}

	switch c.Report.Sink {
	case ReportSinkFile:
	case ReportSinkS3:
		if c.Report.S3Bucket == "" {
			errs = append(errs, fmt.Errorf("report.s3_bucket is required for the s3 sink"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown report sink %q", c.Report.Sink))
	}

	if (c.Auth.AdminName == "") != (c.Auth.AdminPassword == "") {
		errs = append(errs, fmt.Errorf("auth.admin_name and auth.admin_password must be set together"))
	}

	return errors.Join(errs...)
}

func withDefaultOrigins(origins []string) []string {
	// Default origins for local development
	result := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	for _, o := range origins {
		for _, part := range strings.Split(o, ",") {
			if origin := strings.TrimSpace(part); origin != "" {
				result = append(result, origin)
			}
		}
	}
	return result
}
