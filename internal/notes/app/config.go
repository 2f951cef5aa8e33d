package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/notepad/pkg/httpx"
	"github.com/spf13/viper"
)

// DevJWTSecret is only accepted when ENV=dev.
const DevJWTSecret = "your_jwt_secret"

type Config struct {
	Env       string `mapstructure:"ENV"`        // Environment (dev, staging, prod) (default: dev)
	LogLevel  string `mapstructure:"LOG_LEVEL"`  // Log level (debug, info, warn, error) (default: info)
	LogFormat string `mapstructure:"LOG_FORMAT"` // Log format (json, text) (default: json)
	Port      int    `mapstructure:"PORT"`       // HTTP server port (default: 5000)

	JWTSecret    string        `mapstructure:"JWT_SECRET"`    // HS256 signing secret, required outside dev
	JWTIssuer    string        `mapstructure:"JWT_ISSUER"`    // iss claim (default: notepad)
	TokenTTL     time.Duration `mapstructure:"TOKEN_TTL"`     // Session lifetime (default: 1h)
	ClientURL    string        `mapstructure:"CLIENT_URL"`    // Browser origin allowed by CORS
	CookieSecure bool          `mapstructure:"COOKIE_SECURE"` // Secure + SameSite=None session cookie

	DatabaseDriver string        `mapstructure:"DATABASE_DRIVER"` // sqlite or postgres (default: sqlite)
	DatabaseFile   string        `mapstructure:"DATABASE_FILE"`   // SQLite path (default: notes.db)
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`    // Postgres DSN
	PepperFile     string        `mapstructure:"PEPPER_FILE"`     // Password pepper (default: ./pepper)
	StoreTimeout   time.Duration `mapstructure:"STORE_TIMEOUT"`   // Per store call bound (default: 5s)

	ShutdownGracePeriod time.Duration `mapstructure:"SHUTDOWN_GRACE_PERIOD"` // Graceful shutdown timeout (default: 10s)

	RateLimits RateLimitsConfig `mapstructure:",squash"`
}

// RateLimitsConfig mirrors the RATELIMIT_{PROFILE}_{FIELD} variables.
type RateLimitsConfig struct {
	StrictRequests   int `mapstructure:"RATELIMIT_STRICT_REQUESTS"`
	StrictWindowSec  int `mapstructure:"RATELIMIT_STRICT_WINDOW_SEC"`
	StrictBurst      int `mapstructure:"RATELIMIT_STRICT_BURST"`
	ModerateRequests int `mapstructure:"RATELIMIT_MODERATE_REQUESTS"`
	ModerateWindow   int `mapstructure:"RATELIMIT_MODERATE_WINDOW_SEC"`
	ModerateBurst    int `mapstructure:"RATELIMIT_MODERATE_BURST"`
	LenientRequests  int `mapstructure:"RATELIMIT_LENIENT_REQUESTS"`
	LenientWindowSec int `mapstructure:"RATELIMIT_LENIENT_WINDOW_SEC"`
	LenientBurst     int `mapstructure:"RATELIMIT_LENIENT_BURST"`
}

// LoadConfig reads .env (if present), then the environment. Environment
// variables win over .env.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine

	v.AutomaticEnv()

	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PORT", 5000)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "notepad")
	v.SetDefault("TOKEN_TTL", "1h")
	v.SetDefault("CLIENT_URL", "http://localhost:3000")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_FILE", "notes.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PEPPER_FILE", "pepper")
	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("SHUTDOWN_GRACE_PERIOD", "10s")

	setRateLimitDefaults(v, "STRICT", httpx.StrictLimit)
	setRateLimitDefaults(v, "MODERATE", httpx.ModerateLimit)
	setRateLimitDefaults(v, "LENIENT", httpx.LenientLimit)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	if cfg.Env == "dev" && cfg.JWTSecret == "" {
		cfg.JWTSecret = DevJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setRateLimitDefaults(v *viper.Viper, profile string, def httpx.RateLimitConfig) {
	v.SetDefault("RATELIMIT_"+profile+"_REQUESTS", def.RequestsPerWindow)
	v.SetDefault("RATELIMIT_"+profile+"_WINDOW_SEC", int(def.Window.Seconds()))
	v.SetDefault("RATELIMIT_"+profile+"_BURST", def.Burst)
}

// Validate reports the first setting the server cannot start with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT %d out of range", c.Port)
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be set")
	}
	if c.Env != "dev" && c.JWTSecret == DevJWTSecret {
		return errors.New("config: JWT_SECRET must not use the development default outside ENV=dev")
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}

	switch c.DatabaseDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			return errors.New("config: DATABASE_FILE must be set for sqlite")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL must be set for postgres")
		}
	default:
		return fmt.Errorf("config: unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	for name, rl := range map[string]httpx.RateLimitConfig{
		"STRICT":   c.RateLimits.Strict(),
		"MODERATE": c.RateLimits.Moderate(),
		"LENIENT":  c.RateLimits.Lenient(),
	} {
		if !rl.Valid() {
			return fmt.Errorf("config: RATELIMIT_%s_* values must be positive", name)
		}
	}
	return nil
}

func (r RateLimitsConfig) Strict() httpx.RateLimitConfig {
	return limit(r.StrictRequests, r.StrictWindowSec, r.StrictBurst)
}

func (r RateLimitsConfig) Moderate() httpx.RateLimitConfig {
	return limit(r.ModerateRequests, r.ModerateWindow, r.ModerateBurst)
}

func (r RateLimitsConfig) Lenient() httpx.RateLimitConfig {
	return limit(r.LenientRequests, r.LenientWindowSec, r.LenientBurst)
}

func limit(requests, windowSec, burst int) httpx.RateLimitConfig {
	return httpx.RateLimitConfig{
		RequestsPerWindow: requests,
		Window:            time.Duration(windowSec) * time.Second,
		Burst:             burst,
	}
}
