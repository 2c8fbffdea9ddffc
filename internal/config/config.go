package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	redisstore "github.com/AlchemyApps/mindScript-sub004/internal/cache/redis"
	stripegw "github.com/AlchemyApps/mindScript-sub004/internal/payments/stripe"
	"github.com/AlchemyApps/mindScript-sub004/internal/storage/postgres"
	"github.com/AlchemyApps/mindScript-sub004/internal/tts/elevenlabs"
	openaitts "github.com/AlchemyApps/mindScript-sub004/internal/tts/openai"
)

// Config represents the service configuration.
type Config struct {
	Server     ServerConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
	Database   postgres.Config
	Redis      redisstore.Config
	Stripe     stripegw.Config
	OpenAI     openaitts.Config
	ElevenLabs elevenlabs.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"30"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// RateLimitConfig contains fixed-window rate limiter settings.
type RateLimitConfig struct {
	Limit         int `env:"RATE_LIMIT"                envDefault:"60"`
	WindowSeconds int `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	Server     *ServerConfig
	CORS       *CORSConfig
	RateLimit  *RateLimitConfig
	Database   *postgres.Config
	Redis      *redisstore.Config
	Stripe     *stripegw.Config
	OpenAI     *openaitts.Config
	ElevenLabs *elevenlabs.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Server:     &cfg.Server,
		CORS:       &cfg.CORS,
		RateLimit:  &cfg.RateLimit,
		Database:   &cfg.Database,
		Redis:      &cfg.Redis,
		Stripe:     &cfg.Stripe,
		OpenAI:     &cfg.OpenAI,
		ElevenLabs: &cfg.ElevenLabs,
	}
}
