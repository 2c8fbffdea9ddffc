package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AlchemyApps/mindScript-sub004/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, 30, cfg.Server.WriteTimeout)
		require.Equal(t, 60, cfg.RateLimit.Limit)
		require.Equal(t, 60, cfg.RateLimit.WindowSeconds)
		require.Equal(t, "localhost:6379", cfg.Redis.Addr)
		require.Equal(t, "usd", cfg.Stripe.Currency)
		require.Equal(t, "tts-1", cfg.OpenAI.Model)
		require.Equal(t, "https://api.elevenlabs.io/v1", cfg.ElevenLabs.BaseURL)
		require.Empty(t, cfg.Database.URL)
		require.Empty(t, cfg.Stripe.SecretKey)
		require.Empty(t, cfg.OpenAI.APIKey)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("DATABASE_URL", "postgres://localhost/mindscript_test")
		t.Setenv("REDIS_ADDR", "redis:6380")
		t.Setenv("STRIPE_SECRET_KEY", "sk_test_key")
		t.Setenv("STRIPE_CURRENCY", "eur")
		t.Setenv("OPENAI_API_KEY", "sk-test-key")
		t.Setenv("ELEVENLABS_API_KEY", "el-test-key")
		t.Setenv("RATE_LIMIT", "10")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, "postgres://localhost/mindscript_test", cfg.Database.URL)
		require.Equal(t, "redis:6380", cfg.Redis.Addr)
		require.Equal(t, "sk_test_key", cfg.Stripe.SecretKey)
		require.Equal(t, "eur", cfg.Stripe.Currency)
		require.Equal(t, "sk-test-key", cfg.OpenAI.APIKey)
		require.Equal(t, "el-test-key", cfg.ElevenLabs.APIKey)
		require.Equal(t, 10, cfg.RateLimit.Limit)
	})
}
