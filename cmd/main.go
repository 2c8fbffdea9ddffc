package main

import (
	"context"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	redisstore "github.com/AlchemyApps/mindScript-sub004/internal/cache/redis"
	"github.com/AlchemyApps/mindScript-sub004/internal/config"
	"github.com/AlchemyApps/mindScript-sub004/internal/domain"
	"github.com/AlchemyApps/mindScript-sub004/internal/http"
	"github.com/AlchemyApps/mindScript-sub004/internal/http/middleware"
	"github.com/AlchemyApps/mindScript-sub004/internal/observability"
	stripegw "github.com/AlchemyApps/mindScript-sub004/internal/payments/stripe"
	"github.com/AlchemyApps/mindScript-sub004/internal/ratelimit"
	"github.com/AlchemyApps/mindScript-sub004/internal/storage/postgres"
	"github.com/AlchemyApps/mindScript-sub004/internal/tts/elevenlabs"
	openaitts "github.com/AlchemyApps/mindScript-sub004/internal/tts/openai"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server, limiter *ratelimit.Limiter) {
		go limiter.Start(context.Background())

		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

//nolint:funlen // Container wiring is linear and clearer in one place
func buildContainer() *dig.Container {
	container := dig.New()

	provide := func(constructor interface{}) {
		if err := container.Provide(constructor); err != nil {
			log.Fatalf("Failed to provide dependency: %v", err)
		}
	}

	// Configuration
	provide(config.Load)
	provide(config.ParseDependenciesConfig)

	// Observability
	provide(observability.InitLogger)
	provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	})

	// Storage
	provide(postgres.Connect)
	provide(func(db *postgres.DB) domain.PriceConfigStore {
		return postgres.NewPricingRepository(db)
	})
	provide(func(db *postgres.DB) domain.SettingsStore {
		return postgres.NewSettingsRepository(db)
	})
	provide(func(db *postgres.DB) domain.ProfileStore {
		return postgres.NewProfileRepository(db)
	})
	provide(func(db *postgres.DB) domain.PurchaseStore {
		return postgres.NewPurchaseRepository(db)
	})
	provide(func(db *postgres.DB) domain.RenderJobStore {
		return postgres.NewRenderJobRepository(db)
	})

	// Render progress cache
	provide(redisstore.NewClient)
	provide(func(client *goredis.Client) domain.ProgressStore {
		return redisstore.NewProgressStore(client)
	})

	// Payments
	provide(func(cfg *stripegw.Config) (domain.PaymentGateway, error) {
		return stripegw.NewGateway(*cfg)
	})

	// Speech synthesizers: unconfigured providers are skipped, the
	// render service rejects requests for providers it has no
	// synthesizer for.
	provide(func(openaiCfg *openaitts.Config, elevenCfg *elevenlabs.Config) ([]domain.SpeechSynthesizer, error) {
		var synths []domain.SpeechSynthesizer

		if openaiCfg.APIKey != "" {
			synth, err := openaitts.NewSynthesizer(*openaiCfg)
			if err != nil {
				return nil, err
			}
			synths = append(synths, synth)
		}

		if elevenCfg.APIKey != "" {
			synth, err := elevenlabs.NewSynthesizer(*elevenCfg)
			if err != nil {
				return nil, err
			}
			synths = append(synths, synth)
		}

		return synths, nil
	})

	// Domain Services
	provide(domain.NewPricingService)
	provide(domain.NewFFTierResolver)
	provide(domain.NewCheckoutService)
	provide(domain.NewRenderService)

	// HTTP Layer
	provide(func(cfg *config.RateLimitConfig) *ratelimit.Limiter {
		return ratelimit.New(cfg.Limit, time.Duration(cfg.WindowSeconds)*time.Second)
	})
	provide(func(corsCfg *config.CORSConfig, limiter *ratelimit.Limiter) middleware.Middleware {
		return middleware.BuildMiddlewareChain(corsCfg, limiter)
	})
	provide(http.NewHandler)
	provide(http.NewServer)

	return container
}
