package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AlchemyApps/mindScript-sub004/internal/domain"
)

// fakePurchaseStore records created purchases in memory.
type fakePurchaseStore struct {
	created   []*domain.Purchase
	editCount int64
	createErr error
	countErr  error
}

func (f *fakePurchaseStore) Create(_ context.Context, purchase *domain.Purchase) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, purchase)
	return nil
}

func (f *fakePurchaseStore) CountEdits(_ context.Context, _, _ string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.editCount, nil
}

// fakePaymentGateway returns a canned session and records inputs.
type fakePaymentGateway struct {
	lastInput domain.CheckoutSessionInput
	err       error
}

func (f *fakePaymentGateway) CreateSession(_ context.Context, input domain.CheckoutSessionInput) (*domain.CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastInput = input
	return &domain.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.example/cs_test_123"}, nil
}

func newCheckoutService(
	priceValues map[string]float64,
	profiles *fakeProfileStore,
	purchases *fakePurchaseStore,
	payments *fakePaymentGateway,
) *domain.CheckoutService {
	pricing := domain.NewPricingServiceWithClock(
		&fakePriceStore{values: priceValues},
		&fakeSettingsStore{values: map[string]float64{}},
		time.Minute,
		time.Now,
	)

	return domain.NewCheckoutService(
		pricing,
		domain.NewFFTierResolver(profiles),
		purchases,
		payments,
		nil,
	)
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("exempt user gets a zero-charge purchase with COGS attached", func(t *testing.T) {
		purchases := &fakePurchaseStore{}
		payments := &fakePaymentGateway{}
		service := newCheckoutService(nil,
			&fakeProfileStore{tiers: map[string]domain.FFTier{"alice": domain.FFTierInnerCircle}},
			purchases, payments)

		result, err := service.Checkout(ctx, &domain.CheckoutRequest{
			UserID:        "alice",
			TrackID:       "track-1",
			ScriptLength:  1000,
			VoiceProvider: domain.VoiceProviderOpenAI,
			VoiceTier:     domain.VoiceTierIncluded,
		})
		require.NoError(t, err)

		require.True(t, result.Exempt)
		require.Equal(t, domain.FFTierInnerCircle, result.ExemptTier)
		require.Zero(t, result.TotalCents)
		require.EqualValues(t, 2, result.CogsCents) // 1000 chars at the default OpenAI rate
		require.Empty(t, result.SessionID)

		require.Len(t, purchases.created, 1)
		require.Zero(t, purchases.created[0].AmountCents)
		require.EqualValues(t, 2, purchases.created[0].CogsCents)
		require.Equal(t, domain.FFTierInnerCircle, purchases.created[0].FFTier)
	})

	t.Run("standard user gets a session with itemized pricing", func(t *testing.T) {
		purchases := &fakePurchaseStore{}
		payments := &fakePaymentGateway{}
		service := newCheckoutService(nil,
			&fakeProfileStore{tiers: map[string]domain.FFTier{}},
			purchases, payments)

		result, err := service.Checkout(ctx, &domain.CheckoutRequest{
			UserID:              "bob",
			TrackID:             "track-2",
			ScriptLength:        2000,
			VoiceProvider:       domain.VoiceProviderElevenLabs,
			VoiceTier:           domain.VoiceTierPremium,
			WithSolfeggio:       true,
			WithBackgroundTrack: true,
		})
		require.NoError(t, err)

		defaults := domain.DefaultPricingConfig()

		// Base + premium voice (medium bucket) + solfeggio + background.
		expectedTotal := defaults.BaseStandardCents +
			defaults.VoicePricingTiers[1].PriceCents +
			defaults.SolfeggioCents +
			defaults.StandardBgTrackCents

		require.False(t, result.Exempt)
		require.Equal(t, expectedTotal, result.TotalCents)
		require.Equal(t, "cs_test_123", result.SessionID)
		require.Len(t, result.LineItems, 4)

		require.Len(t, purchases.created, 1)
		require.Equal(t, expectedTotal, purchases.created[0].AmountCents)
		require.Equal(t, "cs_test_123", purchases.created[0].SessionID)

		// The session references the purchase for webhook reconciliation.
		require.Equal(t, purchases.created[0].ID, payments.lastInput.PurchaseID)
	})

	t.Run("intro offer applies on first purchase", func(t *testing.T) {
		purchases := &fakePurchaseStore{}
		service := newCheckoutService(nil,
			&fakeProfileStore{tiers: map[string]domain.FFTier{}},
			purchases, &fakePaymentGateway{})

		result, err := service.Checkout(ctx, &domain.CheckoutRequest{
			UserID:        "bob",
			TrackID:       "track-3",
			ScriptLength:  500,
			VoiceProvider: domain.VoiceProviderOpenAI,
			VoiceTier:     domain.VoiceTierIncluded,
			FirstPurchase: true,
		})
		require.NoError(t, err)
		require.Equal(t, domain.DefaultPricingConfig().BaseIntroCents, result.TotalCents)
	})

	t.Run("payment gateway failure surfaces and records nothing", func(t *testing.T) {
		purchases := &fakePurchaseStore{}
		service := newCheckoutService(nil,
			&fakeProfileStore{tiers: map[string]domain.FFTier{}},
			purchases, &fakePaymentGateway{err: errors.New("stripe unavailable")})

		_, err := service.Checkout(ctx, &domain.CheckoutRequest{
			UserID:        "bob",
			TrackID:       "track-4",
			ScriptLength:  500,
			VoiceProvider: domain.VoiceProviderOpenAI,
		})
		require.Error(t, err)
		require.Empty(t, purchases.created)
	})

	t.Run("missing identifiers are rejected", func(t *testing.T) {
		service := newCheckoutService(nil, &fakeProfileStore{}, &fakePurchaseStore{}, &fakePaymentGateway{})

		_, err := service.Checkout(ctx, nil)
		require.Error(t, err)

		_, err = service.Checkout(ctx, &domain.CheckoutRequest{TrackID: "t"})
		require.Error(t, err)

		_, err = service.Checkout(ctx, &domain.CheckoutRequest{UserID: "u"})
		require.Error(t, err)
	})
}

func TestCheckoutService_Eligibility(t *testing.T) {
	ctx := context.Background()

	service := newCheckoutService(
		map[string]float64{"base_intro_cents": 399},
		&fakeProfileStore{tiers: map[string]domain.FFTier{"alice": domain.FFTierCostPass}},
		&fakePurchaseStore{}, &fakePaymentGateway{})

	t.Run("member is exempt", func(t *testing.T) {
		result, err := service.Eligibility(ctx, "alice")
		require.NoError(t, err)
		require.True(t, result.Exempt)
		require.Equal(t, domain.FFTierCostPass, result.Tier)
		require.EqualValues(t, 399, result.BaseIntroCents)
	})

	t.Run("unknown user is not exempt", func(t *testing.T) {
		result, err := service.Eligibility(ctx, "nobody")
		require.NoError(t, err)
		require.False(t, result.Exempt)
	})
}

func TestCheckoutService_EditQuote(t *testing.T) {
	ctx := context.Background()
	defaults := domain.DefaultPricingConfig()

	t.Run("free while under the edit limit", func(t *testing.T) {
		service := newCheckoutService(nil, &fakeProfileStore{},
			&fakePurchaseStore{editCount: 0}, &fakePaymentGateway{})

		quote, err := service.EditQuote(ctx, &domain.EditQuoteRequest{
			UserID:         "bob",
			TrackID:        "track-1",
			RequiresNewTTS: true,
			ScriptLength:   1000,
			VoiceProvider:  domain.VoiceProviderOpenAI,
		})
		require.NoError(t, err)
		require.Zero(t, quote.FeeCents)
		require.EqualValues(t, 2, quote.CogsCents)
		require.Equal(t, defaults.FreeEditLimit, quote.FreeEditsRemaining)
	})

	t.Run("fee applies once free edits are exhausted", func(t *testing.T) {
		service := newCheckoutService(nil, &fakeProfileStore{},
			&fakePurchaseStore{editCount: defaults.FreeEditLimit}, &fakePaymentGateway{})

		quote, err := service.EditQuote(ctx, &domain.EditQuoteRequest{
			UserID:         "bob",
			TrackID:        "track-1",
			RequiresNewTTS: false,
			ScriptLength:   1000,
			VoiceProvider:  domain.VoiceProviderOpenAI,
		})
		require.NoError(t, err)
		require.Equal(t, defaults.EditFeeCents, quote.FeeCents)
		require.Zero(t, quote.CogsCents) // gain-only edit, no new synthesis
		require.Zero(t, quote.FreeEditsRemaining)
	})

	t.Run("exempt member never pays the edit fee", func(t *testing.T) {
		service := newCheckoutService(nil,
			&fakeProfileStore{tiers: map[string]domain.FFTier{"alice": domain.FFTierInnerCircle}},
			&fakePurchaseStore{editCount: 99}, &fakePaymentGateway{})

		quote, err := service.EditQuote(ctx, &domain.EditQuoteRequest{
			UserID:         "alice",
			TrackID:        "track-1",
			RequiresNewTTS: true,
			ScriptLength:   1000,
			VoiceProvider:  domain.VoiceProviderOpenAI,
		})
		require.NoError(t, err)
		require.Zero(t, quote.FeeCents)
		require.EqualValues(t, 2, quote.CogsCents)
	})
}
