package domain

import "github.com/shopspring/decimal"

// Keys of the pricing-configuration table. The admin UI writes these out
// of band; this slice only reads them.
const (
	keyBaseIntroCents       = "base_intro_cents"
	keyBaseStandardCents    = "base_standard_cents"
	keySolfeggioCents       = "solfeggio_cents"
	keyBinauralCents        = "binaural_cents"
	keyVoiceCloneFeeCents   = "voice_clone_fee_cents"
	keyStandardBgTrackCents = "standard_bg_track_cents"
	keyElevenLabsMillicents = "elevenlabs_cost_per_char_millicents"
	keyOpenAITTSMillicents  = "openai_tts_cost_per_char_millicents"

	keyTierShortMaxChars    = "voice_tier_short_max_chars"
	keyTierShortCents       = "voice_tier_short_cents"
	keyTierMediumMaxChars   = "voice_tier_medium_max_chars"
	keyTierMediumCents      = "voice_tier_medium_cents"
	keyTierLongMaxChars     = "voice_tier_long_max_chars"
	keyTierLongCents        = "voice_tier_long_cents"
	keyTierExtendedMaxChars = "voice_tier_extended_max_chars"
	keyTierExtendedCents    = "voice_tier_extended_cents"
)

// Keys of the general admin-settings table.
const (
	// SettingEditFeeCents is the admin-settings key for the re-render fee.
	SettingEditFeeCents = "edit_fee_cents"

	// SettingFreeEditLimit is the admin-settings key for the number of
	// free edits per track.
	SettingFreeEditLimit = "free_edit_limit"
)

// Hardcoded fallback defaults. A snapshot is always fully populated:
// every field missing from the backing tables falls back to one of these.
const (
	defaultBaseIntroCents       = 499
	defaultBaseStandardCents    = 999
	defaultSolfeggioCents       = 299
	defaultBinauralCents        = 299
	defaultEditFeeCents         = 199
	defaultFreeEditLimit        = 2
	defaultVoiceCloneFeeCents   = 2999
	defaultStandardBgTrackCents = 199

	defaultTierShortMaxChars    = 1500
	defaultTierShortCents       = 100
	defaultTierMediumMaxChars   = 3000
	defaultTierMediumCents      = 200
	defaultTierLongMaxChars     = 6000
	defaultTierLongCents        = 300
	defaultTierExtendedMaxChars = 12000
	defaultTierExtendedCents    = 500
)

// Default COGS rates in millicents per character.
// ElevenLabs: 30 mc/char ~ $0.30 per 1K characters.
// OpenAI TTS: 1.5 mc/char ~ $15 per 1M characters.
var (
	defaultElevenLabsMillicents = decimal.NewFromInt(30)
	defaultOpenAITTSMillicents  = decimal.NewFromFloat(1.5)
)

// DefaultPricingConfig returns the all-defaults price list used when the
// backing tables are unreachable or a key is unset.
func DefaultPricingConfig() *PricingConfig {
	return mergePricingConfig(nil, nil)
}

// mergePricingConfig assembles a guaranteed-total PricingConfig from two
// partial key -> value maps, falling back to the hardcoded default for
// every absent key. Centralizing the fallback here keeps the "every
// field has a default" invariant enforced in one place.
func mergePricingConfig(prices, settings map[string]float64) *PricingConfig {
	return &PricingConfig{
		BaseIntroCents:       lookupCents(prices, keyBaseIntroCents, defaultBaseIntroCents),
		BaseStandardCents:    lookupCents(prices, keyBaseStandardCents, defaultBaseStandardCents),
		SolfeggioCents:       lookupCents(prices, keySolfeggioCents, defaultSolfeggioCents),
		BinauralCents:        lookupCents(prices, keyBinauralCents, defaultBinauralCents),
		EditFeeCents:         lookupCents(settings, SettingEditFeeCents, defaultEditFeeCents),
		FreeEditLimit:        lookupCents(settings, SettingFreeEditLimit, defaultFreeEditLimit),
		VoiceCloneFeeCents:   lookupCents(prices, keyVoiceCloneFeeCents, defaultVoiceCloneFeeCents),
		StandardBgTrackCents: lookupCents(prices, keyStandardBgTrackCents, defaultStandardBgTrackCents),
		VoicePricingTiers: []VoicePricingTier{
			{
				Name:       "short",
				MaxChars:   lookupCents(prices, keyTierShortMaxChars, defaultTierShortMaxChars),
				PriceCents: lookupCents(prices, keyTierShortCents, defaultTierShortCents),
			},
			{
				Name:       "medium",
				MaxChars:   lookupCents(prices, keyTierMediumMaxChars, defaultTierMediumMaxChars),
				PriceCents: lookupCents(prices, keyTierMediumCents, defaultTierMediumCents),
			},
			{
				Name:       "long",
				MaxChars:   lookupCents(prices, keyTierLongMaxChars, defaultTierLongMaxChars),
				PriceCents: lookupCents(prices, keyTierLongCents, defaultTierLongCents),
			},
			{
				Name:       "extended",
				MaxChars:   lookupCents(prices, keyTierExtendedMaxChars, defaultTierExtendedMaxChars),
				PriceCents: lookupCents(prices, keyTierExtendedCents, defaultTierExtendedCents),
			},
		},
		CogsRates: CogsRates{
			ElevenLabsPerCharMillicents: lookupRate(prices, keyElevenLabsMillicents, defaultElevenLabsMillicents),
			OpenAITTSPerCharMillicents:  lookupRate(prices, keyOpenAITTSMillicents, defaultOpenAITTSMillicents),
		},
	}
}

// lookupCents reads a whole-cent value from a partial map with fallback.
func lookupCents(m map[string]float64, key string, fallback int64) int64 {
	if v, ok := m[key]; ok {
		return int64(v)
	}
	return fallback
}

// lookupRate reads a millicent rate from a partial map with fallback.
// Rates may be fractional (1.5 mc/char), so they stay decimal.
func lookupRate(m map[string]float64, key string, fallback decimal.Decimal) decimal.Decimal {
	if v, ok := m[key]; ok {
		return decimal.NewFromFloat(v)
	}
	return fallback
}
