package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoiceProvider identifies the speech-synthesis backend for a track.
// It is a closed set: anything that does not parse to a known provider
// becomes VoiceProviderUnknown and incurs zero generation cost.
type VoiceProvider string

const (
	VoiceProviderOpenAI     VoiceProvider = "openai"
	VoiceProviderElevenLabs VoiceProvider = "elevenlabs"
	VoiceProviderUploaded   VoiceProvider = "uploaded"
	VoiceProviderUnknown    VoiceProvider = "unknown"
)

// ParseVoiceProvider maps a raw provider string onto the closed enum.
func ParseVoiceProvider(raw string) VoiceProvider {
	switch VoiceProvider(raw) {
	case VoiceProviderOpenAI, VoiceProviderElevenLabs, VoiceProviderUploaded:
		return VoiceProvider(raw)
	default:
		return VoiceProviderUnknown
	}
}

// VoiceTier classifies a voice for pricing purposes.
type VoiceTier string

const (
	VoiceTierIncluded VoiceTier = "included"
	VoiceTierPremium  VoiceTier = "premium"
	VoiceTierCustom   VoiceTier = "custom"
)

// FFTier is the Friends & Family membership tier on a user profile.
// Both non-empty values exempt the user from charges; they differ only
// in downstream reporting labels.
type FFTier string

const (
	FFTierNone        FFTier = ""
	FFTierInnerCircle FFTier = "inner_circle"
	FFTierCostPass    FFTier = "cost_pass"
)

// IsExempt reports whether the tier waives charges.
func (t FFTier) IsExempt() bool {
	return t == FFTierInnerCircle || t == FFTierCostPass
}

// CogsRates holds admin-tunable per-character generation rates, expressed
// in millicents (1/1000 of a cent) per character.
type CogsRates struct {
	ElevenLabsPerCharMillicents decimal.Decimal
	OpenAITTSPerCharMillicents  decimal.Decimal
}

// VoicePricingTier is one script-length bucket of the premium-voice
// pricing ladder.
type VoicePricingTier struct {
	Name       string `json:"name"`
	MaxChars   int64  `json:"max_chars"`
	PriceCents int64  `json:"price_cents"`
}

// PricingConfig is the authoritative price list at a point in time.
// Snapshots are immutable: every refresh builds a new value and every
// field is always populated (missing rows fall back field-by-field).
type PricingConfig struct {
	BaseIntroCents       int64
	BaseStandardCents    int64
	SolfeggioCents       int64
	BinauralCents        int64
	EditFeeCents         int64
	FreeEditLimit        int64
	VoiceCloneFeeCents   int64
	StandardBgTrackCents int64
	VoicePricingTiers    []VoicePricingTier
	CogsRates            CogsRates
}

// TrackCostInput is the request shape for a COGS computation. CogsRates
// may be nil, in which case the hardcoded default rates apply.
type TrackCostInput struct {
	ScriptLength  int64
	VoiceProvider VoiceProvider
	CogsRates     *CogsRates
}

// EditCostInput describes a track edit for COGS purposes.
type EditCostInput struct {
	RequiresNewTTS bool
	ScriptLength   int64
	VoiceProvider  VoiceProvider
}

// CostBreakdown is the COGS attributable to one text-to-speech
// generation. TTSCents and TotalCents are currently equal; they are kept
// separate so future cost components (mixing, storage) can be added
// without an interface change.
type CostBreakdown struct {
	TTSCents   int64 `json:"tts_cents"`
	TotalCents int64 `json:"total_cents"`
}

// PurchaseKind distinguishes first-render purchases from paid edits.
type PurchaseKind string

const (
	PurchaseKindTrack PurchaseKind = "track"
	PurchaseKindEdit  PurchaseKind = "edit"
)

// Purchase is the record attached to a completed or exempt checkout.
// CogsCents is kept for margin reporting.
type Purchase struct {
	ID          string       `db:"id"           json:"id"`
	UserID      string       `db:"user_id"      json:"user_id"`
	TrackID     string       `db:"track_id"     json:"track_id"`
	Kind        PurchaseKind `db:"kind"         json:"kind"`
	AmountCents int64        `db:"amount_cents" json:"amount_cents"`
	CogsCents   int64        `db:"cogs_cents"   json:"cogs_cents"`
	FFTier      FFTier       `db:"ff_tier"      json:"ff_tier,omitempty"`
	SessionID   string       `db:"session_id"   json:"session_id,omitempty"`
	CreatedAt   time.Time    `db:"created_at"   json:"created_at"`
	PaidAt      *time.Time   `db:"paid_at"      json:"paid_at,omitempty"`
}

// RenderStatus is the lifecycle state of a render job.
type RenderStatus string

const (
	RenderStatusPending   RenderStatus = "pending"
	RenderStatusRendering RenderStatus = "rendering"
	RenderStatusComplete  RenderStatus = "complete"
	RenderStatusFailed    RenderStatus = "failed"
)

// RenderJob is one row of the job-status table.
type RenderJob struct {
	ID            string        `db:"id"             json:"id"`
	TrackID       string        `db:"track_id"       json:"track_id"`
	UserID        string        `db:"user_id"        json:"user_id"`
	VoiceProvider VoiceProvider `db:"voice_provider" json:"voice_provider"`
	Voice         string        `db:"voice"          json:"voice"`
	Script        string        `db:"script"         json:"-"`
	Status        RenderStatus  `db:"status"         json:"status"`
	Error         string        `db:"error"          json:"error,omitempty"`
	Audio         []byte        `db:"audio"          json:"-"`
	CreatedAt     time.Time     `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"     json:"updated_at"`
}

// LineItem is one payment-provider line item of a checkout session.
type LineItem struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
}

// CheckoutSession is the payment-provider session handed back to the
// client for redirect.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
