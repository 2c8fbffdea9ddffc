package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AlchemyApps/mindScript-sub004/internal/observability"
)

// CheckoutRequest describes one track purchase.
type CheckoutRequest struct {
	UserID              string        `json:"user_id"`
	TrackID             string        `json:"track_id"`
	ScriptLength        int64         `json:"script_length"`
	VoiceProvider       VoiceProvider `json:"voice_provider"`
	VoiceTier           VoiceTier     `json:"voice_tier"`
	FirstPurchase       bool          `json:"first_purchase"`
	WithSolfeggio       bool          `json:"with_solfeggio"`
	WithBinaural        bool          `json:"with_binaural"`
	WithBackgroundTrack bool          `json:"with_background_track"`
	SuccessURL          string        `json:"success_url"`
	CancelURL           string        `json:"cancel_url"`
}

// CheckoutResult is the outcome of a checkout: either a payment session
// to redirect to, or an exempt zero-charge purchase.
type CheckoutResult struct {
	PurchaseID string     `json:"purchase_id"`
	Exempt     bool       `json:"exempt"`
	ExemptTier FFTier     `json:"exempt_tier,omitempty"`
	TotalCents int64      `json:"total_cents"`
	CogsCents  int64      `json:"cogs_cents"`
	LineItems  []LineItem `json:"line_items,omitempty"`
	SessionID  string     `json:"session_id,omitempty"`
	SessionURL string     `json:"session_url,omitempty"`
}

// EligibilityResult reports whether a user is exempt from charges, with
// the current price points for display.
type EligibilityResult struct {
	Exempt            bool   `json:"exempt"`
	Tier              FFTier `json:"tier,omitempty"`
	BaseIntroCents    int64  `json:"base_intro_cents"`
	BaseStandardCents int64  `json:"base_standard_cents"`
	EditFeeCents      int64  `json:"edit_fee_cents"`
	FreeEditLimit     int64  `json:"free_edit_limit"`
}

// EditQuoteRequest describes one proposed track edit.
type EditQuoteRequest struct {
	UserID         string        `json:"user_id"`
	TrackID        string        `json:"track_id"`
	RequiresNewTTS bool          `json:"requires_new_tts"`
	ScriptLength   int64         `json:"script_length"`
	VoiceProvider  VoiceProvider `json:"voice_provider"`
}

// EditQuote is the fee and COGS for one proposed edit.
type EditQuote struct {
	FeeCents           int64 `json:"fee_cents"`
	CogsCents          int64 `json:"cogs_cents"`
	FreeEditsRemaining int64 `json:"free_edits_remaining"`
}

// CheckoutService composes the pricing snapshot, the F&F exemption
// check, and the COGS calculation into purchase records and payment
// sessions. The three underlying pieces never call each other.
type CheckoutService struct {
	pricing   *PricingService
	tiers     *FFTierResolver
	purchases PurchaseStore
	payments  PaymentGateway
	events    EventPublisher
}

// NewCheckoutService creates a checkout service (DI constructor).
func NewCheckoutService(
	pricing *PricingService,
	tiers *FFTierResolver,
	purchases PurchaseStore,
	payments PaymentGateway,
	events EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		pricing:   pricing,
		tiers:     tiers,
		purchases: purchases,
		payments:  payments,
		events:    events,
	}
}

// Checkout prices a track purchase and either records it directly (F&F
// exempt users) or creates a payment session for it. COGS is attached to
// the purchase record either way, for margin reporting.
func (s *CheckoutService) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.UserID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	if req.TrackID == "" {
		return nil, errors.New("track ID cannot be empty")
	}

	cfg := s.pricing.GetConfig(ctx)
	tier := s.tiers.Resolve(ctx, req.UserID)

	cogs := CalculateAICost(TrackCostInput{
		ScriptLength:  req.ScriptLength,
		VoiceProvider: req.VoiceProvider,
		CogsRates:     &cfg.CogsRates,
	})

	logger := observability.FromContext(ctx)

	purchase := &Purchase{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		TrackID:   req.TrackID,
		Kind:      PurchaseKindTrack,
		CogsCents: cogs.TotalCents,
		FFTier:    tier,
		CreatedAt: time.Now().UTC(),
	}

	if tier.IsExempt() {
		if err := s.purchases.Create(ctx, purchase); err != nil {
			return nil, fmt.Errorf("failed to record exempt purchase: %w", err)
		}

		logger.Info("exempt checkout recorded",
			observability.String("purchase_id", purchase.ID),
			observability.String("ff_tier", string(tier)),
			observability.Int64("cogs_cents", cogs.TotalCents))

		s.publish(ctx, "purchase_recorded", purchase)

		return &CheckoutResult{
			PurchaseID: purchase.ID,
			Exempt:     true,
			ExemptTier: tier,
			CogsCents:  cogs.TotalCents,
		}, nil
	}

	lineItems := buildLineItems(req, cfg)
	total := int64(0)
	for _, item := range lineItems {
		total += item.AmountCents
	}

	session, err := s.payments.CreateSession(ctx, CheckoutSessionInput{
		PurchaseID: purchase.ID,
		UserID:     req.UserID,
		LineItems:  lineItems,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment session: %w", err)
	}

	purchase.AmountCents = total
	purchase.SessionID = session.ID
	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	logger.Info("checkout session created",
		observability.String("purchase_id", purchase.ID),
		observability.String("session_id", session.ID),
		observability.Int64("total_cents", total),
		observability.Int64("cogs_cents", cogs.TotalCents))

	s.publish(ctx, "purchase_recorded", purchase)

	return &CheckoutResult{
		PurchaseID: purchase.ID,
		TotalCents: total,
		CogsCents:  cogs.TotalCents,
		LineItems:  lineItems,
		SessionID:  session.ID,
		SessionURL: session.URL,
	}, nil
}

// Eligibility reports whether the user is exempt from charges, alongside
// the current price points.
func (s *CheckoutService) Eligibility(ctx context.Context, userID string) (*EligibilityResult, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	cfg := s.pricing.GetConfig(ctx)
	tier := s.tiers.Resolve(ctx, userID)

	return &EligibilityResult{
		Exempt:            tier.IsExempt(),
		Tier:              tier,
		BaseIntroCents:    cfg.BaseIntroCents,
		BaseStandardCents: cfg.BaseStandardCents,
		EditFeeCents:      cfg.EditFeeCents,
		FreeEditLimit:     cfg.FreeEditLimit,
	}, nil
}

// EditQuote prices one proposed track edit. Edits are free while the
// user is under the free-edit limit or exempt; afterwards the flat edit
// fee applies. COGS accrues only when the edit re-synthesizes speech.
func (s *CheckoutService) EditQuote(ctx context.Context, req *EditQuoteRequest) (*EditQuote, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.UserID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	cfg := s.pricing.GetConfig(ctx)
	tier := s.tiers.Resolve(ctx, req.UserID)

	cogs := CalculateEditCost(EditCostInput{
		RequiresNewTTS: req.RequiresNewTTS,
		ScriptLength:   req.ScriptLength,
		VoiceProvider:  req.VoiceProvider,
	})

	editsUsed, err := s.purchases.CountEdits(ctx, req.UserID, req.TrackID)
	if err != nil {
		return nil, fmt.Errorf("failed to count edits: %w", err)
	}

	remaining := cfg.FreeEditLimit - editsUsed
	if remaining < 0 {
		remaining = 0
	}

	fee := cfg.EditFeeCents
	if tier.IsExempt() || remaining > 0 {
		fee = 0
	}

	return &EditQuote{
		FeeCents:           fee,
		CogsCents:          cogs,
		FreeEditsRemaining: remaining,
	}, nil
}

// publish emits an observability event for a recorded purchase.
func (s *CheckoutService) publish(ctx context.Context, eventType string, p *Purchase) {
	if s.events == nil {
		return
	}

	s.events.Publish(ctx, eventType, map[string]interface{}{
		"purchase_id":  p.ID,
		"user_id":      p.UserID,
		"track_id":     p.TrackID,
		"amount_cents": p.AmountCents,
		"cogs_cents":   p.CogsCents,
		"ff_tier":      string(p.FFTier),
	})
}

// buildLineItems assembles the payment line items for a non-exempt
// purchase from the current price list.
func buildLineItems(req *CheckoutRequest, cfg *PricingConfig) []LineItem {
	var items []LineItem

	base := cfg.BaseStandardCents
	name := "Personalized track"
	if req.FirstPurchase {
		base = cfg.BaseIntroCents
		name = "Personalized track (intro offer)"
	}
	items = append(items, LineItem{Name: name, AmountCents: base})

	if fee := CalculateDynamicVoiceFee(req.ScriptLength, req.VoiceTier, cfg.VoicePricingTiers); fee > 0 {
		items = append(items, LineItem{Name: "Premium voice", AmountCents: fee})
	}

	if req.WithSolfeggio {
		items = append(items, LineItem{Name: "Solfeggio layer", AmountCents: cfg.SolfeggioCents})
	}

	if req.WithBinaural {
		items = append(items, LineItem{Name: "Binaural layer", AmountCents: cfg.BinauralCents})
	}

	if req.WithBackgroundTrack {
		items = append(items, LineItem{Name: "Background music", AmountCents: cfg.StandardBgTrackCents})
	}

	return items
}
