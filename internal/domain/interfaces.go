package domain

import "context"

// PriceConfigStore reads the admin-managed price-configuration table.
type PriceConfigStore interface {
	// ActiveValues returns key -> numeric value for all active rows.
	ActiveValues(ctx context.Context) (map[string]float64, error)
}

// SettingsStore reads named rows from the general admin-settings table.
type SettingsStore interface {
	// Values returns key -> numeric value for the requested keys.
	// Missing keys are simply absent from the result.
	Values(ctx context.Context, keys ...string) (map[string]float64, error)
}

// ProfileStore looks up user-profile fields.
type ProfileStore interface {
	// FFTier returns the Friends & Family tier for a user.
	// Returns ErrProfileNotFound when no profile row exists.
	FFTier(ctx context.Context, userID string) (FFTier, error)
}

// PurchaseStore persists purchase records for margin reporting.
type PurchaseStore interface {
	// Create inserts a purchase row.
	Create(ctx context.Context, purchase *Purchase) error

	// CountEdits returns the number of paid-or-free edit purchases a user
	// has made against a track.
	CountEdits(ctx context.Context, userID, trackID string) (int64, error)
}

// RenderJobStore persists render job state.
type RenderJobStore interface {
	// Create inserts a new job row.
	Create(ctx context.Context, job *RenderJob) error

	// Get retrieves a job row by ID. Returns ErrRenderJobNotFound when
	// no row exists.
	Get(ctx context.Context, id string) (*RenderJob, error)

	// SetStatus updates the job status and error message.
	SetStatus(ctx context.Context, id string, status RenderStatus, errMsg string) error

	// Complete marks the job complete and stores the rendered audio.
	Complete(ctx context.Context, id string, audio []byte) error
}

// ProgressStore tracks render progress percentages. Progress is
// ephemeral polling state, not the state of record.
type ProgressStore interface {
	// Set records the progress percentage for a job.
	Set(ctx context.Context, jobID string, percent int) error

	// Get returns the progress percentage for a job, and whether any
	// progress has been recorded.
	Get(ctx context.Context, jobID string) (int, bool, error)
}

// SpeechRequest describes one text-to-speech invocation.
type SpeechRequest struct {
	Script string
	Voice  string
}

// SpeechSynthesizer renders a script into audio via a remote provider.
type SpeechSynthesizer interface {
	// Synthesize returns the rendered audio bytes.
	Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error)

	// Provider returns the provider this synthesizer serves.
	Provider() VoiceProvider
}

// CheckoutSessionInput is the provider-agnostic request for a payment
// session.
type CheckoutSessionInput struct {
	PurchaseID string
	UserID     string
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

// PaymentGateway creates payment sessions with the payment provider.
type PaymentGateway interface {
	// CreateSession creates a hosted checkout session.
	CreateSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
