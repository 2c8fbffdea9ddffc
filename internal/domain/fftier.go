package domain

import (
	"context"
	"errors"

	"github.com/AlchemyApps/mindScript-sub004/internal/observability"
)

// FFTierResolver looks up a user's Friends & Family tier. It performs no
// caching: the lookup runs once per checkout-adjacent request and must
// reflect the latest written value.
type FFTierResolver struct {
	profiles ProfileStore
}

// NewFFTierResolver creates a tier resolver (DI constructor).
func NewFFTierResolver(profiles ProfileStore) *FFTierResolver {
	return &FFTierResolver{profiles: profiles}
}

// Resolve returns the user's tier. A read failure or missing profile row
// is indistinguishable from "not a member": ambiguity must never grant a
// billing exemption, so both yield FFTierNone.
func (r *FFTierResolver) Resolve(ctx context.Context, userID string) FFTier {
	if userID == "" {
		return FFTierNone
	}

	tier, err := r.profiles.FFTier(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			observability.FromContext(ctx).Warn("ff tier lookup failed, treating as non-member",
				observability.String("user_id", userID),
				observability.Error(err))
		}
		return FFTierNone
	}

	switch tier {
	case FFTierInnerCircle, FFTierCostPass:
		return tier
	default:
		return FFTierNone
	}
}
