package domain

import "errors"

// ErrProfileNotFound indicates no profile row exists for a user.
var ErrProfileNotFound = errors.New("profile not found")

// ErrRenderJobNotFound indicates no render job row exists for an ID.
var ErrRenderJobNotFound = errors.New("render job not found")

// ErrRenderNotComplete indicates a download was requested before the
// job finished rendering.
var ErrRenderNotComplete = errors.New("render job not complete")

// ErrSynthesizerNotConfigured indicates no synthesizer is registered
// for the requested voice provider.
var ErrSynthesizerNotConfigured = errors.New("synthesizer not configured for provider")
