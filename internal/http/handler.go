package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/AlchemyApps/mindScript-sub004/internal/domain"
	"github.com/AlchemyApps/mindScript-sub004/internal/observability"
)

// Handler handles HTTP requests.
type Handler struct {
	checkout *domain.CheckoutService
	render   *domain.RenderService
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(checkout *domain.CheckoutService, render *domain.RenderService) *Handler {
	return &Handler{
		checkout: checkout,
		render:   render,
	}
}

// HandleCheckout creates a checkout session for a track purchase.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.VoiceProvider = domain.ParseVoiceProvider(string(req.VoiceProvider))

	ctx = observability.WithUserID(ctx, req.UserID)
	ctx = observability.WithProvider(ctx, string(req.VoiceProvider))

	logger := observability.FromContext(ctx)
	logger.Info("checkout request received",
		observability.String("track_id", req.TrackID),
		observability.Int64("script_length", req.ScriptLength),
	)

	result, err := h.checkout.Checkout(ctx, &req)
	if err != nil {
		logger.Error("checkout failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, result)
}

// HandleEligibility reports whether the acting user is exempt from
// charges, alongside the current price points.
func (h *Handler) HandleEligibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	ctx = observability.WithUserID(ctx, userID)

	result, err := h.checkout.Eligibility(ctx, userID)
	if err != nil {
		observability.FromContext(ctx).Error("eligibility check failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, result)
}

// HandleEditQuote prices a proposed track edit.
func (h *Handler) HandleEditQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.EditQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.VoiceProvider = domain.ParseVoiceProvider(string(req.VoiceProvider))

	ctx = observability.WithUserID(ctx, req.UserID)

	quote, err := h.checkout.EditQuote(ctx, &req)
	if err != nil {
		observability.FromContext(ctx).Error("edit quote failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, quote)
}

// HandleRender starts a render job.
func (h *Handler) HandleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.VoiceProvider = domain.ParseVoiceProvider(string(req.VoiceProvider))

	ctx = observability.WithUserID(ctx, req.UserID)
	ctx = observability.WithProvider(ctx, string(req.VoiceProvider))

	job, err := h.render.Start(ctx, &req)
	if err != nil {
		logger := observability.FromContext(ctx)
		if errors.Is(err, domain.ErrSynthesizerNotConfigured) {
			logger.Warn("render rejected", observability.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("render start failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(job); err != nil {
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(err))
	}
}

// HandleRenderProgress reports the status and progress of a render job.
func (h *Handler) HandleRenderProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	progress, err := h.render.Progress(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrRenderJobNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		observability.FromContext(ctx).Error("progress lookup failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, progress)
}

// HandleRenderDownload serves the rendered audio of a completed job.
func (h *Handler) HandleRenderDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	job, err := h.render.Download(ctx, r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRenderJobNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrRenderNotComplete):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			observability.FromContext(ctx).Error("download failed", observability.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", job.ID+".mp3"))
	if _, err := w.Write(job.Audio); err != nil {
		observability.FromContext(ctx).Error("failed to write audio", observability.Error(err))
	}
}

// HandleHealth responds to health checks.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// writeJSON encodes a response body, logging encode failures.
func writeJSON(ctx context.Context, w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(err))
	}
}
