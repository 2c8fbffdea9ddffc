package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AlchemyApps/mindScript-sub004/internal/observability"
)

const renderTimeout = 5 * time.Minute

// RenderRequest describes one track render.
type RenderRequest struct {
	TrackID       string        `json:"track_id"`
	UserID        string        `json:"user_id"`
	Script        string        `json:"script"`
	VoiceProvider VoiceProvider `json:"voice_provider"`
	Voice         string        `json:"voice"`
}

// RenderProgress is the polled state of a render job.
type RenderProgress struct {
	JobID   string       `json:"job_id"`
	Status  RenderStatus `json:"status"`
	Percent int          `json:"percent"`
}

// RenderService is a thin wrapper over the job-status table and the
// remote synthesizers: create a row, invoke the provider, update the
// row. There is no scheduler, no retry policy, and no concurrency
// coordination beyond one goroutine per job.
type RenderService struct {
	jobs     RenderJobStore
	progress ProgressStore
	synths   map[VoiceProvider]SpeechSynthesizer
}

// NewRenderService creates a render service from the available
// synthesizers (DI constructor).
func NewRenderService(jobs RenderJobStore, progress ProgressStore, synths []SpeechSynthesizer) *RenderService {
	byProvider := make(map[VoiceProvider]SpeechSynthesizer, len(synths))
	for _, s := range synths {
		if s != nil {
			byProvider[s.Provider()] = s
		}
	}

	return &RenderService{
		jobs:     jobs,
		progress: progress,
		synths:   byProvider,
	}
}

// Start creates a render job and kicks off synthesis in the background.
// The returned job is in the pending state; callers poll Progress.
func (s *RenderService) Start(ctx context.Context, req *RenderRequest) (*RenderJob, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Script == "" {
		return nil, errors.New("script cannot be empty")
	}

	synth, ok := s.synths[req.VoiceProvider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSynthesizerNotConfigured, req.VoiceProvider)
	}

	now := time.Now().UTC()
	job := &RenderJob{
		ID:            uuid.New().String(),
		TrackID:       req.TrackID,
		UserID:        req.UserID,
		VoiceProvider: req.VoiceProvider,
		Voice:         req.Voice,
		Script:        req.Script,
		Status:        RenderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create render job: %w", err)
	}

	// Detach from the request context: the render outlives the HTTP
	// request that started it.
	renderCtx := context.WithoutCancel(ctx)
	go s.run(renderCtx, job, synth)

	return job, nil
}

// run performs the synthesis for one job and records the outcome.
func (s *RenderService) run(ctx context.Context, job *RenderJob, synth SpeechSynthesizer) {
	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	logger := observability.FromContext(ctx).With(
		observability.String("job_id", job.ID),
		observability.String("provider", string(job.VoiceProvider)))

	s.setProgress(ctx, job.ID, 10)
	if err := s.jobs.SetStatus(ctx, job.ID, RenderStatusRendering, ""); err != nil {
		logger.Error("failed to mark job rendering", observability.Error(err))
	}

	audio, err := synth.Synthesize(ctx, SpeechRequest{Script: job.Script, Voice: job.Voice})
	if err != nil {
		logger.Error("synthesis failed", observability.Error(err))
		if statusErr := s.jobs.SetStatus(ctx, job.ID, RenderStatusFailed, err.Error()); statusErr != nil {
			logger.Error("failed to mark job failed", observability.Error(statusErr))
		}
		return
	}

	s.setProgress(ctx, job.ID, 90)

	if err := s.jobs.Complete(ctx, job.ID, audio); err != nil {
		logger.Error("failed to mark job complete", observability.Error(err))
		return
	}

	s.setProgress(ctx, job.ID, 100)
	logger.Info("render complete", observability.Int("audio_bytes", len(audio)))
}

// Progress returns the current status and progress percentage of a job.
// The progress store is consulted first; the job row is the fallback
// state of record.
func (s *RenderService) Progress(ctx context.Context, jobID string) (*RenderProgress, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	percent := 0
	switch job.Status {
	case RenderStatusComplete:
		percent = 100
	case RenderStatusFailed:
		percent = 0
	default:
		if p, ok, progressErr := s.progress.Get(ctx, jobID); progressErr == nil && ok {
			percent = p
		}
	}

	return &RenderProgress{
		JobID:   job.ID,
		Status:  job.Status,
		Percent: percent,
	}, nil
}

// Download returns the completed job including its rendered audio.
func (s *RenderService) Download(ctx context.Context, jobID string) (*RenderJob, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != RenderStatusComplete {
		return nil, fmt.Errorf("%w: job is %s", ErrRenderNotComplete, job.Status)
	}

	return job, nil
}

// setProgress records best-effort progress; failures only cost polling
// fidelity, never the render itself.
func (s *RenderService) setProgress(ctx context.Context, jobID string, percent int) {
	if s.progress == nil {
		return
	}

	if err := s.progress.Set(ctx, jobID, percent); err != nil {
		observability.FromContext(ctx).Warn("failed to record render progress",
			observability.String("job_id", jobID),
			observability.Error(err))
	}
}
