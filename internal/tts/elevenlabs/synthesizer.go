// Package elevenlabs provides a speech synthesizer backed by the
// ElevenLabs text-to-speech HTTP API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AlchemyApps/mindScript-sub004/internal/domain"
)

const defaultBaseURL = "https://api.elevenlabs.io/v1"

// Config holds ElevenLabs API settings.
type Config struct {
	APIKey  string `env:"ELEVENLABS_API_KEY"`
	BaseURL string `env:"ELEVENLABS_BASE_URL" envDefault:"https://api.elevenlabs.io/v1"`
	ModelID string `env:"ELEVENLABS_MODEL_ID" envDefault:"eleven_multilingual_v2"`
	Timeout int    `env:"ELEVENLABS_TIMEOUT"  envDefault:"120"`
}

// Synthesizer implements domain.SpeechSynthesizer for ElevenLabs.
type Synthesizer struct {
	apiKey     string
	baseURL    string
	modelID    string
	httpClient *http.Client
}

// NewSynthesizer creates an ElevenLabs speech synthesizer.
func NewSynthesizer(config Config) (*Synthesizer, error) {
	if config.APIKey == "" {
		return nil, errors.New("ElevenLabs API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Synthesizer{
		apiKey:  config.APIKey,
		baseURL: baseURL,
		modelID: config.ModelID,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}, nil
}

type speechRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id,omitempty"`
}

// Synthesize renders the script into audio bytes. The voice field is
// the ElevenLabs voice ID.
func (s *Synthesizer) Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error) {
	if req.Script == "" {
		return nil, errors.New("script cannot be empty")
	}
	if req.Voice == "" {
		return nil, errors.New("voice ID is required")
	}

	reqBody, err := json.Marshal(speechRequest{
		Text:    req.Script,
		ModelID: s.modelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/text-to-speech/"+req.Voice,
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}

	return audio, nil
}

// Provider returns the provider identifier.
func (s *Synthesizer) Provider() domain.VoiceProvider {
	return domain.VoiceProviderElevenLabs
}
