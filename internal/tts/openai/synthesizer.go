// Package openai provides a speech synthesizer backed by the OpenAI
// text-to-speech API using the official SDK.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/AlchemyApps/mindScript-sub004/internal/domain"
)

// Config holds OpenAI TTS settings.
type Config struct {
	APIKey     string `env:"OPENAI_API_KEY"`
	Model      string `env:"OPENAI_TTS_MODEL"       envDefault:"tts-1"`
	Timeout    int    `env:"OPENAI_TTS_TIMEOUT"     envDefault:"120"`
	MaxRetries int    `env:"OPENAI_TTS_MAX_RETRIES" envDefault:"2"`
}

// Synthesizer implements domain.SpeechSynthesizer for OpenAI.
type Synthesizer struct {
	client openai.Client
	model  string
}

// NewSynthesizer creates an OpenAI speech synthesizer.
func NewSynthesizer(config Config) (*Synthesizer, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	model := config.Model
	if model == "" {
		model = string(openai.SpeechModelTTS1)
	}

	return &Synthesizer{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Synthesize renders the script into audio bytes.
func (s *Synthesizer) Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error) {
	if req.Script == "" {
		return nil, errors.New("script cannot be empty")
	}

	//nolint:exhaustruct // OpenAI SDK struct has many optional fields
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: openai.SpeechModel(s.model),
		Input: req.Script,
		Voice: toVoice(req.Voice),
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS call failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}

	return audio, nil
}

// Provider returns the provider identifier.
func (s *Synthesizer) Provider() domain.VoiceProvider {
	return domain.VoiceProviderOpenAI
}

// toVoice maps a stored voice name to an SDK voice, defaulting to alloy.
func toVoice(voice string) openai.AudioSpeechNewParamsVoice {
	switch voice {
	case "alloy", "echo", "fable", "onyx", "nova", "shimmer":
		return openai.AudioSpeechNewParamsVoice(voice)
	default:
		return openai.AudioSpeechNewParamsVoiceAlloy
	}
}
