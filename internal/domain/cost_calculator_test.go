package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AlchemyApps/mindScript-sub004/internal/domain"
)

func TestCalculateAICost(t *testing.T) {
	tests := []struct {
		name          string
		input         domain.TrackCostInput
		expectedCents int64
	}{
		{
			name: "zero script length costs nothing",
			input: domain.TrackCostInput{
				ScriptLength:  0,
				VoiceProvider: domain.VoiceProviderOpenAI,
			},
			expectedCents: 0,
		},
		{
			name: "negative script length costs nothing",
			input: domain.TrackCostInput{
				ScriptLength:  -500,
				VoiceProvider: domain.VoiceProviderElevenLabs,
			},
			expectedCents: 0,
		},
		{
			name: "uploaded audio costs nothing regardless of length",
			input: domain.TrackCostInput{
				ScriptLength:  100000,
				VoiceProvider: domain.VoiceProviderUploaded,
			},
			expectedCents: 0,
		},
		{
			name: "unknown provider costs nothing",
			input: domain.TrackCostInput{
				ScriptLength:  5000,
				VoiceProvider: domain.VoiceProviderUnknown,
			},
			expectedCents: 0,
		},
		{
			name: "openai default rate rounds fractional cents up",
			input: domain.TrackCostInput{
				ScriptLength:  1000,
				VoiceProvider: domain.VoiceProviderOpenAI,
			},
			// 1000 chars * 1.5 mc = 1500 mc = 1.5 cents -> 2
			expectedCents: 2,
		},
		{
			name: "elevenlabs default rate with exact cent boundary",
			input: domain.TrackCostInput{
				ScriptLength:  100,
				VoiceProvider: domain.VoiceProviderElevenLabs,
			},
			// 100 chars * 30 mc = 3000 mc = 3 cents exactly
			expectedCents: 3,
		},
		{
			name: "single character still costs a whole cent",
			input: domain.TrackCostInput{
				ScriptLength:  1,
				VoiceProvider: domain.VoiceProviderElevenLabs,
			},
			// 30 mc = 0.03 cents -> rounds up to 1
			expectedCents: 1,
		},
		{
			name: "custom rates override defaults",
			input: domain.TrackCostInput{
				ScriptLength:  1000,
				VoiceProvider: domain.VoiceProviderOpenAI,
				CogsRates: &domain.CogsRates{
					ElevenLabsPerCharMillicents: decimal.NewFromInt(30),
					OpenAITTSPerCharMillicents:  decimal.NewFromInt(3),
				},
			},
			// 1000 chars * 3 mc = 3000 mc = 3 cents
			expectedCents: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown := domain.CalculateAICost(tt.input)

			require.Equal(t, tt.expectedCents, breakdown.TTSCents)
			require.Equal(t, tt.expectedCents, breakdown.TotalCents)
		})
	}
}

func TestCalculateAICost_TTSEqualsTotal(t *testing.T) {
	// No other cost component is modeled yet; the two fields must stay
	// in lockstep.
	for _, length := range []int64{1, 50, 999, 12345} {
		breakdown := domain.CalculateAICost(domain.TrackCostInput{
			ScriptLength:  length,
			VoiceProvider: domain.VoiceProviderElevenLabs,
		})
		require.Equal(t, breakdown.TTSCents, breakdown.TotalCents)
	}
}

func TestCalculateEditCost(t *testing.T) {
	t.Run("no new tts is always free", func(t *testing.T) {
		cost := domain.CalculateEditCost(domain.EditCostInput{
			RequiresNewTTS: false,
			ScriptLength:   100000,
			VoiceProvider:  domain.VoiceProviderElevenLabs,
		})
		require.Zero(t, cost)
	})

	t.Run("new tts matches the full generation cost", func(t *testing.T) {
		editCost := domain.CalculateEditCost(domain.EditCostInput{
			RequiresNewTTS: true,
			ScriptLength:   1000,
			VoiceProvider:  domain.VoiceProviderOpenAI,
		})

		fullCost := domain.CalculateAICost(domain.TrackCostInput{
			ScriptLength:  1000,
			VoiceProvider: domain.VoiceProviderOpenAI,
		})

		require.Equal(t, fullCost.TotalCents, editCost)
	})

	t.Run("new tts for uploaded audio is free", func(t *testing.T) {
		cost := domain.CalculateEditCost(domain.EditCostInput{
			RequiresNewTTS: true,
			ScriptLength:   5000,
			VoiceProvider:  domain.VoiceProviderUploaded,
		})
		require.Zero(t, cost)
	})
}

func TestParseVoiceProvider(t *testing.T) {
	tests := []struct {
		raw      string
		expected domain.VoiceProvider
	}{
		{"openai", domain.VoiceProviderOpenAI},
		{"elevenlabs", domain.VoiceProviderElevenLabs},
		{"uploaded", domain.VoiceProviderUploaded},
		{"", domain.VoiceProviderUnknown},
		{"google", domain.VoiceProviderUnknown},
		{"OpenAI", domain.VoiceProviderUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.expected, domain.ParseVoiceProvider(tt.raw))
		})
	}
}
