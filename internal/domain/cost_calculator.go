package domain

import "github.com/shopspring/decimal"

const millicentsPerCent = 1000

// CalculateAICost computes the COGS of one text-to-speech generation.
// It is pure and cannot fail: uploaded audio, empty scripts, and
// unrecognized providers all yield a zero breakdown rather than an
// error. Fractional cents round up so COGS is never under-reported.
func CalculateAICost(input TrackCostInput) CostBreakdown {
	if input.ScriptLength <= 0 || input.VoiceProvider == VoiceProviderUploaded {
		return CostBreakdown{}
	}

	rates := input.CogsRates
	if rates == nil {
		rates = &DefaultPricingConfig().CogsRates
	}

	var perCharMillicents decimal.Decimal
	switch input.VoiceProvider {
	case VoiceProviderOpenAI:
		perCharMillicents = rates.OpenAITTSPerCharMillicents
	case VoiceProviderElevenLabs:
		perCharMillicents = rates.ElevenLabsPerCharMillicents
	default:
		// Closed allow-list: an unrecognized provider fails safe with
		// zero cost, never a bogus charge.
		return CostBreakdown{}
	}

	cents := decimal.NewFromInt(input.ScriptLength).
		Mul(perCharMillicents).
		Div(decimal.NewFromInt(millicentsPerCent)).
		Ceil().
		IntPart()

	return CostBreakdown{
		TTSCents:   cents,
		TotalCents: cents,
	}
}

// CalculateEditCost returns the COGS in cents of one track edit. Only
// edits that re-synthesize speech incur new spend; gain, effect, and
// loop changes operate on already-rendered audio and cost nothing.
func CalculateEditCost(input EditCostInput) int64 {
	if !input.RequiresNewTTS {
		return 0
	}

	return CalculateAICost(TrackCostInput{
		ScriptLength:  input.ScriptLength,
		VoiceProvider: input.VoiceProvider,
	}).TotalCents
}
