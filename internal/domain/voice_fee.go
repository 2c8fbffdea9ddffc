package domain

// CalculateDynamicVoiceFee returns the per-track fee in cents for a
// non-included voice, using the stepped pricing ladder from the current
// PricingConfig. Included-tier voices are bundled into the base track
// price. The buckets are walked in ascending MaxChars order; a script
// longer than every bucket pays the final (extended) bucket price, which
// is the overflow catch-all.
func CalculateDynamicVoiceFee(scriptLength int64, tier VoiceTier, tiers []VoicePricingTier) int64 {
	if tier == VoiceTierIncluded {
		return 0
	}

	if len(tiers) == 0 {
		return 0
	}

	for _, bucket := range tiers {
		if scriptLength <= bucket.MaxChars {
			return bucket.PriceCents
		}
	}

	return tiers[len(tiers)-1].PriceCents
}
