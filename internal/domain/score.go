package domain

const (
	MinBiasScore = 0
	MaxBiasScore = 100

	moderateBiasFrom = 65
	highBiasFrom     = 85
)

type BiasBand int

const (
	BandNeutral BiasBand = iota
	BandModerate
	BandHigh
)

func (b BiasBand) String() string {
	switch b {
	case BandHigh:
		return "Highly Biased"
	case BandModerate:
		return "Moderately Biased"
	default:
		return "Mostly Neutral"
	}
}

// BandOf maps a bias score onto its band. Lower bounds are inclusive:
// [0,65) neutral, [65,85) moderate, [85,100] high. Out of range scores are
// clamped first.
func BandOf(score int) BiasBand {
	score = ClampBiasScore(score)
	switch {
	case score >= highBiasFrom:
		return BandHigh
	case score >= moderateBiasFrom:
		return BandModerate
	default:
		return BandNeutral
	}
}

func ClampBiasScore(score int) int {
	if score < MinBiasScore {
		return MinBiasScore
	}
	if score > MaxBiasScore {
		return MaxBiasScore
	}
	return score
}
