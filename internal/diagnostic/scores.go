package diagnostic

// ScoreMin and ScoreMax bound every pillar score.
const (
	ScoreMin = 0.0
	ScoreMax = 10.0
)

// Scores holds one score per pillar, each in [ScoreMin, ScoreMax].
type Scores struct {
	ClarityDirection       float64
	EmotionalMastery       float64
	EnergyFocus            float64
	SelfLeadership         float64
	InfluenceCommunication float64
	ChangeAdaptability     float64
}

// Value returns the score for p. Unknown pillars return ScoreMin.
func (s Scores) Value(p Pillar) float64 {
	switch p {
	case PillarClarityDirection:
		return s.ClarityDirection
	case PillarEmotionalMastery:
		return s.EmotionalMastery
	case PillarEnergyFocus:
		return s.EnergyFocus
	case PillarSelfLeadership:
		return s.SelfLeadership
	case PillarInfluenceCommunication:
		return s.InfluenceCommunication
	case PillarChangeAdaptability:
		return s.ChangeAdaptability
	default:
		return ScoreMin
	}
}

// Average is the arithmetic mean of the six pillar scores.
func (s Scores) Average() float64 {
	sum := 0.0
	for _, p := range CanonicalOrder {
		sum += s.Value(p)
	}
	return sum / float64(len(CanonicalOrder))
}
