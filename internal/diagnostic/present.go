package diagnostic

// Zone buckets a score: >=7 optimal, >=4 improvement, below that critical.
type Zone string

const (
	ZoneOptimal     Zone = "optimal"
	ZoneImprovement Zone = "improvement"
	ZoneCritical    Zone = "critical"
)

func ZoneFor(score float64) Zone {
	switch {
	case score >= 7:
		return ZoneOptimal
	case score >= 4:
		return ZoneImprovement
	default:
		return ZoneCritical
	}
}

type PillarResult struct {
	Pillar  Pillar  `json:"pillar"`
	Score   float64 `json:"score"`
	Zone    Zone    `json:"zone"`
	Weakest bool    `json:"weakest"`
}

type Summary struct {
	Average       float64        `json:"average"`
	AverageZone   Zone           `json:"average_zone"`
	Pillars       []PillarResult `json:"pillars"`
	WeakestPillar Pillar         `json:"weakest_pillar"`
}

// Present builds the display aggregates for a resolved record. The stored
// weakest-pillar key wins when it names a known pillar; otherwise it is
// recomputed from the scores. A stored and a recomputed value can disagree
// if the tie-break ordering changed between versions, which is why the
// stored one is preferred.
func Present(s Scores, storedWeakest string) Summary {
	weakest, ok := ParsePillar(storedWeakest)
	if !ok {
		weakest = Classify(s)
	}

	avg := s.Average()
	pillars := make([]PillarResult, 0, len(CanonicalOrder))
	for _, p := range CanonicalOrder {
		v := s.Value(p)
		pillars = append(pillars, PillarResult{
			Pillar:  p,
			Score:   v,
			Zone:    ZoneFor(v),
			Weakest: p == weakest,
		})
	}

	return Summary{
		Average:       avg,
		AverageZone:   ZoneFor(avg),
		Pillars:       pillars,
		WeakestPillar: weakest,
	}
}
