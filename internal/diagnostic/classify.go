package diagnostic

// Classify returns the pillar with the lowest score. When several pillars
// share the minimum the earliest one in CanonicalOrder wins, so the result
// is deterministic for a given score set.
func Classify(s Scores) Pillar {
	weakest := CanonicalOrder[0]
	lowest := s.Value(weakest)
	for _, p := range CanonicalOrder[1:] {
		if v := s.Value(p); v < lowest {
			weakest = p
			lowest = v
		}
	}
	return weakest
}
