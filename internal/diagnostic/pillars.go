package diagnostic

// Pillar identifies one of the six mental-leadership pillars measured by the
// diagnostic.
type Pillar string

const (
	PillarClarityDirection       Pillar = "clarity_direction"
	PillarEmotionalMastery       Pillar = "emotional_mastery"
	PillarEnergyFocus            Pillar = "energy_focus"
	PillarSelfLeadership         Pillar = "self_leadership"
	PillarInfluenceCommunication Pillar = "influence_communication"
	PillarChangeAdaptability     Pillar = "change_adaptability"
)

// CanonicalOrder is the total ordering of pillars. Tie-breaking during
// classification always resolves to the earliest pillar in this order, both
// at record-creation time and on any later recomputation. Never replace this
// with map iteration.
var CanonicalOrder = [6]Pillar{
	PillarClarityDirection,
	PillarEmotionalMastery,
	PillarEnergyFocus,
	PillarSelfLeadership,
	PillarInfluenceCommunication,
	PillarChangeAdaptability,
}

func (p Pillar) String() string { return string(p) }

func (p Pillar) Valid() bool {
	for _, known := range CanonicalOrder {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePillar maps a stored pillar key back to a Pillar, reporting whether
// the key is known.
func ParsePillar(s string) (Pillar, bool) {
	p := Pillar(s)
	if p.Valid() {
		return p, true
	}
	return "", false
}
