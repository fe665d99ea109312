package diagnostic

import "testing"

func TestPresentAverageAndZones(t *testing.T) {
	cases := []struct {
		name     string
		vals     [6]float64
		wantAvg  float64
		wantZone Zone
	}{
		{"all sevens", [6]float64{7, 7, 7, 7, 7, 7}, 7, ZoneOptimal},
		{"all threes", [6]float64{3, 3, 3, 3, 3, 3}, 3, ZoneCritical},
		{"all fives", [6]float64{5, 5, 5, 5, 5, 5}, 5, ZoneImprovement},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sum := Present(scoresInOrder(tc.vals), string(PillarClarityDirection))
			if sum.Average != tc.wantAvg {
				t.Fatalf("average: want=%g got=%g", tc.wantAvg, sum.Average)
			}
			if sum.AverageZone != tc.wantZone {
				t.Fatalf("average zone: want=%s got=%s", tc.wantZone, sum.AverageZone)
			}
		})
	}
}

func TestPresentZoneBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Zone
	}{
		{10, ZoneOptimal},
		{7, ZoneOptimal},
		{6.99, ZoneImprovement},
		{4, ZoneImprovement},
		{3.99, ZoneCritical},
		{0, ZoneCritical},
	}
	for _, tc := range cases {
		if got := ZoneFor(tc.score); got != tc.want {
			t.Fatalf("ZoneFor(%g): want=%s got=%s", tc.score, tc.want, got)
		}
	}
}

func TestPresentPrefersStoredWeakestPillar(t *testing.T) {
	// Scores whose recomputed argmin differs from the stored value; the
	// stored value must win as long as it names a known pillar.
	s := scoresInOrder([6]float64{1, 9, 9, 9, 9, 9})
	sum := Present(s, string(PillarEnergyFocus))
	if sum.WeakestPillar != PillarEnergyFocus {
		t.Fatalf("weakest pillar: want=%s got=%s", PillarEnergyFocus, sum.WeakestPillar)
	}
	for _, pr := range sum.Pillars {
		if pr.Weakest != (pr.Pillar == PillarEnergyFocus) {
			t.Fatalf("weakest flag mismatch on %s", pr.Pillar)
		}
	}
}

func TestPresentRecomputesOnUnknownStoredValue(t *testing.T) {
	s := scoresInOrder([6]float64{9, 9, 2, 9, 9, 9})
	for _, stored := range []string{"", "conexion_proposito"} {
		sum := Present(s, stored)
		if sum.WeakestPillar != PillarEnergyFocus {
			t.Fatalf("stored=%q weakest: want=%s got=%s", stored, PillarEnergyFocus, sum.WeakestPillar)
		}
	}
}

func TestPresentOrdersPillarsCanonically(t *testing.T) {
	sum := Present(scoresInOrder([6]float64{1, 2, 3, 4, 5, 6}), "")
	if len(sum.Pillars) != len(CanonicalOrder) {
		t.Fatalf("pillar count: want=%d got=%d", len(CanonicalOrder), len(sum.Pillars))
	}
	for i, pr := range sum.Pillars {
		if pr.Pillar != CanonicalOrder[i] {
			t.Fatalf("pillar order at %d: want=%s got=%s", i, CanonicalOrder[i], pr.Pillar)
		}
	}
}
