package catalog

import (
	"testing"

	"github.com/optimusmind/diagnostico-backend/internal/diagnostic"
)

func TestLoadCoversEveryPillar(t *testing.T) {
	entries, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != len(diagnostic.CanonicalOrder) {
		t.Fatalf("entry count: want=%d got=%d", len(diagnostic.CanonicalOrder), len(entries))
	}
	for _, p := range diagnostic.CanonicalOrder {
		e, ok := Fallback(p)
		if !ok {
			t.Fatalf("no fallback for pillar %s", p)
		}
		if e.Title == "" || e.EmbedURL == "" {
			t.Fatalf("incomplete fallback for pillar %s: %+v", p, e)
		}
	}
}

func TestFallbackUnknownPillar(t *testing.T) {
	if _, ok := Fallback(diagnostic.Pillar("conexion_proposito")); ok {
		t.Fatalf("unknown pillar should have no fallback")
	}
}
