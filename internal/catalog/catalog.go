// Package catalog holds the canonical pillar-to-training mapping. It is the
// single source for both the database seed and the display-time fallback, so
// the two can never drift apart.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/optimusmind/diagnostico-backend/internal/diagnostic"
)

//go:embed catalog.yaml
var rawCatalog []byte

type Entry struct {
	PillarKey string `yaml:"pillar_key"`
	Title     string `yaml:"title"`
	EmbedURL  string `yaml:"embed_url"`
}

type catalogFile struct {
	Trainings []Entry `yaml:"trainings"`
}

var (
	loadOnce sync.Once
	loaded   []Entry
	loadErr  error
)

// Load parses the embedded catalog and checks it covers every pillar
// exactly once.
func Load() ([]Entry, error) {
	loadOnce.Do(func() {
		var f catalogFile
		if err := yaml.Unmarshal(rawCatalog, &f); err != nil {
			loadErr = fmt.Errorf("parse embedded catalog: %w", err)
			return
		}
		seen := map[string]bool{}
		for _, e := range f.Trainings {
			p, ok := diagnostic.ParsePillar(e.PillarKey)
			if !ok {
				loadErr = fmt.Errorf("catalog entry has unknown pillar key %q", e.PillarKey)
				return
			}
			if seen[string(p)] {
				loadErr = fmt.Errorf("catalog has duplicate entry for pillar %q", p)
				return
			}
			if e.Title == "" || e.EmbedURL == "" {
				loadErr = fmt.Errorf("catalog entry for %q is incomplete", p)
				return
			}
			seen[string(p)] = true
		}
		if len(seen) != len(diagnostic.CanonicalOrder) {
			loadErr = fmt.Errorf("catalog covers %d of %d pillars", len(seen), len(diagnostic.CanonicalOrder))
			return
		}
		loaded = f.Trainings
	})
	return loaded, loadErr
}

// Fallback returns the static training for a pillar, used at display time
// when the catalog table cannot serve the lookup.
func Fallback(p diagnostic.Pillar) (Entry, bool) {
	entries, err := Load()
	if err != nil {
		return Entry{}, false
	}
	for _, e := range entries {
		if e.PillarKey == string(p) {
			return e, true
		}
	}
	return Entry{}, false
}
