// Package catalog loads the milestone catalog from its declarative source.
// The catalog is deployment data, not logic: the embedded document matches
// the Misión AMVISION 10K program, and CATALOG_PATH may point at a
// replacement YAML file.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mission-tracker/internal/domain"
)

//go:embed catalog.yaml
var embedded []byte

type document struct {
	Milestones []entry `yaml:"milestones"`
}

type entry struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
}

// Load returns the catalog from path, or the embedded default when path is
// empty.
func Load(path string) ([]domain.Milestone, error) {
	raw := embedded
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Milestones) == 0 {
		return nil, fmt.Errorf("catalog has no milestones")
	}

	seen := make(map[string]struct{}, len(doc.Milestones))
	milestones := make([]domain.Milestone, 0, len(doc.Milestones))
	for i, e := range doc.Milestones {
		if e.ID == "" || e.Title == "" {
			return nil, fmt.Errorf("catalog entry %d: id and title are required", i)
		}
		if e.Order < 1 {
			return nil, fmt.Errorf("catalog entry %q: order must be positive", e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("catalog entry %q: duplicate id", e.ID)
		}
		seen[e.ID] = struct{}{}

		milestones = append(milestones, domain.Milestone{
			MilestoneID: e.ID,
			Title:       e.Title,
			Description: e.Description,
			Order:       e.Order,
		})
	}
	return milestones, nil
}
