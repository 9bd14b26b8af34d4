package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	milestones, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(milestones) != 11 {
		t.Fatalf("expected 11 milestones, got %d", len(milestones))
	}

	first := milestones[0]
	if first.MilestoneID != "m1" || first.Order != 1 {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	last := milestones[len(milestones)-1]
	if last.MilestoneID != "m11" || last.Order != 11 {
		t.Fatalf("unexpected last entry: %+v", last)
	}
	if !strings.Contains(last.Title, "$1.000USD") {
		t.Fatalf("unexpected last title: %q", last.Title)
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := writeCatalog(t, `
milestones:
  - id: w1
    title: First step
    description: Optional notes
    order: 1
  - id: w2
    title: Second step
    order: 2
`)

	milestones, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(milestones) != 2 {
		t.Fatalf("expected 2 milestones, got %d", len(milestones))
	}
	if milestones[0].MilestoneID != "w1" || milestones[0].Description != "Optional notes" {
		t.Fatalf("unexpected first entry: %+v", milestones[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "milestones: []"},
		{"missing title", "milestones:\n  - id: m1\n    order: 1"},
		{"missing id", "milestones:\n  - title: T\n    order: 1"},
		{"zero order", "milestones:\n  - id: m1\n    title: T\n    order: 0"},
		{"duplicate id", "milestones:\n  - id: m1\n    title: A\n    order: 1\n  - id: m1\n    title: B\n    order: 2"},
		{"not yaml", "{{nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalog(t, tt.yaml)
			if _, err := Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}
