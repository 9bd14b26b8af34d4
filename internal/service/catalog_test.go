package service

import (
	"context"
	"testing"

	"mission-tracker/internal/docstore"
	"mission-tracker/internal/domain"
)

func TestEnsureSeedsOnceAndRepeatsCreateNothing(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.catalog.Ensure(context.Background())
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if created != 11 {
		t.Fatalf("created = %d, want 11", created)
	}

	for i := 0; i < 3; i++ {
		created, err := env.catalog.Ensure(context.Background())
		if err != nil {
			t.Fatalf("ensure repeat %d: %v", i, err)
		}
		if created != 0 {
			t.Fatalf("repeat ensure created %d, want 0", created)
		}
	}

	milestones, err := env.catalog.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(milestones) != 11 {
		t.Fatalf("stored %d milestones, want 11", len(milestones))
	}
}

func TestEnsureNeverRewritesStoredEntries(t *testing.T) {
	env := newTestEnv(t)

	custom := domain.Milestone{MilestoneID: "m1", Title: "Hand-edited title", Order: 1}
	if _, err := env.store.Insert(context.Background(), domain.CollectionMilestone, custom); err != nil {
		t.Fatalf("insert custom m1: %v", err)
	}

	created, err := env.catalog.Ensure(context.Background())
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if created != 10 {
		t.Fatalf("created = %d, want 10 (m1 already present)", created)
	}

	var got domain.Milestone
	if err := env.store.FindOne(context.Background(), domain.CollectionMilestone,
		docstore.Filter{domain.FieldMilestoneID: "m1"}, &got); err != nil {
		t.Fatalf("find m1: %v", err)
	}
	if got.Title != "Hand-edited title" {
		t.Fatalf("m1 title = %q, want the stored one untouched", got.Title)
	}
}

func TestListSortsByOrderWithMissingOrderLast(t *testing.T) {
	env := newTestEnv(t)

	entries := []domain.Milestone{
		{MilestoneID: "unordered", Title: "No order"},
		{MilestoneID: "second-a", Title: "Tie A", Order: 2},
		{MilestoneID: "first", Title: "First", Order: 1},
		{MilestoneID: "second-b", Title: "Tie B", Order: 2},
	}
	for _, e := range entries {
		if _, err := env.store.Insert(context.Background(), domain.CollectionMilestone, e); err != nil {
			t.Fatalf("insert %s: %v", e.MilestoneID, err)
		}
	}

	milestones, err := env.catalog.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"first", "second-a", "second-b", "unordered"}
	if len(milestones) != len(want) {
		t.Fatalf("listed %d milestones, want %d", len(milestones), len(want))
	}
	for i, id := range want {
		if milestones[i].MilestoneID != id {
			t.Fatalf("position %d = %s, want %s (ties keep insertion order)", i, milestones[i].MilestoneID, id)
		}
	}
}
