package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"mission-tracker/internal/config"
	"mission-tracker/internal/database"
)

type note struct {
	ID    string   `json:"id,omitempty"`
	Title string   `json:"title"`
	Count float64  `json:"count,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

func openTempStore(t *testing.T) *SQLiteStore {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "docs.db")}
	db, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close database: %v", err)
		}
	})
	return NewSQLiteStore(db, zerolog.Nop())
}

func TestInsertAssignsID(t *testing.T) {
	store := openTempStore(t)

	id, err := store.Insert(context.Background(), "note", note{Title: "first"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	var got note
	if err := store.FindOne(context.Background(), "note", Filter{"title": "first"}, &got); err != nil {
		t.Fatalf("find one: %v", err)
	}
	if got.ID != id {
		t.Fatalf("stored id = %q, want %q", got.ID, id)
	}
}

func TestInsertKeepsExistingID(t *testing.T) {
	store := openTempStore(t)

	id, err := store.Insert(context.Background(), "note", note{ID: "fixed", Title: "pinned"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id != "fixed" {
		t.Fatalf("id = %q, want fixed", id)
	}
}

func TestFindOneNotFound(t *testing.T) {
	store := openTempStore(t)

	var got note
	err := store.FindOne(context.Background(), "note", Filter{"title": "missing"}, &got)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindOneReturnsFirstInserted(t *testing.T) {
	store := openTempStore(t)

	for _, title := range []string{"a", "b"} {
		if _, err := store.Insert(context.Background(), "note", note{Title: title, Tags: []string{"dup"}}); err != nil {
			t.Fatalf("insert %s: %v", title, err)
		}
	}

	var got note
	if err := store.FindOne(context.Background(), "note", Filter{}, &got); err != nil {
		t.Fatalf("find one: %v", err)
	}
	if got.Title != "a" {
		t.Fatalf("title = %q, want a", got.Title)
	}
}

func TestFindManyEmptyMatchIsNotAnError(t *testing.T) {
	store := openTempStore(t)

	var notes []note
	if err := store.FindMany(context.Background(), "note", Filter{}, &notes); err != nil {
		t.Fatalf("find many: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected no notes, got %d", len(notes))
	}
}

func TestFindManyKeepsInsertionOrder(t *testing.T) {
	store := openTempStore(t)

	titles := []string{"c", "a", "b"}
	for _, title := range titles {
		if _, err := store.Insert(context.Background(), "note", note{Title: title}); err != nil {
			t.Fatalf("insert %s: %v", title, err)
		}
	}

	var notes []note
	if err := store.FindMany(context.Background(), "note", Filter{}, &notes); err != nil {
		t.Fatalf("find many: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	for i, want := range titles {
		if notes[i].Title != want {
			t.Fatalf("note %d = %q, want %q", i, notes[i].Title, want)
		}
	}
}

func TestFindManyFiltersByField(t *testing.T) {
	store := openTempStore(t)

	if _, err := store.Insert(context.Background(), "note", note{Title: "keep", Count: 1}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := store.Insert(context.Background(), "note", note{Title: "skip", Count: 2}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var notes []note
	if err := store.FindMany(context.Background(), "note", Filter{"title": "keep"}, &notes); err != nil {
		t.Fatalf("find many: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "keep" {
		t.Fatalf("unexpected notes: %+v", notes)
	}
}

func TestUpdateOneAppliesAllMutationClasses(t *testing.T) {
	store := openTempStore(t)

	if _, err := store.Insert(context.Background(), "note", note{Title: "draft"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	update := Update{
		Set:      map[string]any{"title": "final"},
		Inc:      map[string]float64{"count": 3},
		AddToSet: map[string]any{"tags": "x"},
	}
	if err := store.UpdateOne(context.Background(), "note", Filter{"title": "draft"}, update); err != nil {
		t.Fatalf("update one: %v", err)
	}

	var got note
	if err := store.FindOne(context.Background(), "note", Filter{"title": "final"}, &got); err != nil {
		t.Fatalf("find one: %v", err)
	}
	if got.Count != 3 {
		t.Fatalf("count = %v, want 3 (missing field starts at zero)", got.Count)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "x" {
		t.Fatalf("tags = %v, want [x]", got.Tags)
	}
}

func TestUpdateOneIncAccumulatesAndAddToSetDeduplicates(t *testing.T) {
	store := openTempStore(t)

	if _, err := store.Insert(context.Background(), "note", note{Title: "n", Count: 3, Tags: []string{"x"}}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	update := Update{
		Inc:      map[string]float64{"count": -1},
		AddToSet: map[string]any{"tags": "x"},
	}
	if err := store.UpdateOne(context.Background(), "note", Filter{"title": "n"}, update); err != nil {
		t.Fatalf("update one: %v", err)
	}

	var got note
	if err := store.FindOne(context.Background(), "note", Filter{"title": "n"}, &got); err != nil {
		t.Fatalf("find one: %v", err)
	}
	if got.Count != 2 {
		t.Fatalf("count = %v, want 2", got.Count)
	}
	if len(got.Tags) != 1 {
		t.Fatalf("tags = %v, want the single existing member", got.Tags)
	}
}

func TestUpdateOneNotFound(t *testing.T) {
	store := openTempStore(t)

	err := store.UpdateOne(context.Background(), "note", Filter{"title": "missing"}, Update{
		Set: map[string]any{"title": "whatever"},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCollectionsListsDistinctSorted(t *testing.T) {
	store := openTempStore(t)

	for _, collection := range []string{"beta", "alpha", "beta"} {
		if _, err := store.Insert(context.Background(), collection, note{Title: collection}); err != nil {
			t.Fatalf("insert into %s: %v", collection, err)
		}
	}

	names, err := store.Collections(context.Background())
	if err != nil {
		t.Fatalf("collections: %v", err)
	}
	// goose bookkeeping lives in its own table, not in documents.
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Fatalf("collections = %v, want [alpha beta]", names)
	}
}

func TestPing(t *testing.T) {
	store := openTempStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
