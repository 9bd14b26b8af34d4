package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// SQLiteStore keeps every document as a JSON body in a single documents
// table, one row per (collection, id). Filters read fields straight out of
// the body with json_extract, so no per-collection schema exists.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB, logger zerolog.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger}
}

func (s *SQLiteStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("failed to decode document fields: %w", err)
	}

	id, _ := fields["id"].(string)
	if id == "" {
		id, err = gonanoid.New()
		if err != nil {
			return "", fmt.Errorf("failed to generate document id: %w", err)
		}
		fields["id"] = id
		if body, err = json.Marshal(fields); err != nil {
			return "", fmt.Errorf("failed to marshal document: %w", err)
		}
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		collection, id, string(body), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	s.logger.Debug().Str("collection", collection).Str("id", id).Msg("document inserted")
	return id, nil
}

func (s *SQLiteStore) FindOne(ctx context.Context, collection string, filter Filter, out any) error {
	where, args := buildWhere(collection, filter)
	row := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE `+where+` ORDER BY rowid LIMIT 1`, args...)

	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindMany(ctx context.Context, collection string, filter Filter, out any) error {
	where, args := buildWhere(collection, filter)
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM documents WHERE `+where+` ORDER BY rowid`, args...)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	bodies := make([]json.RawMessage, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("failed to scan document: %w", err)
		}
		bodies = append(bodies, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate %s: %w", collection, err)
	}

	merged, err := json.Marshal(bodies)
	if err != nil {
		return fmt.Errorf("failed to merge documents: %w", err)
	}
	if err := json.Unmarshal(merged, out); err != nil {
		return fmt.Errorf("failed to decode documents: %w", err)
	}
	return nil
}

// UpdateOne reads, mutates, and rewrites the matched document inside one
// transaction, so a completion transition is a single atomic write.
func (s *SQLiteStore) UpdateOne(ctx context.Context, collection string, filter Filter, update Update) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	where, args := buildWhere(collection, filter)
	row := tx.QueryRowContext(ctx,
		`SELECT id, body FROM documents WHERE `+where+` ORDER BY rowid LIMIT 1`, args...)

	var id, body string
	if err := row.Scan(&id, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	applyUpdate(fields, update)

	next, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET body = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		string(next), time.Now().UTC(), collection, id,
	); err != nil {
		return fmt.Errorf("failed to update %s: %w", collection, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}

	s.logger.Debug().Str("collection", collection).Str("id", id).Msg("document updated")
	return nil
}

func (s *SQLiteStore) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan collection name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collections: %w", err)
	}
	return names, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func buildWhere(collection string, filter Filter) (string, []any) {
	clauses := []string{"collection = ?"}
	args := []any{collection}
	for _, k := range sortedKeys(filter) {
		clauses = append(clauses, fmt.Sprintf("json_extract(body, '$.%s') = ?", k))
		args = append(args, filter[k])
	}
	return strings.Join(clauses, " AND "), args
}

func applyUpdate(fields map[string]any, update Update) {
	for _, k := range sortedKeys(update.Set) {
		fields[k] = update.Set[k]
	}
	for _, k := range sortedKeys(update.Inc) {
		fields[k] = numeric(fields[k]) + update.Inc[k]
	}
	for _, k := range sortedKeys(update.AddToSet) {
		fields[k] = addToSet(fields[k], update.AddToSet[k])
	}
}

func numeric(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func addToSet(current, value any) any {
	arr, _ := current.([]any)
	for _, existing := range arr {
		if existing == value {
			return arr
		}
	}
	return append(arr, value)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
