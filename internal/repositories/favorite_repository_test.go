package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
)

type fakeResult struct {
	rows int64
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, nil }

// fakeExecer answers the delete with a configurable row count and records
// every statement it sees.
type fakeExecer struct {
	deleteRows int64
	insertErr  error
	queries    []string
}

func (f *fakeExecer) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.queries = append(f.queries, query)
	if strings.HasPrefix(strings.TrimSpace(query), "DELETE") {
		return fakeResult{rows: f.deleteRows}, nil
	}
	return fakeResult{rows: 1}, f.insertErr
}

func TestToggleFavoriteRemovesExistingRow(t *testing.T) {
	tx := &fakeExecer{deleteRows: 1}

	liked, err := toggleFavorite(context.Background(), tx, 5, 9)
	if err != nil {
		t.Fatalf("toggleFavorite returned error: %v", err)
	}
	if liked {
		t.Fatal("deleting an existing favorite must report liked=false")
	}
	if len(tx.queries) != 1 {
		t.Fatalf("expected only the delete to run, got %d statements", len(tx.queries))
	}
}

func TestToggleFavoriteInsertsWhenNothingDeleted(t *testing.T) {
	tx := &fakeExecer{deleteRows: 0}

	liked, err := toggleFavorite(context.Background(), tx, 5, 9)
	if err != nil {
		t.Fatalf("toggleFavorite returned error: %v", err)
	}
	if !liked {
		t.Fatal("inserting a new favorite must report liked=true")
	}
	if len(tx.queries) != 2 {
		t.Fatalf("expected delete then insert, got %d statements", len(tx.queries))
	}
	if !strings.Contains(tx.queries[1], "ON CONFLICT (user_id, property_id) DO NOTHING") {
		t.Fatalf("insert must tolerate the unique constraint: %s", tx.queries[1])
	}
}

func TestToggleFavoriteInsertError(t *testing.T) {
	wantErr := errors.New("insert failed")
	tx := &fakeExecer{deleteRows: 0, insertErr: wantErr}

	_, err := toggleFavorite(context.Background(), tx, 5, 9)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected insert error to propagate, got %v", err)
	}
}
