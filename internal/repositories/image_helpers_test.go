package repositories

import (
	"database/sql"
	"testing"
)

func TestExtractFirstImagePath(t *testing.T) {
	raw := `[{"name":"a.jpg","path":"/images/properties/a.jpg","type":"upload"},{"name":"b.jpg","path":"/images/properties/b.jpg","type":"upload"}]`

	path, err := extractFirstImagePath(sql.NullString{String: raw, Valid: true})
	if err != nil {
		t.Fatalf("extractFirstImagePath returned error: %v", err)
	}
	if path == nil || *path != "/images/properties/a.jpg" {
		t.Fatalf("expected first path, got %v", path)
	}
}

func TestExtractFirstImagePathSkipsEmptyEntries(t *testing.T) {
	raw := `[{"name":"","path":""},{"name":"b.jpg","path":"/images/properties/b.jpg"}]`

	path, err := extractFirstImagePath(sql.NullString{String: raw, Valid: true})
	if err != nil {
		t.Fatalf("extractFirstImagePath returned error: %v", err)
	}
	if path == nil || *path != "/images/properties/b.jpg" {
		t.Fatalf("expected second entry path, got %v", path)
	}
}

func TestExtractFirstImagePathNullColumn(t *testing.T) {
	path, err := extractFirstImagePath(sql.NullString{})
	if err != nil {
		t.Fatalf("extractFirstImagePath returned error: %v", err)
	}
	if path != nil {
		t.Fatalf("expected nil for NULL column, got %q", *path)
	}
}

func TestExtractFirstImagePathEmptyString(t *testing.T) {
	path, err := extractFirstImagePath(sql.NullString{String: "   ", Valid: true})
	if err != nil {
		t.Fatalf("extractFirstImagePath returned error: %v", err)
	}
	if path != nil {
		t.Fatalf("expected nil for blank column, got %q", *path)
	}
}

func TestExtractFirstImagePathInvalidJSON(t *testing.T) {
	if _, err := extractFirstImagePath(sql.NullString{String: "{broken", Valid: true}); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
