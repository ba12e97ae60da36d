package repositories

import (
	"strings"
	"testing"
)

func TestUpdatePropertyStampsStatusChange(t *testing.T) {
	// Edits reset moderation status, so the rewrite must move
	// status_changed_at together with updated_at.
	if !strings.Contains(updatePropertyQuery, "status_changed_at = $14") {
		t.Fatalf("update statement does not stamp status_changed_at:\n%s", updatePropertyQuery)
	}
	if !strings.Contains(updatePropertyQuery, "updated_at = $14") {
		t.Fatalf("update statement must stamp updated_at with the same time:\n%s", updatePropertyQuery)
	}
}
