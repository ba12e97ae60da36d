package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"imoveisBack/internal/models"
)

func authedRequest(method, target string, userID int, role string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(r.Context(), "user_id", userID)
	ctx = context.WithValue(ctx, "role", role)
	return r.WithContext(ctx)
}

func TestCanActFor(t *testing.T) {
	cases := []struct {
		name   string
		caller int
		role   string
		target int
		want   bool
	}{
		{"own account", 5, models.RoleClient, 5, true},
		{"admin on another account", 1, models.RoleAdmin, 5, true},
		{"client on another account", 5, models.RoleClient, 7, false},
		{"seller on another account", 5, models.RoleSeller, 7, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := authedRequest("GET", "/", tc.caller, tc.role)
			if got := canActFor(r, tc.target); got != tc.want {
				t.Fatalf("canActFor(caller=%d role=%s, target=%d) = %v, want %v",
					tc.caller, tc.role, tc.target, got, tc.want)
			}
		})
	}
}

func TestCanActForAnonymous(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if canActFor(r, 5) {
		t.Fatal("request without auth context must not act for any account")
	}
}

func TestGetPropertiesByUserForbiddenForOtherUser(t *testing.T) {
	h := &PropertyHandler{}
	r := authedRequest("GET", "/properties/user/7?:user_id=7", 5, models.RoleClient)
	w := httptest.NewRecorder()

	h.GetPropertiesByUser(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another user's dashboard, got %d", w.Code)
	}
}

func TestGetFavoritesByUserForbiddenForOtherUser(t *testing.T) {
	h := &FavoriteHandler{}
	r := authedRequest("GET", "/favorites/7?:user_id=7", 5, models.RoleClient)
	w := httptest.NewRecorder()

	h.GetFavoritesByUser(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another user's favorites, got %d", w.Code)
	}
}

func TestGetFavoriteIDsForbiddenForOtherUser(t *testing.T) {
	h := &FavoriteHandler{}
	r := authedRequest("GET", "/favorites/ids/7?:user_id=7", 5, models.RoleSeller)
	w := httptest.NewRecorder()

	h.GetFavoriteIDsByUser(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another user's favorite ids, got %d", w.Code)
	}
}

func TestIsFavoriteForbiddenForOtherUser(t *testing.T) {
	h := &FavoriteHandler{}
	r := authedRequest("GET", "/favorites/check/user/7/property/3?:user_id=7&:property_id=3", 5, models.RoleClient)
	w := httptest.NewRecorder()

	h.IsFavorite(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another user's favorite check, got %d", w.Code)
	}
}
