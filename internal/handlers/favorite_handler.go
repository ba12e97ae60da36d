package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"imoveisBack/internal/models"
	"imoveisBack/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
}

// ToggleFavorite flips the (user, property) favorite pair server-side and
// returns the resulting state, so the client never has to guess which of two
// racing writes won.
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req models.FavoriteToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// The authenticated user always wins over whatever the body claims.
	if userID, ok := r.Context().Value("user_id").(int); ok && userID != 0 {
		req.UserID = userID
	}
	if req.UserID == 0 || req.PropertyID == 0 {
		http.Error(w, "user_id and property_id are required", http.StatusBadRequest)
		return
	}

	liked, err := h.Service.Toggle(r.Context(), req.UserID, req.PropertyID)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			http.Error(w, "Property does not exist", http.StatusBadRequest)
			return
		}
		log.Printf("ToggleFavorite error: %v", err)
		http.Error(w, "Failed to toggle favorite", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.FavoriteToggleResponse{
		PropertyID: req.PropertyID,
		Liked:      liked,
	})
}

func (h *FavoriteHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err1 := strconv.Atoi(getParam(r, "user_id"))
	propertyID, err2 := strconv.Atoi(getParam(r, "property_id"))
	if err1 != nil || err2 != nil {
		http.Error(w, "Invalid user_id or property_id", http.StatusBadRequest)
		return
	}
	if !canActFor(r, userID) {
		http.Error(w, "Cannot view another user's favorites", http.StatusForbidden)
		return
	}

	liked, err := h.Service.IsFavorite(r.Context(), userID, propertyID)
	if err != nil {
		http.Error(w, "Failed to check favorite status", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"liked": liked})
}

func (h *FavoriteHandler) GetFavoritesByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(getParam(r, "user_id"))
	if err != nil {
		http.Error(w, "Invalid user_id", http.StatusBadRequest)
		return
	}

	if !canActFor(r, userID) {
		http.Error(w, "Cannot view another user's favorites", http.StatusForbidden)
		return
	}

	favs, err := h.Service.GetFavoritesByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get favorites", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(favs)
}

func (h *FavoriteHandler) GetFavoriteIDsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(getParam(r, "user_id"))
	if err != nil {
		http.Error(w, "Invalid user_id", http.StatusBadRequest)
		return
	}

	if !canActFor(r, userID) {
		http.Error(w, "Cannot view another user's favorites", http.StatusForbidden)
		return
	}

	ids, err := h.Service.GetFavoriteIDsByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get favorite ids", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []int{}
	}
	json.NewEncoder(w).Encode(map[string][]int{"property_ids": ids})
}
