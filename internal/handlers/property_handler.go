package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"imoveisBack/internal/models"
	"imoveisBack/internal/repositories"
	"imoveisBack/internal/services"
	"imoveisBack/utils"
)

const maxUploadSize = 32 << 20 // 32 MB

// StatusNotifier pushes listing status changes to the owner's live socket.
type StatusNotifier interface {
	NotifyStatus(userID int, update models.StatusUpdate)
}

type PropertyHandler struct {
	Service    *services.PropertyService
	Storage    *utils.Storage
	Notifier   StatusNotifier
	SigningKey string
}

// viewerID extracts the user id from an optional bearer token. Public
// endpoints use it to mark favorites and skip owner view counting without
// requiring auth.
func (h *PropertyHandler) viewerID(r *http.Request) int {
	if id, ok := r.Context().Value("user_id").(int); ok {
		return id
	}

	tokenString := r.Header.Get("Authorization")
	if !strings.HasPrefix(tokenString, "Bearer ") {
		return 0
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.SigningKey), nil
	})
	if err != nil || !token.Valid {
		return 0
	}
	return int(claims.UserID)
}

func (h *PropertyHandler) GetPropertyByID(w http.ResponseWriter, r *http.Request) {
	idStr := getParam(r, "id")
	if idStr == "" {
		http.Error(w, "Missing property ID", http.StatusBadRequest)
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	prop, err := h.Service.GetPropertyByID(r.Context(), id, h.viewerID(r))
	if err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prop)
}

func (h *PropertyHandler) GetFilteredProperties(w http.ResponseWriter, r *http.Request) {
	var filter models.PropertyFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	resp, err := h.Service.GetFilteredProperties(r.Context(), filter, h.viewerID(r))
	if err != nil {
		log.Printf("GetFilteredProperties error: %v", err)
		http.Error(w, "Failed to fetch properties", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	prop, err := h.propertyFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	prop.UserID = userID

	uploaded, err := h.uploadImages(collectImageFiles(r.MultipartForm, "images", "files"))
	if err != nil {
		log.Printf("CreateProperty upload error: %v", err)
		http.Error(w, "Image upload failed", http.StatusInternalServerError)
		return
	}
	prop.Images = append(prop.Images, uploaded...)

	created, err := h.Service.CreateProperty(r.Context(), prop)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			http.Error(w, "Referenced user does not exist", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	prop, err := h.propertyFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	prop.ID = id

	// Existing gallery entries arrive as JSON values; new files are uploaded
	// and appended after them.
	kept, _, err := gatherImagesFromForm(r.MultipartForm, "image_links", "existing_images")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	uploaded, err := h.uploadImages(collectImageFiles(r.MultipartForm, "images", "files"))
	if err != nil {
		log.Printf("UpdateProperty upload error: %v", err)
		http.Error(w, "Image upload failed", http.StatusInternalServerError)
		return
	}
	prop.Images = append(kept, uploaded...)

	updated, err := h.Service.UpdateProperty(r.Context(), prop, userID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPropertyNotFound):
			http.Error(w, "Property not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Not the owner of this property", http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("user_id").(int)
	role, _ := r.Context().Value("role").(string)

	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	err = h.Service.DeleteProperty(r.Context(), id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPropertyNotFound):
			http.Error(w, "Property not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Not the owner of this property", http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) GetPropertiesByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(getParam(r, "user_id"))
	if err != nil {
		http.Error(w, "Invalid user_id", http.StatusBadRequest)
		return
	}

	// The dashboard shows pending/rejected rows, so only the owner or an
	// admin may read it.
	if !canActFor(r, userID) {
		http.Error(w, "Cannot view another user's listings", http.StatusForbidden)
		return
	}

	props, err := h.Service.GetPropertiesByUserID(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch properties", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(props)
}

// MarkTransacted closes an active listing as rented or sold (owner action).
func (h *PropertyHandler) MarkTransacted(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.PropertyStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	err := h.Service.MarkTransacted(r.Context(), req.PropertyID, userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPropertyNotFound):
			http.Error(w, "Property not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Not the owner of this property", http.StatusForbidden)
		case errors.Is(err, services.ErrBadTransition):
			http.Error(w, "Only active listings can be closed", http.StatusConflict)
		case errors.Is(err, models.ErrInvalidStatus):
			http.Error(w, "Status must be rented or sold", http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if h.Notifier != nil {
		h.Notifier.NotifyStatus(userID, models.StatusUpdate{PropertyID: req.PropertyID, Status: req.Status})
	}
	w.WriteHeader(http.StatusOK)
}

// Moderate approves or rejects a pending listing (admin action) and notifies
// the owner.
func (h *PropertyHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid property ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	prop, err := h.Service.Moderate(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPropertyNotFound):
			http.Error(w, "Property not found", http.StatusNotFound)
		case errors.Is(err, services.ErrBadTransition):
			http.Error(w, "Only pending listings can be moderated", http.StatusConflict)
		case errors.Is(err, models.ErrInvalidStatus):
			http.Error(w, "Status must be active or rejected", http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if h.Notifier != nil {
		h.Notifier.NotifyStatus(prop.UserID, models.StatusUpdate{PropertyID: prop.ID, Status: prop.Status})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prop)
}

func (h *PropertyHandler) GetPendingProperties(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	resp, err := h.Service.GetPendingProperties(r.Context(), page)
	if err != nil {
		http.Error(w, "Failed to fetch pending properties", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *PropertyHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	props, err := h.Service.GetHistory(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(props)
}

// propertyFromForm reads the scalar listing fields out of a multipart form.
func (h *PropertyHandler) propertyFromForm(r *http.Request) (models.Property, error) {
	var prop models.Property

	prop.Title = strings.TrimSpace(r.FormValue("title"))
	prop.Description = strings.TrimSpace(r.FormValue("description"))
	prop.TransactionType = strings.ToLower(strings.TrimSpace(r.FormValue("transaction_type")))
	prop.PropertyType = strings.ToLower(strings.TrimSpace(r.FormValue("property_type")))
	prop.Municipality = strings.TrimSpace(r.FormValue("municipality"))
	prop.Bairro = strings.TrimSpace(r.FormValue("bairro"))

	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.Property{}, fmt.Errorf("invalid price: %q", v)
		}
		prop.Price = price
	}
	if v := r.FormValue("bedrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.Property{}, fmt.Errorf("invalid bedrooms: %q", v)
		}
		prop.Bedrooms = n
	}
	if v := r.FormValue("bathrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.Property{}, fmt.Errorf("invalid bathrooms: %q", v)
		}
		prop.Bathrooms = n
	}
	if v := r.FormValue("area"); v != "" {
		area, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.Property{}, fmt.Errorf("invalid area: %q", v)
		}
		prop.Area = area
	}

	prop.Amenities = gatherStringsFromForm(r.MultipartForm, "amenities")

	images, _, err := gatherImagesFromForm(r.MultipartForm, "image_links")
	if err != nil {
		return models.Property{}, err
	}
	prop.Images = images

	return prop, nil
}

// uploadImages stores each file sequentially. The first failure aborts the
// whole flow; already-uploaded objects stay in the bucket.
func (h *PropertyHandler) uploadImages(files []*multipart.FileHeader) ([]models.PropertyImage, error) {
	var images []models.PropertyImage

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", header.Filename, err)
		}

		name := uuid.New().String() + filepath.Ext(header.Filename)
		url, err := h.Storage.UploadFile(data, name, "properties")
		if err != nil {
			return nil, err
		}

		images = append(images, models.PropertyImage{
			Name: header.Filename,
			Path: url,
			Type: "file",
		})
	}
	return images, nil
}
