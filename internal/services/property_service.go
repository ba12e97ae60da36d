package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"imoveisBack/internal/models"
	"imoveisBack/internal/repositories"
)

var (
	ErrValidation    = errors.New("property validation failed")
	ErrForbidden     = errors.New("operation not allowed for this user")
	ErrBadTransition = errors.New("status transition not allowed")
)

const (
	// DefaultPageSize is the fixed page size of the browse and admin lists.
	DefaultPageSize = 7
	maxPageSize     = 50

	// RetentionWindow separates the admin history view from archived rows:
	// rented/sold listings older than this are swept by the cleaner.
	RetentionWindow = 10 * 24 * time.Hour
)

type PropertyService struct {
	PropertyRepo *repositories.PropertyRepository
}

// ValidateProperty checks the required add-listing fields. Images are
// optional; a listing with zero images is legal.
func ValidateProperty(p models.Property) error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	if p.Price <= 0 {
		return errors.New("price must be positive")
	}
	if p.TransactionType != models.TransactionRent && p.TransactionType != models.TransactionSale {
		return errors.New("transaction_type must be rent or sale")
	}
	if strings.TrimSpace(p.PropertyType) == "" {
		return errors.New("property_type is required")
	}
	if strings.TrimSpace(p.Municipality) == "" {
		return errors.New("municipality is required")
	}
	if p.UserID == 0 {
		return errors.New("user_id is required")
	}
	return nil
}

// NormalizeFilter clamps pagination to sane bounds without touching the
// predicates; an all-zero filter stays the identity filter.
func NormalizeFilter(f models.PropertyFilterRequest) models.PropertyFilterRequest {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	return f
}

// HistoryCutoff is the oldest status_changed_at still shown in the admin
// history view.
func HistoryCutoff(now time.Time) time.Time {
	return now.Add(-RetentionWindow)
}

func pageCount(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// moderationTransition validates an admin decision: only pending listings
// can be approved or rejected.
func moderationTransition(current, target string) error {
	if target != models.StatusActive && target != models.StatusRejected {
		return models.ErrInvalidStatus
	}
	if current != models.StatusPending {
		return ErrBadTransition
	}
	return nil
}

// closingTransition validates an owner closing a listing: only active
// listings can be marked rented or sold.
func closingTransition(current, target string) error {
	if target != models.StatusRented && target != models.StatusSold {
		return models.ErrInvalidStatus
	}
	if current != models.StatusActive {
		return ErrBadTransition
	}
	return nil
}

func (s *PropertyService) CreateProperty(ctx context.Context, prop models.Property) (models.Property, error) {
	if err := ValidateProperty(prop); err != nil {
		return models.Property{}, err
	}
	// New listings always enter the moderation queue.
	prop.Status = models.StatusPending
	return s.PropertyRepo.CreateProperty(ctx, prop)
}

// GetPropertyByID hydrates the detail view. Views are counted only when the
// viewer is not the owner; anonymous viewers count too.
func (s *PropertyService) GetPropertyByID(ctx context.Context, id int, viewerID int) (models.Property, error) {
	prop, err := s.PropertyRepo.GetPropertyByID(ctx, id, viewerID)
	if err != nil {
		return models.Property{}, err
	}
	if viewerID != prop.UserID {
		if err := s.PropertyRepo.IncrementViews(ctx, id); err == nil {
			prop.Views++
		}
	}
	return prop, nil
}

// UpdateProperty rewrites an owned listing. Any edit to a listing that
// already passed moderation sends it back to the pending queue.
func (s *PropertyService) UpdateProperty(ctx context.Context, prop models.Property, editorID int) (models.Property, error) {
	existing, err := s.PropertyRepo.GetPropertyByID(ctx, prop.ID, 0)
	if err != nil {
		return models.Property{}, err
	}
	if existing.UserID != editorID {
		return models.Property{}, ErrForbidden
	}

	prop.UserID = existing.UserID
	if err := ValidateProperty(prop); err != nil {
		return models.Property{}, err
	}

	prop.Status = models.StatusPending
	return s.PropertyRepo.UpdateProperty(ctx, prop)
}

func (s *PropertyService) DeleteProperty(ctx context.Context, id, requesterID int, requesterRole string) error {
	existing, err := s.PropertyRepo.GetPropertyByID(ctx, id, 0)
	if err != nil {
		return err
	}
	if existing.UserID != requesterID && requesterRole != models.RoleAdmin {
		return ErrForbidden
	}
	return s.PropertyRepo.DeleteProperty(ctx, id)
}

func (s *PropertyService) GetFilteredProperties(ctx context.Context, filter models.PropertyFilterRequest, userID int) (models.PropertyListResponse, error) {
	filter = NormalizeFilter(filter)
	offset := (filter.Page - 1) * filter.Limit

	props, total, err := s.PropertyRepo.GetFilteredProperties(ctx, filter, userID, filter.Limit, offset)
	if err != nil {
		return models.PropertyListResponse{}, err
	}

	return models.PropertyListResponse{
		Properties: props,
		Total:      total,
		Page:       filter.Page,
		Pages:      pageCount(total, filter.Limit),
	}, nil
}

func (s *PropertyService) GetPropertiesByUserID(ctx context.Context, userID int) ([]models.Property, error) {
	return s.PropertyRepo.GetPropertiesByUserID(ctx, userID)
}

// MarkTransacted lets the owner close an active listing as rented or sold.
func (s *PropertyService) MarkTransacted(ctx context.Context, propertyID, ownerID int, status string) error {
	existing, err := s.PropertyRepo.GetPropertyByID(ctx, propertyID, 0)
	if err != nil {
		return err
	}
	if existing.UserID != ownerID {
		return ErrForbidden
	}
	if err := closingTransition(existing.Status, status); err != nil {
		return err
	}
	return s.PropertyRepo.UpdateStatus(ctx, propertyID, status)
}

// Moderate approves or rejects a pending listing.
func (s *PropertyService) Moderate(ctx context.Context, propertyID int, status string) (models.Property, error) {
	existing, err := s.PropertyRepo.GetPropertyByID(ctx, propertyID, 0)
	if err != nil {
		return models.Property{}, err
	}
	if err := moderationTransition(existing.Status, status); err != nil {
		return models.Property{}, err
	}
	if err := s.PropertyRepo.UpdateStatus(ctx, propertyID, status); err != nil {
		return models.Property{}, err
	}
	existing.Status = status
	return existing, nil
}

func (s *PropertyService) GetPendingProperties(ctx context.Context, page int) (models.PropertyListResponse, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * DefaultPageSize

	props, total, err := s.PropertyRepo.FetchByStatus(ctx, models.StatusPending, DefaultPageSize, offset)
	if err != nil {
		return models.PropertyListResponse{}, err
	}
	return models.PropertyListResponse{
		Properties: props,
		Total:      total,
		Page:       page,
		Pages:      pageCount(total, DefaultPageSize),
	}, nil
}

func (s *PropertyService) GetHistory(ctx context.Context) ([]models.Property, error) {
	return s.PropertyRepo.GetHistory(ctx, HistoryCutoff(time.Now()))
}

// ArchiveExpired is invoked by the background cleaner.
func (s *PropertyService) ArchiveExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.PropertyRepo.ArchiveExpired(ctx, HistoryCutoff(now))
}
