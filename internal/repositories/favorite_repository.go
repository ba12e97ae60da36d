package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"imoveisBack/internal/models"
)

type FavoriteRepository struct {
	DB *sql.DB
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// toggleFavorite flips the favorite state of (userID, propertyID) against
// the given transaction: delete first, insert only when nothing was deleted.
// Returns the resulting state.
func toggleFavorite(ctx context.Context, tx execer, userID, propertyID int) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND property_id = $2`,
		userID, propertyID)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO favorites (user_id, property_id) VALUES ($1, $2)
         ON CONFLICT (user_id, property_id) DO NOTHING`,
		userID, propertyID)
	if err != nil {
		return false, err
	}
	return true, nil
}

// Toggle runs the delete-first toggle in one transaction. Together with the
// UNIQUE(user_id, property_id) constraint this keeps rapid double-toggles
// from ever leaving duplicate rows.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, propertyID int) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	liked, err := toggleFavorite(ctx, tx, userID, propertyID)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return liked, nil
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID, propertyID int) (bool, error) {
	query := `SELECT COUNT(*) FROM favorites WHERE user_id = $1 AND property_id = $2`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userID, propertyID).Scan(&count)
	return count > 0, err
}

func (r *FavoriteRepository) GetFavoritesByUser(ctx context.Context, userID int) ([]models.Favorite, error) {
	query := `SELECT f.id, f.user_id, f.property_id, p.title, p.price, p.status, p.images, f.created_at
              FROM favorites f
              JOIN properties p ON f.property_id = p.id
              WHERE f.user_id = $1
              ORDER BY f.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favs []models.Favorite
	for rows.Next() {
		var fav models.Favorite
		var imagesJSON sql.NullString
		err := rows.Scan(&fav.ID, &fav.UserID, &fav.PropertyID, &fav.Title, &fav.Price, &fav.Status, &imagesJSON, &fav.CreatedAt)
		if err != nil {
			return nil, err
		}

		imgPath, err := extractFirstImagePath(imagesJSON)
		if err != nil {
			log.Printf("failed to decode property images for favorite %d: %v", fav.ID, err)
		}
		fav.ImagePath = imgPath
		favs = append(favs, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorites rows error: %w", err)
	}
	return favs, nil
}

// GetFavoriteIDsByUser returns the bare property-id set, used by the browse
// screen to mark cards without hydrating full rows.
func (r *FavoriteRepository) GetFavoriteIDsByUser(ctx context.Context, userID int) ([]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT property_id FROM favorites WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorite ids rows error: %w", err)
	}
	return ids, nil
}
