package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"imoveisBack/internal/models"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
)

type PropertyRepository struct {
	DB *sql.DB
}

// propertyColumns is the shared select list for queries that hydrate a full
// listing together with its owner contact card.
const propertyColumns = `
        p.id, p.title, p.description, p.price, p.transaction_type, p.property_type,
        p.municipality, p.bairro, p.bedrooms, p.bathrooms, p.area, p.amenities,
        p.images, p.status, p.user_id,
        u.id, u.name, u.phone, u.whatsapp, u.facebook, u.avatar_path,
        p.views, p.created_at, p.updated_at, p.status_changed_at`

func (r *PropertyRepository) CreateProperty(ctx context.Context, prop models.Property) (models.Property, error) {
	query := `
    INSERT INTO properties (title, description, price, transaction_type, property_type,
        municipality, bairro, bedrooms, bathrooms, area, amenities, images, status,
        user_id, views, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 0, $15)
    RETURNING id
    `

	imagesJSON, err := json.Marshal(prop.Images)
	if err != nil {
		return models.Property{}, err
	}
	amenitiesJSON, err := json.Marshal(prop.Amenities)
	if err != nil {
		return models.Property{}, err
	}

	prop.CreatedAt = time.Now()

	err = r.DB.QueryRowContext(ctx, query,
		prop.Title,
		prop.Description,
		prop.Price,
		prop.TransactionType,
		prop.PropertyType,
		prop.Municipality,
		prop.Bairro,
		prop.Bedrooms,
		prop.Bathrooms,
		prop.Area,
		string(amenitiesJSON),
		string(imagesJSON),
		prop.Status,
		prop.UserID,
		prop.CreatedAt,
	).Scan(&prop.ID)
	if err != nil {
		return models.Property{}, err
	}
	return prop, nil
}

// GetPropertyByID hydrates one listing. userID marks the favorite flag for
// the viewer; zero means anonymous.
func (r *PropertyRepository) GetPropertyByID(ctx context.Context, id int, userID int) (models.Property, error) {
	query := fmt.Sprintf(`
        SELECT %s,
               CASE WHEN f.id IS NOT NULL THEN true ELSE false END AS liked
        FROM properties p
        JOIN users u ON p.user_id = u.id
        LEFT JOIN favorites f ON f.property_id = p.id AND f.user_id = $1
        WHERE p.id = $2
    `, propertyColumns)

	row := r.DB.QueryRowContext(ctx, query, userID, id)
	prop, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return models.Property{}, ErrPropertyNotFound
	}
	if err != nil {
		return models.Property{}, err
	}
	return prop, nil
}

// updatePropertyQuery rewrites every listing column. Edits reset the
// moderation status, so status_changed_at is stamped alongside updated_at.
const updatePropertyQuery = `
    UPDATE properties
    SET title = $1, description = $2, price = $3, transaction_type = $4, property_type = $5,
        municipality = $6, bairro = $7, bedrooms = $8, bathrooms = $9, area = $10,
        amenities = $11, images = $12, status = $13, status_changed_at = $14, updated_at = $14
    WHERE id = $15
    `

func (r *PropertyRepository) UpdateProperty(ctx context.Context, prop models.Property) (models.Property, error) {
	imagesJSON, err := json.Marshal(prop.Images)
	if err != nil {
		return models.Property{}, fmt.Errorf("failed to marshal images: %w", err)
	}
	amenitiesJSON, err := json.Marshal(prop.Amenities)
	if err != nil {
		return models.Property{}, fmt.Errorf("failed to marshal amenities: %w", err)
	}

	updatedAt := time.Now()
	prop.UpdatedAt = &updatedAt

	result, err := r.DB.ExecContext(ctx, updatePropertyQuery,
		prop.Title, prop.Description, prop.Price, prop.TransactionType, prop.PropertyType,
		prop.Municipality, prop.Bairro, prop.Bedrooms, prop.Bathrooms, prop.Area,
		string(amenitiesJSON), string(imagesJSON), prop.Status, prop.UpdatedAt, prop.ID,
	)
	if err != nil {
		return models.Property{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Property{}, err
	}
	if rowsAffected == 0 {
		return models.Property{}, ErrPropertyNotFound
	}
	return r.GetPropertyByID(ctx, prop.ID, 0)
}

func (r *PropertyRepository) DeleteProperty(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// UpdateStatus stamps status_changed_at so the history cleaner can separate
// fresh rented/sold rows from expired ones.
func (r *PropertyRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE properties SET status = $1, status_changed_at = $2, updated_at = $2 WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) IncrementViews(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE properties SET views = views + 1 WHERE id = $1`, id)
	return err
}

// GetFilteredProperties returns one page of active listings matching the
// search form, plus the total match count for page derivation.
func (r *PropertyRepository) GetFilteredProperties(ctx context.Context, filter models.PropertyFilterRequest, userID, limit, offset int) ([]models.Property, int, error) {
	conditions, filterParams := buildPropertyFilter(filter, 3)

	where := "p.status = $2"
	if len(conditions) > 0 {
		where += " AND " + strings.Join(conditions, " AND ")
	}

	params := append([]interface{}{userID, models.StatusActive}, filterParams...)

	query := fmt.Sprintf(`
        SELECT %s,
               CASE WHEN f.id IS NOT NULL THEN true ELSE false END AS liked
        FROM properties p
        JOIN users u ON p.user_id = u.id
        LEFT JOIN favorites f ON f.property_id = p.id AND f.user_id = $1
        WHERE %s
        ORDER BY p.created_at DESC
        LIMIT $%d OFFSET $%d
    `, propertyColumns, where, len(params)+1, len(params)+2)

	rows, err := r.DB.QueryContext(ctx, query, append(params, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var props []models.Property
	for rows.Next() {
		prop, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		props = append(props, prop)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("filtered properties rows error: %w", err)
	}

	countQuery := fmt.Sprintf(`
        SELECT COUNT(*)
        FROM properties p
        LEFT JOIN favorites f ON f.property_id = p.id AND f.user_id = $1
        WHERE %s
    `, where)

	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, params...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return props, total, nil
}

func (r *PropertyRepository) GetPropertiesByUserID(ctx context.Context, userID int) ([]models.Property, error) {
	query := fmt.Sprintf(`
        SELECT %s, false AS liked
        FROM properties p
        JOIN users u ON p.user_id = u.id
        WHERE p.user_id = $1
        ORDER BY p.created_at DESC
    `, propertyColumns)

	return r.queryProperties(ctx, query, userID)
}

// FetchByStatus pages through listings in a given moderation state, newest
// first. Used by the admin queue.
func (r *PropertyRepository) FetchByStatus(ctx context.Context, status string, limit, offset int) ([]models.Property, int, error) {
	query := fmt.Sprintf(`
        SELECT %s, false AS liked
        FROM properties p
        JOIN users u ON p.user_id = u.id
        WHERE p.status = $1
        ORDER BY p.created_at DESC
        LIMIT $2 OFFSET $3
    `, propertyColumns)

	props, err := r.queryProperties(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties WHERE status = $1`, status).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	return props, total, nil
}

// GetHistory lists rented/sold rows still inside the retention window.
func (r *PropertyRepository) GetHistory(ctx context.Context, cutoff time.Time) ([]models.Property, error) {
	query := fmt.Sprintf(`
        SELECT %s, false AS liked
        FROM properties p
        JOIN users u ON p.user_id = u.id
        WHERE p.status IN ($1, $2) AND p.status_changed_at >= $3
        ORDER BY p.status_changed_at DESC
    `, propertyColumns)

	return r.queryProperties(ctx, query, models.StatusRented, models.StatusSold, cutoff)
}

// ArchiveExpired moves rented/sold rows older than the cutoff into the
// terminal archived state. Returns the number of rows archived.
func (r *PropertyRepository) ArchiveExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE properties
        SET status = $1, updated_at = $2
        WHERE status IN ($3, $4) AND status_changed_at < $5
    `, models.StatusArchived, time.Now(), models.StatusRented, models.StatusSold, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PropertyRepository) queryProperties(ctx context.Context, query string, args ...interface{}) ([]models.Property, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var props []models.Property
	for rows.Next() {
		prop, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("properties rows error: %w", err)
	}
	return props, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (models.Property, error) {
	var (
		p             models.Property
		amenitiesJSON []byte
		imagesJSON    []byte
		phone, wapp   sql.NullString
		facebook      sql.NullString
		description   sql.NullString
	)

	err := row.Scan(
		&p.ID, &p.Title, &description, &p.Price, &p.TransactionType, &p.PropertyType,
		&p.Municipality, &p.Bairro, &p.Bedrooms, &p.Bathrooms, &p.Area, &amenitiesJSON,
		&imagesJSON, &p.Status, &p.UserID,
		&p.Owner.ID, &p.Owner.Name, &phone, &wapp, &facebook, &p.Owner.AvatarPath,
		&p.Views, &p.CreatedAt, &p.UpdatedAt, &p.StatusChangedAt,
		&p.Liked,
	)
	if err != nil {
		return models.Property{}, err
	}

	p.Description = description.String
	p.Owner.Phone = phone.String
	p.Owner.Whatsapp = wapp.String
	p.Owner.Facebook = facebook.String

	if len(amenitiesJSON) > 0 {
		if err := json.Unmarshal(amenitiesJSON, &p.Amenities); err != nil {
			return models.Property{}, fmt.Errorf("failed to decode amenities json: %w", err)
		}
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return models.Property{}, fmt.Errorf("failed to decode images json: %w", err)
		}
	}

	return p, nil
}
