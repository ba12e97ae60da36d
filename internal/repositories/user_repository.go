package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"imoveisBack/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, name, email, phone, whatsapp, facebook, password, role, active, avatar_path, created_at, updated_at`

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        INSERT INTO users (name, email, phone, whatsapp, facebook, password, role, active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, true, $8)
        RETURNING id
    `
	user.CreatedAt = time.Now()
	user.Active = true

	err := r.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Phone, user.Whatsapp, user.Facebook,
		user.Password, user.Role, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

// GetUserByEmail returns ErrUserNotFound for a missing row; callers use that
// both for sign-in and for duplicate checks.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        UPDATE users
        SET name = $1, email = $2, phone = $3, whatsapp = $4, facebook = $5,
            avatar_path = $6, updated_at = $7
        WHERE id = $8
    `
	updatedAt := time.Now()
	user.UpdatedAt = &updatedAt

	result, err := r.DB.ExecContext(ctx, query,
		user.Name, user.Email, user.Phone, user.Whatsapp, user.Facebook,
		user.AvatarPath, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return models.User{}, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.User{}, err
	}
	if rowsAffected == 0 {
		return models.User{}, ErrUserNotFound
	}

	return r.GetUserByID(ctx, user.ID)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, hashedPassword string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password = $1, updated_at = $2 WHERE id = $3`,
		hashedPassword, time.Now(), userID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetActive soft-deactivates or restores an account. Accounts are never hard
// deleted once they own listings.
func (r *UserRepository) SetActive(ctx context.Context, userID int, active bool) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE users SET active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now(), userID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		user.Password = ""
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var phone, whatsapp, facebook sql.NullString

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &phone, &whatsapp, &facebook,
		&user.Password, &user.Role, &user.Active, &user.AvatarPath,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}

	user.Phone = phone.String
	user.Whatsapp = whatsapp.String
	user.Facebook = facebook.String
	return user, nil
}
