package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"imoveisBack/internal/models"
	"imoveisBack/internal/repositories"
)

const (
	tokenTTL          = 120 * time.Minute
	sessionTTL        = 60 * 24 * time.Hour
	minPasswordLength = 6

	// maxResetAttempts caps wrong guesses before the code is burned; a
	// 4-digit code must not be brute-forceable within its TTL.
	maxResetAttempts = 5
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	SessionRepo  *repositories.SessionRepository
	TokenManager TokenManager
	SigningKey   string
}

// TokenManager issues refresh tokens; utils.Manager satisfies it.
type TokenManager interface {
	NewRefreshToken() (string, error)
}

// ValidateSignUp covers the client-side checks of the signup form: required
// fields, plausible email, minimum password length.
func ValidateSignUp(user models.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return errors.New("name is required")
	}
	email := strings.TrimSpace(user.Email)
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("valid email is required")
	}
	if len(user.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	switch user.Role {
	case "", models.RoleClient, models.RoleSeller:
	default:
		return errors.New("role must be client or seller")
	}
	return nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

func (s *UserService) SignUp(ctx context.Context, user models.User) (models.SignInResponse, error) {
	if err := ValidateSignUp(user); err != nil {
		return models.SignInResponse{}, err
	}
	if user.Role == "" {
		user.Role = models.RoleClient
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	_, err := s.UserRepo.GetUserByEmail(ctx, user.Email)
	if err == nil {
		return models.SignInResponse{}, models.ErrDuplicateEmail
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return models.SignInResponse{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.SignInResponse{}, err
	}
	user.Password = string(hashedPassword)

	created, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.SignInResponse{}, err
	}

	// Auto-login after signup.
	tokens, err := s.issueTokens(ctx, created)
	if err != nil {
		return models.SignInResponse{}, err
	}

	created.Password = ""
	return models.SignInResponse{User: created, Tokens: tokens}, nil
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (models.SignInResponse, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return models.SignInResponse{}, models.ErrInvalidCredentials
		}
		return models.SignInResponse{}, err
	}

	if !user.Active {
		return models.SignInResponse{}, models.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Invalid password for user: %s", email)
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return models.SignInResponse{}, err
	}

	user.Password = ""
	return models.SignInResponse{User: user, Tokens: tokens}, nil
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.Tokens, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		UserID: uint(user.ID),
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
			Subject:   strconv.Itoa(user.ID),
		},
	})

	accessToken, err := token.SignedString([]byte(s.SigningKey))
	if err != nil {
		return models.Tokens{}, err
	}

	refreshToken := uuid.New().String()
	if s.TokenManager != nil {
		refreshToken, err = s.TokenManager.NewRefreshToken()
		if err != nil {
			return models.Tokens{}, err
		}
	}

	session := models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(sessionTTL),
	}
	if err := s.SessionRepo.SetSession(ctx, session); err != nil {
		return models.Tokens{}, err
	}

	return models.Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *UserService) Logout(ctx context.Context, userID int) error {
	return s.SessionRepo.DeleteSession(ctx, userID)
}

// RequestPasswordReset stores a short-lived 4-digit code for the account's
// email. The code is returned to the delivery layer; nothing is sent from
// here.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.UserRepo.GetUserByEmail(ctx, email); err != nil {
		return "", err
	}

	code, err := generateResetCode()
	if err != nil {
		return "", err
	}
	if err := s.SessionRepo.SetResetCode(ctx, email, code); err != nil {
		return "", err
	}
	return code, nil
}

// VerifyResetCode checks a submitted code. Wrong guesses are counted and the
// code is burned after maxResetAttempts failures.
func (s *UserService) VerifyResetCode(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	stored, err := s.SessionRepo.GetResetCode(ctx, email)
	if err != nil {
		return err
	}
	if stored != code {
		attempts, aerr := s.SessionRepo.IncrResetAttempts(ctx, email)
		if aerr != nil {
			log.Printf("failed to count reset attempts for %s: %v", email, aerr)
		} else if attempts >= maxResetAttempts {
			if derr := s.SessionRepo.DeleteResetCode(ctx, email); derr != nil {
				log.Printf("failed to burn reset code for %s: %v", email, derr)
			}
		}
		return models.ErrInvalidResetCode
	}
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if err := s.VerifyResetCode(ctx, email, code); err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return err
	}
	return s.SessionRepo.DeleteResetCode(ctx, email)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	existing, err := s.UserRepo.GetUserByEmail(ctx, user.Email)
	if err == nil && existing.ID != user.ID {
		return models.User{}, models.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return models.User{}, err
	}

	updated, err := s.UserRepo.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	updated.Password = ""
	return updated, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return models.ErrInvalidPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(ctx, userID, string(hashedPassword))
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.UserRepo.GetAllUsers(ctx)
}

// SetActive is the admin soft enable/disable switch. Deactivation also kills
// the user's session.
func (s *UserService) SetActive(ctx context.Context, userID int, active bool) error {
	if err := s.UserRepo.SetActive(ctx, userID, active); err != nil {
		return err
	}
	if !active {
		if err := s.SessionRepo.DeleteSession(ctx, userID); err != nil {
			log.Printf("failed to drop session for deactivated user %d: %v", userID, err)
		}
	}
	return nil
}
