package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"imoveisBack/internal/models"
)

// SessionRepository keeps refresh-token sessions and password-reset codes in
// Redis. Sessions live under two keys: refresh:<token> carries the session
// payload with TTL, session:<userID> points at the current token so a new
// sign-in or logout invalidates the previous one.
type SessionRepository struct {
	Client *redis.Client
}

const (
	sessionTTL   = 60 * 24 * time.Hour
	resetCodeTTL = 10 * time.Minute
)

func refreshKey(token string) string       { return "refresh:" + token }
func userKey(userID int) string            { return fmt.Sprintf("session:%d", userID) }
func resetKey(email string) string         { return "reset:" + email }
func resetAttemptsKey(email string) string { return "reset_attempts:" + email }

func (r *SessionRepository) SetSession(ctx context.Context, session models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// Drop the previous token for this user, if any.
	if old, err := r.Client.Get(ctx, userKey(session.UserID)).Result(); err == nil && old != "" {
		r.Client.Del(ctx, refreshKey(old))
	}

	pipe := r.Client.TxPipeline()
	pipe.Set(ctx, refreshKey(session.RefreshToken), payload, sessionTTL)
	pipe.Set(ctx, userKey(session.UserID), session.RefreshToken, sessionTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *SessionRepository) GetSessionByToken(ctx context.Context, token string) (models.Session, error) {
	payload, err := r.Client.Get(ctx, refreshKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, models.ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}

	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, userID int) error {
	token, err := r.Client.Get(ctx, userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := r.Client.TxPipeline()
	pipe.Del(ctx, refreshKey(token))
	pipe.Del(ctx, userKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}

func (r *SessionRepository) SetResetCode(ctx context.Context, email, code string) error {
	return r.Client.Set(ctx, resetKey(email), code, resetCodeTTL).Err()
}

func (r *SessionRepository) GetResetCode(ctx context.Context, email string) (string, error) {
	code, err := r.Client.Get(ctx, resetKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", models.ErrInvalidResetCode
	}
	return code, err
}

// IncrResetAttempts counts failed code checks for an email. The counter
// expires together with the code's own TTL.
func (r *SessionRepository) IncrResetAttempts(ctx context.Context, email string) (int64, error) {
	pipe := r.Client.TxPipeline()
	incr := pipe.Incr(ctx, resetAttemptsKey(email))
	pipe.Expire(ctx, resetAttemptsKey(email), resetCodeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (r *SessionRepository) DeleteResetCode(ctx context.Context, email string) error {
	return r.Client.Del(ctx, resetKey(email), resetAttemptsKey(email)).Err()
}
