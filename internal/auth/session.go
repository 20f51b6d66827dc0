package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitcalc/pkg"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultTTL       = 30 * 24 * time.Hour
	sessionKeyPrefix = "fitcalc-session||"
	tokenLength      = 35
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
}

// Sessions reads the sessions issued by the account service.
// A session is stored as: fitcalc-session||<token> -> <user id>|<created unix>
type Sessions struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewSessions(ttl time.Duration, redisClient *redis.Client) *Sessions {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Sessions{
		ttl:            ttl,
		redisClient:    redisClient,
		now:            time.Now,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// Lookup returns the session behind the token, or ErrSessionNotFound if it is unknown or expired.
func (s *Sessions) Lookup(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	val, err := s.redisClient.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	userID, createdAt, err := parseSessionValue(val)
	if err != nil {
		return nil, err
	}
	if s.now().Sub(createdAt) > s.ttl {
		return nil, ErrSessionNotFound
	}

	return &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: createdAt,
	}, nil
}

// Issue stores a new session for the user. Production tokens come from the account
// service, this one serves the CLI and the integration tests.
func (s *Sessions) Issue(ctx context.Context, userID int64) (string, error) {
	token, err := s.RandStringFunc(tokenLength)
	if err != nil {
		return "", err
	}

	value := fmt.Sprintf("%d|%d", userID, s.now().Unix())
	if err := s.redisClient.Set(ctx, sessionKey(token), value, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("set session: %w", err)
	}

	return token, nil
}

func (s *Sessions) Revoke(ctx context.Context, token string) error {
	if err := s.redisClient.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func parseSessionValue(val string) (int64, time.Time, error) {
	userIDStr, createdAtStr, found := strings.Cut(val, "|")
	if !found {
		return 0, time.Time{}, fmt.Errorf("malformed session value [%s]", val)
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("parse session user id: %w", err)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("parse session created at: %w", err)
	}
	return userID, time.Unix(createdAtUnix, 0), nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func BearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
