package application

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
	repo "github.com/oksasatya/ward-admin/internal/domain/repository"
	"github.com/oksasatya/ward-admin/pkg/helpers"
)

// AuthService issues and resolves login sessions. A session is a JWT pair whose
// sid must match the hash stored in Redis under user:session:{id}.
type AuthService struct {
	Users  repo.UserRepository
	Redis  *redis.Client
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func NewAuthService(users repo.UserRepository, rdb *redis.Client, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Redis: rdb, JWT: jwt, Logger: logger}
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Authenticate validates email/password and returns the user.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens under a fresh sid and records the session.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.sign(u.ID, sid)
	if err != nil {
		helpers.LogError(s.Logger, "generate tokens failed", err, logrus.Fields{"user_id": u.ID})
		return TokenPair{}, err
	}
	fields := map[string]any{
		"user_id":    strconv.FormatInt(u.ID, 10),
		"email":      u.Email,
		"name":       u.Name,
		"sid":        sid,
		"created_at": nowRFC3339(),
	}
	if err := helpers.SaveSession(ctx, s.Redis, u.ID, fields, s.JWT.RefreshTTL); err != nil {
		helpers.LogError(s.Logger, "save session failed", err, logrus.Fields{"user_id": u.ID})
		return TokenPair{}, err
	}
	return pair, nil
}

func (s *AuthService) sign(userID int64, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the session id and both tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.sessionUser(ctx, claims)
	if err != nil {
		return TokenPair{}, err
	}
	return s.IssueTokens(ctx, u)
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return helpers.DeleteSession(ctx, s.Redis, userID)
}

// Resolve maps an access token to its user. It fails with ErrInvalidCredentials when the
// token is invalid, the session was replaced or logged out, or the user no longer exists.
func (s *AuthService) Resolve(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.sessionUser(ctx, claims)
}

func (s *AuthService) sessionUser(ctx context.Context, claims *helpers.Claims) (*entity.User, error) {
	sid, err := helpers.SessionID(ctx, s.Redis, claims.UserID)
	if err != nil {
		return nil, err
	}
	if sid == "" || sid != claims.SessionID {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return u, nil
}
