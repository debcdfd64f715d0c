package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=auth
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUserStatus(ctx context.Context, id uuid.UUID, status Status) error
	CreateSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	DeleteUserSessions(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type Service struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(repo Repository, secret string, ttl time.Duration) *Service {
	return &Service{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

type RegisterParams struct {
	Email    string
	Name     string
	Password string
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	_, err := s.repo.GetUserByEmail(ctx, params.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: string(hash),
		Role:         RoleUser,
		Status:       StatusActive,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return u, nil
}

// Login verifies the credentials and opens a session. Suspended accounts are
// rejected before any session is written.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if u.Status == StatusSuspended {
		return nil, "", ErrSuspended
	}

	token, err := s.IssueSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// IssueSession writes a session row and signs a token naming it.
func (s *Service) IssueSession(ctx context.Context, userID uuid.UUID) (string, error) {
	now := s.now()
	session := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}

	claims := jwt.RegisteredClaims{
		ID:        session.ID.String(),
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

// Resolve maps a bearer token to its user. The session row is the source of
// truth: a signed token whose row is gone resolves to nothing. Resolving a
// suspended user tears down every session they still hold.
func (s *Service) Resolve(ctx context.Context, token string) (*User, error) {
	sid, err := s.sessionID(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.repo.GetSession(ctx, sid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("fetching session: %w", err)
	}

	if session.Expired(s.now()) {
		if err := s.repo.DeleteSession(ctx, session.ID); err != nil {
			slog.Warn("deleting expired session", "session_id", session.ID, "error", err)
		}
		return nil, ErrInvalidSession
	}

	u, err := s.repo.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if u.Status == StatusSuspended {
		if _, err := s.repo.DeleteUserSessions(ctx, u.ID); err != nil {
			slog.Warn("deleting sessions of suspended user", "user_id", u.ID, "error", err)
		}
		return nil, ErrSuspended
	}

	return u, nil
}

// Logout deletes the token's session row. Unknown or malformed tokens are not
// an error: the login is gone either way.
func (s *Service) Logout(ctx context.Context, token string) error {
	sid, err := s.sessionID(token)
	if err != nil {
		return nil
	}

	if err := s.repo.DeleteSession(ctx, sid); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}

func (s *Service) Suspend(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.UpdateUserStatus(ctx, userID, StatusSuspended); err != nil {
		return fmt.Errorf("suspending user: %w", err)
	}

	if _, err := s.repo.DeleteUserSessions(ctx, userID); err != nil {
		slog.Warn("deleting sessions of suspended user", "user_id", userID, "error", err)
	}

	return nil
}

func (s *Service) Reactivate(ctx context.Context, userID uuid.UUID) error {
	return s.repo.UpdateUserStatus(ctx, userID, StatusActive)
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

// SweepExpired removes session rows past their expiry.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredSessions(ctx, s.now())
}

func (s *Service) sessionID(token string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing token: %w", err)
	}

	sid, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing session id: %w", err)
	}

	return sid, nil
}
