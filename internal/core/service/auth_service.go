package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

// bcryptCost is deliberately above the library default to slow brute-force
// attempts against stolen hashes.
const bcryptCost = 12

// AuthService implements registration, login and logout. Tokens are verified
// statelessly; the session store only exists so logout can revoke a live
// session before its token expires.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	// Email is a case-insensitive identity key; it is stored and matched in
	// lowercase.
	email = strings.ToLower(strings.TrimSpace(email))

	if msgs := registrationProblems(email, username, password); len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	// Fast-path UX check only. The unique index on username is the
	// authoritative duplicate signal; a concurrent insert between this check
	// and Create surfaces as ErrDuplicateUsername from the store.
	if existing, err := s.users.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("member registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError("email and password are required")
	}

	user, err := s.users.FindCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrAccountUnavailable
		}
		return "", nil, err
	}

	// Disabled accounts fail regardless of password correctness.
	if user.IsDisabled {
		return "", nil, domain.ErrAccountUnavailable
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	// Every login gets a fresh session correlator; correlators are never
	// reused across logins.
	sessionID := uuid.NewString()

	token, err := s.issueToken(user, sessionID)
	if err != nil {
		return "", nil, err
	}

	session := ports.Session{UserID: user.ID, Role: user.Role, IsLogin: true}
	if err := s.sessions.Put(ctx, sessionID, session, s.tokenTTL); err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("session_id", sessionID).Msg("member logged in")

	user.PasswordHash = ""
	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) issueToken(user *domain.User, sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// registrationProblems collects every field problem so the client sees the
// full list at once.
func registrationProblems(email, username, password string) []string {
	var msgs []string
	if email == "" {
		msgs = append(msgs, "email is required")
	}
	if username == "" {
		msgs = append(msgs, "username is required")
	}
	msgs = append(msgs, passwordProblems(password)...)
	return msgs
}

// passwordProblems enforces the password policy: at least 8 characters,
// containing both letters and digits.
func passwordProblems(password string) []string {
	var msgs []string
	if len(password) < 8 {
		msgs = append(msgs, "password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if password != "" && (!hasLetter || !hasDigit) {
		msgs = append(msgs, "password must contain letters and digits")
	}
	return msgs
}
