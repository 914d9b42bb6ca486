package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// cloneWithoutHash mirrors the default projection of the real store.
func cloneWithoutHash(u *domain.User) *domain.User {
	clone := cloneUser(u)
	clone.PasswordHash = ""
	return clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneWithoutHash(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneWithoutHash(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindCredentialsByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Role == domain.RoleUser {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindCredentialsByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id, username, picture string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Username = username
	if picture != "" {
		u.Picture = picture
	}
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) SetDisabled(_ context.Context, id string, disabled bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsDisabled = disabled
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) matchMembers(filter ports.MemberFilter) []domain.User {
	var out []domain.User
	for _, u := range r.users {
		if u.Role != domain.RoleUser || u.IsDisabled != filter.Disabled {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(u.ID, filter.Search) &&
			!strings.Contains(u.Username, filter.Search) &&
			!strings.Contains(u.Email, filter.Search) {
			continue
		}
		out = append(out, *cloneWithoutHash(u))
	}
	return out
}

func (r *stubUserRepo) CountMembers(_ context.Context, filter ports.MemberFilter) (int64, error) {
	return int64(len(r.matchMembers(filter))), nil
}

func (r *stubUserRepo) FindMembers(_ context.Context, filter ports.MemberFilter, sortAsc bool, skip, limit int64) ([]domain.User, error) {
	members := r.matchMembers(filter)
	sort.Slice(members, func(i, j int) bool {
		if sortAsc {
			return members[i].CreatedAt.Before(members[j].CreatedAt)
		}
		return members[i].CreatedAt.After(members[j].CreatedAt)
	})
	if skip >= int64(len(members)) {
		return nil, nil
	}
	members = members[skip:]
	if int64(len(members)) > limit {
		members = members[:limit]
	}
	return members, nil
}

type stubSessionStore struct {
	sessions map[string]ports.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]ports.Session)}
}

func (s *stubSessionStore) Put(_ context.Context, sessionID string, session ports.Session, _ time.Duration) error {
	s.sessions[sessionID] = session
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, sessionID string) (*ports.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *stubSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func newAuthService(repo *stubUserRepo, sessions *stubSessionStore) *AuthService {
	return NewAuthService(repo, sessions, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubSessionStore())

	user, err := svc.Register(context.Background(), "bob@example.com", "bob", "Secret123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "Secret123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("other-pass1")) == nil {
		t.Fatalf("hash matched a different plaintext")
	}
}

func TestAuthService_Register_AggregatesValidation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	_, err := svc.Register(context.Background(), "", "bob", "short")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Messages) < 2 {
		t.Fatalf("expected aggregated messages, got %v", ve.Messages)
	}
}

func TestAuthService_Register_PasswordPolicy(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	// Long enough but digits only.
	_, err := svc.Register(context.Background(), "bob@example.com", "bob", "123456789")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubSessionStore())

	if _, err := svc.Register(context.Background(), "a@x.com", "bob", "Secret123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), "a@x.com", "carol", "Secret123")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected no second record, have %d", len(repo.users))
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	if _, err := svc.Register(context.Background(), "a@x.com", "bob", "Secret123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "b@x.com", "bob", "Secret123"); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := newAuthService(repo, sessions)

	registered, err := svc.Register(context.Background(), "a@x.com", "bob", "Secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "a@x.com", "Secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.PasswordHash != "" {
		t.Fatalf("login response leaked the password hash")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Fatalf("expected sub %q, got %v", registered.ID, claims["sub"])
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		t.Fatalf("token missing session correlator")
	}
	session, _ := sessions.Get(context.Background(), sid)
	if session == nil || !session.IsLogin {
		t.Fatalf("expected server-side session marked logged in, got %+v", session)
	}
	if session.Role != domain.RoleUser {
		t.Fatalf("session recorded wrong role: %q", session.Role)
	}
}

func TestAuthService_Login_FreshCorrelatorPerLogin(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	if _, err := svc.Register(context.Background(), "a@x.com", "bob", "Secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	first, _, err := svc.Login(context.Background(), "a@x.com", "Secret123")
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	second, _, err := svc.Login(context.Background(), "a@x.com", "Secret123")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	if sessionIDFromToken(t, first) == sessionIDFromToken(t, second) {
		t.Fatalf("session correlator was reused across logins")
	}
}

func sessionIDFromToken(t *testing.T, token string) string {
	t.Helper()
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	sid, _ := claims["sid"].(string)
	return sid
}

func TestAuthService_Login_EmailCaseInsensitive(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	if _, err := svc.Register(context.Background(), "A@X.com", "bob", "Secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.COM", "Secret123"); err != nil {
		t.Fatalf("login with different email casing failed: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	if _, err := svc.Register(context.Background(), "a@x.com", "bob", "Secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", "WrongPass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "Secret123"); !errors.Is(err, domain.ErrAccountUnavailable) {
		t.Fatalf("expected ErrAccountUnavailable, got %v", err)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubSessionStore())

	user, err := svc.Register(context.Background(), "a@x.com", "bob", "Secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := repo.SetDisabled(context.Background(), user.ID, true); err != nil {
		t.Fatalf("disable failed: %v", err)
	}

	// The password is correct; the disabled flag alone must block the login.
	if _, _, err := svc.Login(context.Background(), "a@x.com", "Secret123"); !errors.Is(err, domain.ErrAccountUnavailable) {
		t.Fatalf("expected ErrAccountUnavailable, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	var ve *domain.ValidationError
	if _, _, err := svc.Login(context.Background(), "", ""); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	sessions := newStubSessionStore()
	svc := newAuthService(newStubUserRepo(), sessions)

	if _, err := svc.Register(context.Background(), "a@x.com", "bob", "Secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "a@x.com", "Secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	sid := sessionIDFromToken(t, token)
	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if session, _ := sessions.Get(context.Background(), sid); session != nil {
		t.Fatalf("session survived logout")
	}
}
