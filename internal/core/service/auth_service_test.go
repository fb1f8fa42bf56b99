package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vanguox/accounts-api/internal/core/domain"
	"github.com/vanguox/accounts-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
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

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// stubSessions counts issuance so tests can assert "no session on failure".
type stubSessions struct {
	issued  int
	revoked []string
}

func (s *stubSessions) Issue(_ context.Context, userID string) (*domain.Session, error) {
	s.issued++
	return &domain.Session{
		ID:        "sess_1",
		UserID:    userID,
		Token:     "token_" + userID,
		ExpiresAt: time.Now().Add(time.Hour),
		User:      &domain.User{ID: userID},
	}, nil
}

func (s *stubSessions) Verify(_ context.Context, token string) string { return "" }

func (s *stubSessions) Invalidate(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func newAuthService(t *testing.T) (*AuthService, *stubUserRepo, *stubSessions) {
	t.Helper()
	repo := newStubUserRepo()
	sessions := &stubSessions{}
	return NewAuthService(repo, sessions, testLogger()), repo, sessions
}

func register(t *testing.T, svc *AuthService, email, password string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  password,
		Pin:       "1234",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return user
}

func TestAuthService_Register_HashesSecrets(t *testing.T) {
	svc, _, sessions := newAuthService(t)

	user := register(t, svc, "ada@example.com", "Abcd123!")
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "Abcd123!" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Abcd123!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.PinHash == "1234" {
		t.Fatalf("expected pin to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte("1234")); err != nil {
		t.Fatalf("stored pin hash does not match pin: %v", err)
	}
	if user.PasswordHash == user.PinHash {
		t.Fatalf("password and pin must be hashed independently")
	}
	if sessions.issued != 0 {
		t.Fatalf("registration must not issue a session, issued %d", sessions.issued)
	}
}

func TestAuthService_Register_SaltsPerCall(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	first := register(t, svc, "a@x.com", "Abcd123!")
	second := register(t, svc, "b@x.com", "Abcd123!")
	if first.PasswordHash == second.PasswordHash {
		t.Fatalf("same plaintext must yield different digests")
	}
	for _, u := range []*domain.User{first, second} {
		stored, err := repo.FindByEmail(context.Background(), u.Email)
		if err != nil {
			t.Fatalf("find %s: %v", u.Email, err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Abcd123!")); err != nil {
			t.Fatalf("digest for %s does not verify: %v", u.Email, err)
		}
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	cases := []ports.RegisterInput{
		{LastName: "L", Email: "a@x.com", Password: "p", Pin: "1"},
		{FirstName: "F", Email: "a@x.com", Password: "p", Pin: "1"},
		{FirstName: "F", LastName: "L", Password: "p", Pin: "1"},
		{FirstName: "F", LastName: "L", Email: "a@x.com", Pin: "1"},
		{FirstName: "F", LastName: "L", Email: "a@x.com", Password: "p"},
	}
	for i, in := range cases {
		if _, err := svc.Register(context.Background(), in); err != domain.ErrInvalidInput {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
	if len(repo.users) != 0 {
		t.Fatalf("no records must be created on failure, got %d", len(repo.users))
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	register(t, svc, "bob@example.com", "first-pass")
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "bob@example.com",
		Password:  "other-pass",
		Pin:       "9999",
	}); err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("duplicate registration must not insert, have %d records", len(repo.users))
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user := register(t, svc, "  Ada@Example.COM ", "Abcd123!")
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if _, err := svc.Login(context.Background(), "ADA@example.com", "Abcd123!"); err != nil {
		t.Fatalf("login with differently cased email failed: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, sessions := newAuthService(t)

	user := register(t, svc, "carol@example.com", "s3cret-pw")
	session, err := svc.Login(context.Background(), "carol@example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session == nil || session.Token == "" {
		t.Fatalf("expected session with token, got %+v", session)
	}
	if session.UserID != user.ID {
		t.Fatalf("session bound to %q, want %q", session.UserID, user.ID)
	}
	if sessions.issued != 1 {
		t.Fatalf("expected exactly one session issued, got %d", sessions.issued)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, sessions := newAuthService(t)

	register(t, svc, "a@x.com", "Abcd123!")
	if _, err := svc.Login(context.Background(), "a@x.com", "wrong"); err != domain.ErrWrongPassword {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if sessions.issued != 0 {
		t.Fatalf("failed login must not issue a session")
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, sessions := newAuthService(t)

	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); err != domain.ErrUnknownEmail {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}
	if sessions.issued != 0 {
		t.Fatalf("failed login must not issue a session")
	}
}

func TestAuthService_Logout_Revokes(t *testing.T) {
	svc, _, sessions := newAuthService(t)

	if err := svc.Logout(context.Background(), "some-token"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "some-token" {
		t.Fatalf("expected token revoked, got %v", sessions.revoked)
	}
}
