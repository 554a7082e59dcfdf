package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/aslanbekov/pcforge-backend/pkg/auth"
	"github.com/aslanbekov/pcforge-backend/pkg/auth/session"
	"github.com/aslanbekov/pcforge-backend/pkg/config"
	"github.com/aslanbekov/pcforge-backend/pkg/db/models"
	"github.com/aslanbekov/pcforge-backend/pkg/enums"
	pkgerrors "github.com/aslanbekov/pcforge-backend/pkg/errors"
	"github.com/aslanbekov/pcforge-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "pcforge",
		ExpirationMinutes: 15,
	}
}

type stubUserRepo struct {
	byEmail    map[string]*models.User
	byID       map[uuid.UUID]*models.User
	lastLogins int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
}

func (s *stubUserRepo) add(user *models.User) {
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, _ time.Time) error {
	s.lastLogins++
	return nil
}

type stubSessionManager struct {
	sessions map[string]string
	revoked  []string
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{sessions: map[string]string{}}
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.sessions[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.sessions[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.sessions, oldAccessID)
	newAccessID := uuid.NewString()
	newToken := "refresh-" + newAccessID
	s.sessions[newAccessID] = newToken
	return newAccessID, newToken, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	delete(s.sessions, accessID)
	return nil
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     "builder01",
		PasswordHash: hash,
		Role:         enums.UserRoleUser,
	}
	repo.add(user)
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo := newStubUserRepo()
	manager := newStubSessionManager()
	user := seedUser(t, repo, "builder@example.kz", "Secret123!")

	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: manager,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Builder@Example.KZ",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if resp.User == nil || resp.User.ID != user.ID {
		t.Fatal("expected logged-in user in response")
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if repo.lastLogins != 1 {
		t.Fatalf("expected last login update, got %d", repo.lastLogins)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != enums.UserRoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, ok := manager.sessions[claims.ID]; !ok {
		t.Fatal("expected refresh session keyed by jti")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "builder@example.kz", "Secret123!")
	svc, _ := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: newStubSessionManager(),
		JWTConfig:      testJWTConfig(),
	})

	cases := []LoginRequest{
		{Email: "builder@example.kz", Password: "wrong"},
		{Email: "ghost@example.kz", Password: "Secret123!"},
		{Email: "", Password: "Secret123!"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized for %+v, got %v", req, err)
		}
	}
}

func TestMe(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "builder@example.kz", "Secret123!")
	svc, _ := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: newStubSessionManager(),
		JWTConfig:      testJWTConfig(),
	})

	dto, err := svc.Me(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if dto.Email != user.Email {
		t.Fatalf("expected email %s, got %s", user.Email, dto.Email)
	}

	_, err = svc.Me(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	manager := newStubSessionManager()
	svc, _ := NewService(ServiceParams{
		UserRepo:       newStubUserRepo(),
		SessionManager: manager,
		JWTConfig:      testJWTConfig(),
	})

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(manager.revoked) != 1 || manager.revoked[0] != "access-id" {
		t.Fatalf("expected revoke call, got %v", manager.revoked)
	}

	err := svc.Logout(context.Background(), "  ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for blank access id, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	repo := newStubUserRepo()
	manager := newStubSessionManager()
	user := seedUser(t, repo, "builder@example.kz", "Secret123!")
	svc, _ := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: manager,
		JWTConfig:      testJWTConfig(),
	})

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "builder@example.kz",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.Tokens.AccessToken,
		RefreshToken: login.Tokens.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.Tokens.RefreshToken == login.Tokens.RefreshToken {
		t.Fatal("expected rotated refresh token")
	}
	if refreshed.User.ID != user.ID {
		t.Fatal("expected same user after refresh")
	}

	// Old pair is now dead.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.Tokens.AccessToken,
		RefreshToken: login.Tokens.RefreshToken,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized replaying old pair, got %v", err)
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := NewService(ServiceParams{
		UserRepo:       newStubUserRepo(),
		SessionManager: newStubSessionManager(),
		JWTConfig:      testJWTConfig(),
	})

	_, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "not-a-jwt",
		RefreshToken: "whatever",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

