package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/aslanbekov/pcforge-backend/api/middleware"
	"github.com/aslanbekov/pcforge-backend/internal/builder"
	sessionsvc "github.com/aslanbekov/pcforge-backend/internal/buildersession"
	"github.com/aslanbekov/pcforge-backend/internal/users"
)

type stubBuilderService struct {
	snapshotUser builder.UserRef
	applied      *sessionsvc.TransitionInput
	resetCalled  bool
	err          error
}

func (s *stubBuilderService) Snapshot(_ context.Context, user builder.UserRef) (*sessionsvc.Session, error) {
	s.snapshotUser = user
	if s.err != nil {
		return nil, s.err
	}
	return &sessionsvc.Session{State: builder.NewState()}, nil
}

func (s *stubBuilderService) Apply(_ context.Context, user builder.UserRef, input sessionsvc.TransitionInput) (*sessionsvc.Session, error) {
	s.applied = &input
	if s.err != nil {
		return nil, s.err
	}
	return &sessionsvc.Session{State: builder.NewState()}, nil
}

func (s *stubBuilderService) Reset(_ context.Context, user builder.UserRef) (*sessionsvc.Session, error) {
	s.resetCalled = true
	if s.err != nil {
		return nil, s.err
	}
	return &sessionsvc.Session{State: builder.NewState()}, nil
}

func builderTestUsers(t *testing.T, userID uuid.UUID) *stubAuthService {
	t.Helper()
	return &stubAuthService{meResp: &users.UserDTO{
		ID:       userID,
		Email:    "aibek@example.kz",
		Username: "aibek",
	}}
}

func TestGetBuilderSession(t *testing.T) {
	userID := uuid.New()
	svc := &stubBuilderService{}
	handler := GetBuilderSession(svc, builderTestUsers(t, userID), nil)

	req := httptest.NewRequest(http.MethodGet, "/builder/session", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.snapshotUser.ID != userID || svc.snapshotUser.Username != "aibek" {
		t.Fatalf("expected resolved user ref, got %+v", svc.snapshotUser)
	}

	var envelope struct {
		Data sessionsvc.Session `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.State.Budget != builder.DefaultBudget {
		t.Fatalf("expected default budget in payload, got %d", envelope.Data.State.Budget)
	}
}

func TestGetBuilderSessionRequiresAuth(t *testing.T) {
	handler := GetBuilderSession(&stubBuilderService{}, builderTestUsers(t, uuid.New()), nil)

	req := httptest.NewRequest(http.MethodGet, "/builder/session", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestApplyBuilderTransition(t *testing.T) {
	userID := uuid.New()
	svc := &stubBuilderService{}
	handler := ApplyBuilderTransition(svc, builderTestUsers(t, userID), nil)

	componentID := uuid.New()
	body := `{"type":"select_component","category":"gpu","componentId":"` + componentID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/builder/transitions", bytes.NewBufferString(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.applied == nil || svc.applied.Type != builder.TransitionSelectComponent {
		t.Fatalf("expected select transition, got %+v", svc.applied)
	}
	if svc.applied.ComponentID == nil || *svc.applied.ComponentID != componentID {
		t.Fatalf("expected component id forwarded, got %+v", svc.applied.ComponentID)
	}
}

func TestApplyBuilderTransitionRejectsMissingType(t *testing.T) {
	handler := ApplyBuilderTransition(&stubBuilderService{}, builderTestUsers(t, uuid.New()), nil)

	req := httptest.NewRequest(http.MethodPost, "/builder/transitions", bytes.NewBufferString(`{}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestResetBuilderSession(t *testing.T) {
	userID := uuid.New()
	svc := &stubBuilderService{}
	handler := ResetBuilderSession(svc, builderTestUsers(t, userID), nil)

	req := httptest.NewRequest(http.MethodPost, "/builder/session/reset", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !svc.resetCalled {
		t.Fatal("expected reset call")
	}
}
