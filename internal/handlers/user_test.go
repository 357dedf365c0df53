package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/financas-app/backend/internal/middleware"
	"github.com/financas-app/backend/internal/models"
)

type stubUserService struct {
	registered bool
	uid, email string
	name       string
	user       *models.User
	err        error
}

func (s *stubUserService) Register(_ context.Context, uid, email, name string) error {
	s.registered = true
	s.uid = uid
	s.email = email
	s.name = name
	return s.err
}

func (s *stubUserService) Get(_ context.Context, uid string) (*models.User, error) {
	s.uid = uid
	return s.user, s.err
}

func TestRegisterUsesTokenIdentity(t *testing.T) {
	svc := &stubUserService{}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: svc})

	// uid and email in the body must be ignored; only the verified token
	// context counts.
	body := `{"name":"Ana","uid":"attacker","email":"attacker@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UIDKey, "uid-123")
	ctx = context.WithValue(ctx, middleware.EmailKey, "ana@example.com")
	req = req.WithContext(ctx)

	h.Register(httptest.NewRecorder(), req)

	if !svc.registered {
		t.Fatalf("Register was not called on the service")
	}
	if svc.uid != "uid-123" || svc.email != "ana@example.com" {
		t.Fatalf("service got uid=%q email=%q, want token identity", svc.uid, svc.email)
	}
	if svc.name != "Ana" {
		t.Fatalf("service got name %q, want Ana", svc.name)
	}
	if !resp.successCalled || resp.successStatus != http.StatusCreated {
		t.Fatalf("expected 201 success, got status %d", resp.successStatus)
	}
}

func TestMe(t *testing.T) {
	svc := &stubUserService{user: &models.User{UID: "uid-123", Name: "Ana"}}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: svc})

	req := authed(httptest.NewRequest(http.MethodGet, "/users/me", nil), "uid-123")
	h.Me(httptest.NewRecorder(), req)

	if svc.uid != "uid-123" {
		t.Fatalf("service got uid %q, want uid-123", svc.uid)
	}
	user, ok := resp.successData.(*models.User)
	if !ok || user.Name != "Ana" {
		t.Fatalf("unexpected response payload: %+v", resp.successData)
	}
}
