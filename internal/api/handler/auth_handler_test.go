package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vetclinic/clinic-api/internal/core/domain"
)

type stubRegistrationService struct {
	registerFn func(ctx context.Context, reg domain.Registration) (*domain.RegisteredUser, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, reg domain.Registration) (*domain.RegisteredUser, error) {
	return s.registerFn(ctx, reg)
}

func newRegisterContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubRegistrationService{
		registerFn: func(ctx context.Context, reg domain.Registration) (*domain.RegisteredUser, error) {
			if reg.Username != "alice" || reg.Email != "alice@example.com" || reg.Password != "s3cretpw" {
				t.Fatalf("unexpected registration: %+v", reg)
			}
			return &domain.RegisteredUser{ID: 7, Username: reg.Username, Email: reg.Email, Roles: []string{}}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newRegisterContext(e, `{"username":"alice","email":"alice@example.com","password":"s3cretpw"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(7) || resp["username"] != "alice" || resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	roles, ok := resp["roles"].([]any)
	if !ok || len(roles) != 0 {
		t.Fatalf("expected empty roles array, got %v", resp["roles"])
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not mention the credential: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubRegistrationService{
		registerFn: func(ctx context.Context, reg domain.Registration) (*domain.RegisteredUser, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newRegisterContext(e, `{"username":"alice","email":"alice@example.com","password":"s3cretpw"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationErrorNamesField(t *testing.T) {
	e := newTestEcho()
	stub := &stubRegistrationService{
		registerFn: func(ctx context.Context, reg domain.Registration) (*domain.RegisteredUser, error) {
			return nil, &domain.ValidationError{Field: "password", Rule: "must be at least 8 characters"}
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newRegisterContext(e, `{"username":"carol","email":"c@example.com","password":"shortpwd"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["field"] != "password" {
		t.Fatalf("expected offending field in response, got %+v", resp)
	}
}

func TestAuthHandler_Register_StoreUnavailable(t *testing.T) {
	e := newTestEcho()
	stub := &stubRegistrationService{
		registerFn: func(ctx context.Context, reg domain.Registration) (*domain.RegisteredUser, error) {
			return nil, fmt.Errorf("find user: %w: connection refused", domain.ErrStoreUnavailable)
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newRegisterContext(e, `{"username":"alice","email":"alice@example.com","password":"s3cretpw"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("infrastructure details leaked to client: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubRegistrationService{
		registerFn: func(ctx context.Context, reg domain.Registration) (*domain.RegisteredUser, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newRegisterContext(e, "not-json")
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_MalformedEmailRejectedAtEdge(t *testing.T) {
	e := newTestEcho()
	stub := &stubRegistrationService{
		registerFn: func(ctx context.Context, reg domain.Registration) (*domain.RegisteredUser, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newRegisterContext(e, `{"username":"alice","email":"not-an-email","password":"s3cretpw"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email") {
		t.Fatalf("expected message naming the email field: %s", rec.Body.String())
	}
}
