package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/alvearium/accounts-api/internal/core/domain"
	"github.com/alvearium/accounts-api/internal/core/ports"
)

type stubUserService struct {
	registerFn  func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn     func(ctx context.Context, email string) (*ports.LoginResult, error)
	refreshFn   func(ctx context.Context, token string) (*ports.RefreshResult, error)
	listFn      func(ctx context.Context) ([]*domain.User, error)
	getFn       func(ctx context.Context, email string) (*domain.User, error)
	deleteFn    func(ctx context.Context, id uint) error
	topScoresFn func(ctx context.Context) ([]domain.ScoreEntry, error)
}

func (s *stubUserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) Login(ctx context.Context, email string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email)
}

func (s *stubUserService) Refresh(ctx context.Context, token string) (*ports.RefreshResult, error) {
	return s.refreshFn(ctx, token)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getFn(ctx, email)
}

func (s *stubUserService) DeleteByID(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) TopScores(ctx context.Context) ([]domain.ScoreEntry, error) {
	return s.topScoresFn(ctx)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Register_Success(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Name != "Alice" || input.Email != "a@x.com" || input.Score != 10 || input.Role != "player" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: 1, Name: input.Name, Email: input.Email, Score: input.Score, Role: input.Role}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/users/register",
		`{"name":"Alice","email":"a@x.com","puntuacion":10,"rol":"player"}`)
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
	if resp["id"] != float64(1) || resp["name"] != "Alice" || resp["puntuacion"] != float64(10) || resp["rol"] != "player" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Register_InvalidEmail(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/users/register",
		`{"name":"Alice","email":"not-an-email"}`)
	err := h.Register(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Register_MissingName(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/users/register", `{"email":"a@x.com"}`)
	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Register_DuplicatePropagates(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/users/register",
		`{"name":"Alice","email":"a@x.com"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken to propagate, got %v", err)
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		loginFn: func(_ context.Context, email string) (*ports.LoginResult, error) {
			if email != "a@x.com" {
				t.Fatalf("unexpected email: %s", email)
			}
			return &ports.LoginResult{AccessToken: "acc", RefreshToken: "ref", Message: "ok"}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/users/login", `{"email":"a@x.com"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "acc" || resp["refresh_token"] != "ref" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Refresh_Success(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		refreshFn: func(_ context.Context, token string) (*ports.RefreshResult, error) {
			if token != "ref" {
				t.Fatalf("unexpected token: %s", token)
			}
			return &ports.RefreshResult{AccessToken: "acc2", RefreshToken: "ref2", Status: 200, Message: "ok"}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/users/refresh", `{"refresh_token":"ref"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != float64(200) || resp["refresh_token"] != "ref2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Refresh_MissingToken(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		refreshFn: func(context.Context, string) (*ports.RefreshResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/users/refresh", `{}`)
	err := h.Refresh(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Delete_NonNumericID(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		deleteFn: func(context.Context, uint) error {
			t.Fatalf("service must not be called")
			return nil
		},
	})

	c, _ := newTestContext(t, http.MethodDelete, "/users/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Delete(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Delete_Success(t *testing.T) {
	deleted := uint(0)
	h := NewUserHandler(&stubUserService{
		deleteFn: func(_ context.Context, id uint) error {
			deleted = id
			return nil
		},
	})

	c, rec := newTestContext(t, http.MethodDelete, "/users/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != 3 {
		t.Fatalf("expected delete of id 3, got %d", deleted)
	}
}

func TestUserHandler_TopScores(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		topScoresFn: func(context.Context) ([]domain.ScoreEntry, error) {
			return []domain.ScoreEntry{{Name: "e100", Score: 100}, {Name: "e50", Score: 50}}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/users/scores/all", "")
	if err := h.TopScores(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["name"] != "e100" || resp[0]["puntuacion"] != float64(100) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_List(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		listFn: func(context.Context) ([]*domain.User, error) {
			return []*domain.User{{ID: 1, Name: "Alice", Email: "a@x.com"}}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["email"] != "a@x.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_GetByEmail_NotFoundPropagates(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		getFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	})

	c, _ := newTestContext(t, http.MethodGet, "/users/ghost@x.com", "")
	c.SetParamNames("email")
	c.SetParamValues("ghost@x.com")

	if err := h.GetByEmail(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}
