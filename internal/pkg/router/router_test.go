package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/designdynasty/authkit/internal/pkg/config"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/jwt"
)

type stubJWT struct{}

func (stubJWT) Generate(uid string, _ string) (string, error) {
	return "token-" + uid, nil
}

func (stubJWT) Verify(tokenStr string) (jwt.Claims, error) {
	if tokenStr != "good-token" {
		return jwt.Claims{}, errors.New("invalid token")
	}
	return jwt.Claims{UserID: "usr-1", UserEmail: "jane@example.com"}, nil
}

type stubUUID struct{}

func (stubUUID) Generate() string {
	return "req-1"
}

type loginResponse struct {
	Token string `json:"token"`
}

func (loginResponse) Message() string {
	return "Login successful."
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: authkit-test\n"))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	return NewRouter(Config{
		Config:     cfg,
		UUID:       stubUUID{},
		JWT:        stubJWT{},
		Instrument: instrument.NewNoop(),
	})
}

func TestRouter(t *testing.T) {
	t.Run("SuccessEnvelope", func(t *testing.T) {
		// Arrange
		ro := newTestRouter(t)
		ro.POST("/auth/login", func(r *Request) (any, error) {
			return loginResponse{Token: "abc"}, nil
		})

		// Act
		rec := httptest.NewRecorder()
		ro.ServeHTTP(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{}`)))

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body struct {
			Message string        `json:"message"`
			Data    loginResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Message != "Login successful." {
			t.Fatalf("expected handler message, got %q", body.Message)
		}
		if body.Data.Token != "abc" {
			t.Fatalf("expected payload under data, got %+v", body.Data)
		}
	})

	t.Run("ErrorEnvelope", func(t *testing.T) {
		// Arrange
		ro := newTestRouter(t)
		ro.POST("/auth/register", func(r *Request) (any, error) {
			return nil, goerror.NewBusiness("An account with this email already exists", goerror.CodeConflict)
		})

		// Act
		rec := httptest.NewRecorder()
		ro.ServeHTTP(rec, httptest.NewRequest("POST", "/auth/register", strings.NewReader(`{}`)))

		// Assert
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}

		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Message != "An account with this email already exists" {
			t.Fatalf("expected business message, got %q", body.Message)
		}
	})

	t.Run("HealthIsPublic", func(t *testing.T) {
		// Arrange
		ro := newTestRouter(t)

		// Act
		rec := httptest.NewRecorder()
		ro.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("ProtectedEndpointRequiresToken", func(t *testing.T) {
		// Arrange
		ro := newTestRouter(t)
		ro.GET("/users", func(r *Request) (any, error) {
			return nil, nil
		})

		// Act
		rec := httptest.NewRecorder()
		ro.ServeHTTP(rec, httptest.NewRequest("GET", "/users", nil))

		// Assert
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("ProtectedEndpointRejectsBadToken", func(t *testing.T) {
		// Arrange
		ro := newTestRouter(t)
		ro.GET("/users", func(r *Request) (any, error) {
			return nil, nil
		})

		// Act
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/users", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		ro.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("ValidTokenReachesHandlerWithClaims", func(t *testing.T) {
		// Arrange
		ro := newTestRouter(t)

		var gotClaims *jwt.Claims
		ro.GET("/users", func(r *Request) (any, error) {
			gotClaims = jwt.GetAuth(r.Context())
			return nil, nil
		})

		// Act
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/users", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		ro.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204 for nil payload, got %d", rec.Code)
		}
		if gotClaims == nil || gotClaims.UserEmail != "jane@example.com" {
			t.Fatalf("expected claims in handler context, got %+v", gotClaims)
		}
	})
}
