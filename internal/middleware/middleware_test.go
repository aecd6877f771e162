package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"menuReco/business/menu"
	"menuReco/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	userID string
	err    error
}

func (s stubValidator) ValidateTokenFromRedis(context.Context, string) (string, error) {
	return s.userID, s.err
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newProtected(v TokenValidator, mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	chain := append([]echo.MiddlewareFunc{AuthMiddlewareWithRedis(v)}, mws...)
	e.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"user_id": c.Get("user_id")})
	}, chain...)
	return e
}

func TestAuthMiddlewareWithRedis(t *testing.T) {
	utils.SetJWTConfig("test-secret", time.Hour)
	token, err := utils.GenerateJWT("7", "customer")
	require.NoError(t, err)

	tests := []struct {
		name      string
		header    string
		validator stubValidator
		want      int
	}{
		{"valid", "Bearer " + token, stubValidator{userID: "7"}, http.StatusOK},
		{"missing header", "", stubValidator{userID: "7"}, http.StatusUnauthorized},
		{"bad scheme", "Token " + token, stubValidator{userID: "7"}, http.StatusUnauthorized},
		{"garbage token", "Bearer abc", stubValidator{userID: "7"}, http.StatusUnauthorized},
		{"revoked", "Bearer " + token, stubValidator{err: errors.New("token not found")}, http.StatusUnauthorized},
		{"other user", "Bearer " + token, stubValidator{userID: "8"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newProtected(tt.validator)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(e, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	utils.SetJWTConfig("test-secret", time.Hour)

	for role, want := range map[string]int{"admin": http.StatusOK, "customer": http.StatusForbidden} {
		token, err := utils.GenerateJWT("1", role)
		require.NoError(t, err)

		e := newProtected(stubValidator{userID: "1"}, AdminOnly())
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		assert.Equal(t, want, serve(e, req).Code, role)
	}
}

func TestTraceID(t *testing.T) {
	e := echo.New()
	e.Use(TraceID())
	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = menu.TraceIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "fixed-id")
	rec = serve(e, req)
	assert.Equal(t, "fixed-id", seen)
	assert.Equal(t, "fixed-id", rec.Header().Get(HeaderRequestID))
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(RequestLogger())
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("boom")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.NotContains(t, rec.Body.String(), "boom")
}
