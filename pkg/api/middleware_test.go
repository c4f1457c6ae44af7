package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	e.Use(securityHeaders())
	e.GET("/test", func(c *echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "camera=(), microphone=(), geolocation=()", rec.Header().Get("Permissions-Policy"))
}

func TestRequireBearer(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		expectCode int
	}{
		{
			name:       "missing header rejected",
			header:     "",
			expectCode: http.StatusUnauthorized,
		},
		{
			name:       "non-bearer scheme rejected",
			header:     "Basic dXNlcjpwYXNz",
			expectCode: http.StatusUnauthorized,
		},
		{
			name:       "empty bearer token rejected",
			header:     "Bearer   ",
			expectCode: http.StatusUnauthorized,
		},
		{
			name:       "bearer token accepted",
			header:     "Bearer test-token",
			expectCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/test", requireBearer(func(c *echo.Context) error {
				return c.String(http.StatusOK, "ok")
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectCode, rec.Code)
			if tt.expectCode == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), authErrorDetail)
			}
		})
	}
}
