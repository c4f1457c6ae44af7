package api

import (
	"net/http"

	echo "github.com/labstack/echo/v5"
)

// authErrorDetail is the body detail for all 401 responses. A single
// message for missing, malformed, and non-bearer headers avoids leaking
// which part of the credential failed.
const authErrorDetail = "Missing or invalid Authorization header"

// securityHeaders returns middleware that sets standard security response headers.
func securityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			return next(c)
		}
	}
}

// requireBearer rejects requests without a bearer token. The token itself
// is not validated here: it is forwarded verbatim to the upstream agent
// service, which owns authentication.
func requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		if bearerToken(c) == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"detail": authErrorDetail})
		}
		return next(c)
	}
}
