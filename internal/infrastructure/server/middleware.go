package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/tasklist/internal/ports"
)

// readyGate answers 503 until the stores have been rehydrated
func (s *Server) readyGate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !s.app.Persistor.Ready() {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, ports.ErrorResponse{Message: "loading"})
			}
			return next(c)
		}
	}
}

// identityMiddleware resolves the acting user from a bearer token. Requests
// without a token pass through anonymously unless auth is required.
func (s *Server) identityMiddleware() echo.MiddlewareFunc {
	authService := s.app.AuthService
	requireAuth := s.config.Security.RequireAuth

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				if requireAuth {
					return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
				}
				return next(c)
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				s.logger.LogSecurityEvent("invalid_token", "", c.RealIP(), map[string]interface{}{
					"error": err.Error(),
				})
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set("user", claims.UserID)

			if err := next(c); err != nil {
				return err
			}
			if c.Request().Method != http.MethodGet && c.Request().Method != http.MethodHead {
				s.logger.LogUserAction(claims.UserID, c.Request().Method+" "+c.Path(), map[string]interface{}{
					"status": c.Response().Status,
				})
			}
			return nil
		}
	}
}
