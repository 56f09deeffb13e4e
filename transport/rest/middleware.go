package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

const (
	authCookieName = "auth_token"
	userContextKey = "user"
)

type tokenParser interface {
	ParseToken(tokenString string) (*entity.User, error)
}

// RequireAuth accepts a session token from the Authorization header or the auth cookie.
func RequireAuth(logger *slog.Logger, tokens tokenParser) echo.MiddlewareFunc {
	log := logger.With("component", "auth-middleware")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if tokenString == "" {
				if cookie, err := c.Cookie(authCookieName); err == nil {
					tokenString = cookie.Value
				}
			}

			if tokenString == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			}

			user, err := tokens.ParseToken(tokenString)
			if err != nil {
				log.Debug("rejected token", "error", err)
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			}

			c.Set(userContextKey, user)

			return next(c)
		}
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

func currentUser(c echo.Context) *entity.User {
	user, _ := c.Get(userContextKey).(*entity.User)
	return user
}

// requestLogger writes one structured line per request.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	log := logger.With("component", "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				log.Error("request failed", append(attrs, "error", v.Error)...)
				return nil
			}

			log.Info("request", attrs...)
			return nil
		},
	})
}
