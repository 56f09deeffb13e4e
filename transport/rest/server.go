package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
}

// NewServer wires the public routes, the OAuth login and the authenticated board API.
func NewServer(
	logger *slog.Logger,
	sessionSecret string,
	tokens tokenParser,
	auth *AuthHandler,
	board *BoardHandler,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 30 * time.Second

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(sessionSecret))))

	e.GET("/ping", Ping)

	e.GET("/auth/google/login", auth.GoogleLogin)
	e.GET("/auth/google/callback", auth.GoogleCallback)

	api := e.Group("/api", RequireAuth(logger, tokens))
	api.GET("/board", board.GetBoard)
	api.POST("/board", board.PutBoard)
	api.POST("/board/new", board.NewBoard)
	api.POST("/board/reset", board.ResetProgress)
	api.POST("/board/squares/:index/toggle", board.ToggleSquare)
	api.PUT("/board/squares/:index", board.EditSquare)
	api.GET("/lists", board.GetLists)
	api.POST("/lists", board.SaveLists)
	api.GET("/export", board.Export)
	api.POST("/import", board.Import)
	api.DELETE("/data", board.ClearData)

	return &Server{
		logger: logger.With("component", "http-server"),
		echo:   e,
	}
}

func (that *Server) Handler() http.Handler {
	return that.echo
}

func (that *Server) Start(port string) error {
	that.logger.Info("Starting HTTP server", "port", port)

	if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
