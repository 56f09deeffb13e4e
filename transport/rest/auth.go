package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/rocketscienceinc/resobingo-backend/internal/config"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

const (
	urlUserInfo = "https://www.googleapis.com/oauth2/v2/userinfo"

	sessionName     = "session"
	sessionStateKey = "state"
	authCookieTTL   = 24 * time.Hour
)

type tokenService interface {
	GenerateToken(user *entity.User) (string, error)
}

type userUseCase interface {
	GetOrCreate(ctx context.Context, email string) (*entity.User, error)
}

type AuthHandler struct {
	logger *slog.Logger

	oauthConfig  *oauth2.Config
	userInfoURL  string
	secureCookie bool

	tokens tokenService
	users  userUseCase
}

func NewAuthHandler(logger *slog.Logger, conf config.GoogleOAuth, secureCookie bool, tokens tokenService, users userUseCase) *AuthHandler {
	oauthConfig := &oauth2.Config{
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,

		RedirectURL: conf.RedirectURL,

		Scopes:   conf.Scopes,
		Endpoint: google.Endpoint,
	}

	return &AuthHandler{
		logger:       logger.With("component", "auth-handler"),
		oauthConfig:  oauthConfig,
		userInfoURL:  urlUserInfo,
		secureCookie: secureCookie,
		tokens:       tokens,
		users:        users,
	}
}

func (that *AuthHandler) GoogleLogin(c echo.Context) error {
	log := that.logger.With("method", "GoogleLogin")

	userSession, err := session.Get(sessionName, c)
	if err != nil {
		log.Error("failed to get session", "error", err)
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	state := uuid.NewString()

	userSession.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   that.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	userSession.Values[sessionStateKey] = state

	if err = userSession.Save(c.Request(), c.Response()); err != nil {
		log.Error("failed to save session", "error", err)
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	return c.Redirect(http.StatusTemporaryRedirect, that.oauthConfig.AuthCodeURL(state))
}

func (that *AuthHandler) GoogleCallback(c echo.Context) error {
	log := that.logger.With("method", "GoogleCallback")
	ctx := c.Request().Context()

	// get state from session.
	userSession, err := session.Get(sessionName, c)
	if err != nil {
		log.Error("failed to get session", "error", err)
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	storedState, ok := userSession.Values[sessionStateKey].(string)
	if !ok || storedState == "" {
		log.Warn("state not found in session")
		return c.String(http.StatusBadRequest, "Invalid session state")
	}

	if state := c.QueryParam("state"); state != storedState {
		log.Warn("invalid OAuth state", "expected", storedState, "got", state)
		return c.String(http.StatusBadRequest, "Invalid OAuth state")
	}

	// the state is single use.
	delete(userSession.Values, sessionStateKey)
	if err = userSession.Save(c.Request(), c.Response()); err != nil {
		log.Error("failed to save session", "error", err)
	}

	code := c.QueryParam("code")
	if code == "" {
		return c.String(http.StatusBadRequest, "Code not found in request")
	}

	token, err := that.oauthConfig.Exchange(ctx, code)
	if err != nil {
		log.Error("failed to exchange code for token", "error", err)
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	email, err := that.fetchEmail(that.oauthConfig.Client(ctx, token))
	if err != nil {
		log.Error("failed to get user info", "error", err)
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	user, err := that.users.GetOrCreate(ctx, email)
	if err != nil {
		log.Error("failed to get or create user", "error", err)
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	jwtToken, err := that.tokens.GenerateToken(user)
	if err != nil {
		log.Error("failed to generate JWT token", "error", err)
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	c.SetCookie(&http.Cookie{
		Name:     authCookieName,
		Value:    jwtToken,
		Path:     "/",
		Expires:  time.Now().Add(authCookieTTL),
		HttpOnly: true,
		Secure:   that.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{
		"token": jwtToken,
	})
}

func (that *AuthHandler) fetchEmail(client *http.Client) (string, error) {
	resp, err := client.Get(that.userInfoURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get user info: status %d", resp.StatusCode)
	}

	var userInfo struct {
		Email string `json:"email"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return "", err
	}

	return userInfo.Email, nil
}
