package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"homefinder/internal/auth"
	"homefinder/internal/metrics"
	"homefinder/internal/middleware"
	"homefinder/internal/model"
	"homefinder/internal/service"
)

// oauthFailedCode is the only error value the frontend receives from the OAuth callback.
const oauthFailedCode = "oauth_failed"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	frontendURL string
}

// NewAuthHandler creates a new auth handler. frontendURL is where the OAuth
// callback sends the browser afterwards.
func NewAuthHandler(authService service.AuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{authService: authService, frontendURL: frontendURL}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse represents a registration response.
type RegisterResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
}

// MeResponse carries the identity embedded in the caller's token.
type MeResponse struct {
	User auth.Identity `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "user registered successfully",
		User:    user,
	})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accessToken, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.ObserveLogin(metrics.LoginPassword, err)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: accessToken,
		User:        user,
	})
}

// Me godoc
// @Summary Current identity
// @Description Returns the identity embedded in the bearer token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.Identity(c)
	if !ok {
		return errorResponse(auth.ErrTokenMissing)
	}
	return c.JSON(http.StatusOK, MeResponse{User: claims.Identity()})
}

// OAuthLogin godoc
// @Summary Start Google sign-in
// @Tags auth
// @Success 302 {string} string "redirect"
// @Router /auth/oauth/login [get]
func (h *AuthHandler) OAuthLogin(c echo.Context) error {
	target, err := h.authService.OAuthLoginURL(c.Request().Context())
	if err != nil {
		return c.Redirect(http.StatusFound, h.callbackURL("error", oauthFailedCode))
	}
	return c.Redirect(http.StatusFound, target)
}

// OAuthCallback godoc
// @Summary Google sign-in callback
// @Description Redirects to the frontend with either a token or error=oauth_failed.
// @Tags auth
// @Param code query string false "Authorization code"
// @Param state query string false "State nonce"
// @Success 302 {string} string "redirect"
// @Router /auth/oauth/callback [get]
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	token, _, err := h.authService.LoginWithOAuth(
		c.Request().Context(),
		c.QueryParam("state"),
		c.QueryParam("code"),
	)
	metrics.ObserveLogin(metrics.LoginOAuth, err)
	if err != nil {
		return c.Redirect(http.StatusFound, h.callbackURL("error", oauthFailedCode))
	}
	return c.Redirect(http.StatusFound, h.callbackURL("token", token))
}

func (h *AuthHandler) callbackURL(key, value string) string {
	return h.frontendURL + "/login/callback?" + url.Values{key: {value}}.Encode()
}
