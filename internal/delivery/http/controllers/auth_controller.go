package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// AdminCredentials holds the configured admin login and its stored password hash.
type AdminCredentials struct {
	Email        string
	PasswordHash string
	PasswordSalt string
}

type AuthController struct {
	Logger      *slog.Logger
	Admin       AdminCredentials
	Hasher      domain.PasswordHasher
	Issuer      domain.TokenIssuer
	TokenExpiry time.Duration
}

func NewAuthController(logger *slog.Logger, admin AdminCredentials, hasher domain.PasswordHasher, issuer domain.TokenIssuer, tokenExpiry time.Duration) *AuthController {
	return &AuthController{
		Logger:      logger,
		Admin:       admin,
		Hasher:      hasher,
		Issuer:      issuer,
		TokenExpiry: tokenExpiry,
	}
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements helpers.Validator.
func (r *LoginRequest) Validate() []string {
	var errs []string
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginData is the data object for successful logins.
type LoginData struct {
	Token string `json:"token"`
}

// Login godoc
// @Summary Log in as the configured admin
// @Description Exchanges the admin credentials for a bearer token used on event mutations.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body controllers.LoginRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.Email != strings.ToLower(c.Admin.Email) {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
		return
	}
	if err := c.Hasher.Compare(c.Admin.PasswordHash, c.Admin.PasswordSalt, req.Password); err != nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
		return
	}
	token, err := c.Issuer.Issue("admin", req.Email, c.TokenExpiry)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to issue token")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginData{Token: token})
}
