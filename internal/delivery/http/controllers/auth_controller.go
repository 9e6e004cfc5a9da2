package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventdiscovery/internal/delivery/http/helpers"
	"eventdiscovery/internal/delivery/http/middleware"
	"eventdiscovery/internal/domain"
)

// CredentialsRequest is the request body for POST /v1/auth and POST /v1/auth/create.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (c CredentialsRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Username) == "" {
		errs = append(errs, "username is required")
	}
	if c.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// RefreshRequest is the request body for POST /v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshRequest) Validate() []string {
	if r.RefreshToken == "" {
		return []string{"refresh_token is required"}
	}
	return nil
}

// ChangePasswordRequest is the request body for POST /v1/auth/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (c ChangePasswordRequest) Validate() []string {
	var errs []string
	if c.OldPassword == "" {
		errs = append(errs, "old_password is required")
	}
	if c.NewPassword == "" {
		errs = append(errs, "new_password is required")
	}
	return errs
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Log in
// @Description Exchanges a username and password for an access and refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Username and password"
// @Success 200 {object} domain.TokenPair
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse "wrong credentials | wrong username or password"
// @Router /v1/auth [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	pair, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, pair)
}

// Refresh godoc
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} domain.TokenPair
// @Failure 401 {object} helpers.ErrorResponse "wrong refresh token"
// @Router /v1/auth/refresh [post]
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	pair, err := c.Service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, pair)
}

// AccountInfo godoc
// @Summary Current account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} helpers.ErrorResponse
// @Router /v1/auth/account/info [get]
func (c *AuthController) AccountInfo(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, domain.ErrNoToken.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// Register godoc
// @Summary Register
// @Description Creates an account. A welcome e-mail is sent when the username is an e-mail address.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Username and password"
// @Success 201 {object} domain.User
// @Failure 400 {object} helpers.ErrorResponse "username already taken"
// @Router /v1/auth/create [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, user)
}

// ChangePassword godoc
// @Summary Change password
// @Description Sets a new password. Tokens issued before the change stop working; a new pair is returned.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} domain.TokenPair
// @Failure 401 {object} helpers.ErrorResponse "wrong username or password"
// @Router /v1/auth/password [post]
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, domain.ErrNoToken.Error())
		return
	}
	var req ChangePasswordRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	pair, err := c.Service.ChangePassword(r.Context(), user, req.OldPassword, req.NewPassword)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, pair)
}
