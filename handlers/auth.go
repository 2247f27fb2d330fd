package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"saudeplus/config"
	"saudeplus/services/auth"
	"saudeplus/utils"
)

// AuthHandler serves local and Google authentication endpoints.
type AuthHandler struct {
	Svc   auth.AuthService
	OAuth *auth.GoogleOAuth
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc auth.AuthService, oauth *auth.GoogleOAuth) *AuthHandler {
	return &AuthHandler{Svc: svc, OAuth: oauth}
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates a local account.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var in credentialsInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "email and password are required", "")
		return
	}

	user, token, err := h.Svc.Register(c.Request.Context(), in.Email, in.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		utils.JSONError(c, http.StatusConflict, "email already registered", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to register", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "email": user.Email, "token": token})
}

// LoginHandler authenticates a local account.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var in credentialsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	user, token, err := h.Svc.Login(c.Request.Context(), in.Email, in.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to login", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "email": user.Email, "token": token})
}

// LogoutHandler exists for API symmetry; tokens are stateless so the client
// just discards its copy.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ForgotPasswordHandler triggers the reset email. The response never reveals
// whether the account exists.
func (h *AuthHandler) ForgotPasswordHandler(c *gin.Context) {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "email is required", "")
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), in.Email); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to process request", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ResetPasswordHandler consumes a reset token and sets a new password.
func (h *AuthHandler) ResetPasswordHandler(c *gin.Context) {
	var in struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Token == "" || in.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "token and password are required", "")
		return
	}
	err := h.Svc.ResetPassword(c.Request.Context(), in.Token, in.Password)
	if errors.Is(err, auth.ErrInvalidResetToken) {
		utils.JSONError(c, http.StatusBadRequest, "invalid or expired token", "")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to reset password", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GoogleLoginHandler starts the Google login consent flow.
func (h *AuthHandler) GoogleLoginHandler(c *gin.Context) {
	state, err := h.OAuth.NewState(c.Request.Context(), "")
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to start login", err.Error())
		return
	}
	c.Redirect(http.StatusFound, h.OAuth.LoginURL(state))
}

// GoogleLoginCallbackHandler completes the Google login flow and hands the
// issued JWT to the front-end via redirect.
func (h *AuthHandler) GoogleLoginCallbackHandler(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing authorization code", "")
		return
	}

	_, token, err := h.OAuth.HandleLoginCallback(c.Request.Context(), code, c.Query("state"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "google login failed", err.Error())
		return
	}

	cfg := config.AppConfig
	c.Redirect(http.StatusFound, cfg.FrontURL+cfg.FrontLoginRedirectPath+"?token="+token)
}
