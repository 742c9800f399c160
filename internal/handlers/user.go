package handlers

import (
	"net/http"
	"time"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/middleware"
	"spacia-portal/internal/models"
	"spacia-portal/internal/services"

	"github.com/gin-gonic/gin"
)

// CookieConfig controls the portal session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

type UserHandler struct {
	userService *services.UserService
	cookie      CookieConfig
}

func NewUserHandler(userService *services.UserService, cookie CookieConfig) *UserHandler {
	return &UserHandler{userService: userService, cookie: cookie}
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
	Redirect  string    `json:"redirect"`
}

// Login signs the user in and sets the session cookie.
func (h *UserHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		_ = c.Error(apperrors.NewValidationError(map[string]string{"body": err.Error()}))
		return
	}

	sess, err := h.userService.Login(c.Request.Context(), creds)
	if err != nil {
		_ = c.Error(err)
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, sess.ID, maxAge, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, LoginResponse{
		Username:  sess.Username,
		ExpiresAt: sess.ExpiresAt,
		Redirect:  "/",
	})
}

// Register creates an account and points the client at the login view.
func (h *UserHandler) Register(c *gin.Context) {
	var form models.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		_ = c.Error(apperrors.NewValidationError(map[string]string{"body": err.Error()}))
		return
	}

	if err := h.userService.Register(c.Request.Context(), form); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  apperrors.MsgRegistrationSuccessful,
		"redirect": "/login",
	})
}

// Logout drops the session and clears the cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := h.userService.Logout(c.Request.Context(), sess.ID); err != nil {
			_ = c.Error(err)
			return
		}
	}
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"redirect": "/"})
}

// Me reports who is signed in.
func (h *UserHandler) Me(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{"username": sess.Username, "expiresAt": sess.ExpiresAt}})
}
