package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/apperr"
	"inkwell/internal/services"
	"inkwell/internal/session"
)

type AuthHandler struct {
	identity *services.IdentityService
	sessions *session.Manager
}

func NewAuthHandler(identity *services.IdentityService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{identity: identity, sessions: sessions}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := bindJSON(c, &in); err != nil {
		renderError(c, err)
		return
	}

	user, err := h.identity.Register(c.Request.Context(), in)
	if err != nil {
		renderError(c, err)
		return
	}
	if err := h.sessions.Issue(c, user.ID, user.Email); err != nil {
		renderError(c, apperr.Internal(err))
		return
	}
	respond(c, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in services.LoginInput
	if err := bindJSON(c, &in); err != nil {
		renderError(c, err)
		return
	}

	user, err := h.identity.Login(c.Request.Context(), in)
	if err != nil {
		renderError(c, err)
		return
	}
	if err := h.sessions.Issue(c, user.ID, user.Email); err != nil {
		renderError(c, apperr.Internal(err))
		return
	}
	respond(c, http.StatusOK, user)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.identity.Me(c.Request.Context(), currentUser(c))
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusOK, profile)
}

// Logout handles POST /api/auth/logout. The token itself stays valid
// until it expires; only the cookie is dropped.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Revoke(c)
	ack(c, "")
}
