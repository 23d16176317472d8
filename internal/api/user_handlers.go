package api

import (
	"net/http"

	"repairdesk/internal/auth"
	"repairdesk/internal/user"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// POST /auth/register
func RegisterHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		session, err := d.Auth.Register(c.Request.Context(), req.Username, req.Password, user.Role(req.Role))
		if err != nil {
			writeError(c, d.Log, err)
			return
		}
		touchPresence(c, d, session.User.ID)
		d.Log.WithField("user_id", session.User.ID).WithField("role", session.User.Role).Info("user registered")
		c.JSON(http.StatusCreated, session)
	}
}

// POST /auth/login
func LoginHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		session, err := d.Auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			writeError(c, d.Log, err)
			return
		}
		touchPresence(c, d, session.User.ID)
		c.JSON(http.StatusOK, session)
	}
}

// POST /auth/logout. Tokens are stateless, so this only drops presence; the
// client is expected to discard its copy of the token.
func LogoutHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if err := d.Presence.Clear(c.Request.Context(), p.ID); err != nil {
			d.Log.WithError(err).Warn("presence clear failed")
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// GET /auth/me
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func touchPresence(c *gin.Context, d Deps, userID uint) {
	if err := d.Presence.Touch(c.Request.Context(), userID); err != nil {
		d.Log.WithError(err).Warn("presence update failed")
	}
}
