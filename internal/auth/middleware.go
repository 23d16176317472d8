package auth

import (
	"errors"
	"net/http"

	"repairdesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const authUserKey = "authUser"

// Middleware rejects the request before any handler runs unless it carries a
// valid bearer token (and, when requireAdmin is set, an admin role).
func Middleware(gate *Gate, presence *Presence, log *logrus.Logger, requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			p   *user.Profile
			err error
		)
		if requireAdmin {
			p, err = gate.RequireAdmin(c.Request)
		} else {
			p, err = gate.RequireAuth(c.Request)
		}
		if err != nil {
			status, msg := StatusFor(err)
			entry := log.WithField("path", c.Request.URL.Path)
			switch {
			case errors.Is(err, ErrInternal):
				entry.WithError(err).Error("auth gate failed")
			case status == http.StatusForbidden:
				entry.Warn("non-admin hit admin route")
			default:
				entry.WithError(err).Debug("request not authenticated")
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		if err := presence.Touch(c.Request.Context(), p.ID); err != nil {
			log.WithError(err).Warn("presence update failed")
		}

		SetCurrentUser(c, *p)
		c.Next()
	}
}

// SetCurrentUser attaches p to the gin context under the keys handlers read.
func SetCurrentUser(c *gin.Context, p user.Profile) {
	c.Set(authUserKey, p)
	c.Set("userId", p.ID)
	c.Set("username", p.Username)
	c.Set("userRole", string(p.Role))
}

func CurrentUser(c *gin.Context) (user.Profile, bool) {
	v, ok := c.Get(authUserKey)
	if !ok {
		return user.Profile{}, false
	}
	p, ok := v.(user.Profile)
	return p, ok
}
