package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SetupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /setup creates the first admin account and logs it in. Once an admin
// exists the endpoint is closed.
func SetupHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		ctx := c.Request.Context()
		created, err := d.Auth.EnsureAdmin(ctx, req.Username, req.Password)
		if err != nil {
			writeError(c, d.Log, err)
			return
		}
		if !created {
			c.JSON(http.StatusForbidden, gin.H{"error": "Setup not allowed; admin already exists"})
			return
		}
		session, err := d.Auth.Login(ctx, req.Username, req.Password)
		if err != nil {
			writeError(c, d.Log, err)
			return
		}
		d.Log.WithField("user_id", session.User.ID).Info("initial admin created")
		c.JSON(http.StatusCreated, gin.H{
			"token":          session.Token,
			"user":           session.User,
			"setup_complete": true,
		})
	}
}
