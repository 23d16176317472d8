package api

import (
	"net/http"

	"repairdesk/internal/user"

	"github.com/gin-gonic/gin"
)

// GET /users  [admin only]
func ListUsersHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := d.Users.List(c.Request.Context())
		if err != nil {
			internalError(c, d.Log, "list users", err)
			return
		}
		result := make([]user.Profile, 0, len(users))
		for i := range users {
			result = append(result, users[i].Profile())
		}
		c.JSON(http.StatusOK, result)
	}
}

// OnlineUserCountHandler returns the number of users active in the last
// presence window.
func OnlineUserCountHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := d.Presence.OnlineCount(c.Request.Context())
		if err != nil {
			internalError(c, d.Log, "count online users", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"online": count})
	}
}
