package api

import (
	"repairdesk/internal/auth"
	"repairdesk/internal/realtime"

	"github.com/gin-gonic/gin"
)

// GET /ws upgrades to the broadcast relay. Browsers cannot set headers on a
// websocket handshake, so the token may also arrive as ?token=.
func WSHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c.Request)
		if token == "" {
			token = c.Query("token")
		}
		p, err := d.Gate.Validate(c.Request.Context(), token)
		if err != nil {
			writeError(c, d.Log, err)
			return
		}
		conn, err := realtime.Upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			d.Log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		touchPresence(c, d, p.ID)
		d.Hub.Serve(conn, p.ID)
	}
}
