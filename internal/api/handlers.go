package api

import (
	"fmt"
	"net/http"

	"repairdesk/internal/auth"
	"repairdesk/internal/config"
	"repairdesk/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host":    cfg.Server.Host,
				"port":    cfg.Server.Port,
				"subpath": cfg.Server.Subpath,
			},
		})
	}
}

// writeError is the boundary translation from service errors to the wire.
// Internal failures are logged with their cause and sent as an opaque 500.
func writeError(c *gin.Context, log *logrus.Logger, err error) {
	status, msg := auth.StatusFor(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(c, log).WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func internalError(c *gin.Context, log *logrus.Logger, op string, err error) {
	writeError(c, log, fmt.Errorf("%w: %s: %v", auth.ErrInternal, op, err))
}
