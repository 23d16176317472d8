package api

import (
	"repairdesk/internal/auth"
	"repairdesk/internal/config"
	"repairdesk/internal/inventory"
	"repairdesk/internal/logging"
	"repairdesk/internal/realtime"
	"repairdesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs, built once at startup.
type Deps struct {
	Log       *logrus.Logger
	Auth      *auth.Service
	Gate      *auth.Gate
	Presence  *auth.Presence
	Users     user.Store
	Inventory *inventory.Store
	Hub       *realtime.Hub
}

// NewDeps wires stores and services. A missing JWT secret fails here, before
// the server ever accepts a request.
func NewDeps(cfg *config.Config, log *logrus.Logger, db *gorm.DB, rdb *redis.Client) (Deps, error) {
	tokens, err := auth.NewTokenManager(cfg.Server.JWTSecret)
	if err != nil {
		return Deps{}, err
	}
	users := user.NewGormStore(db)
	return Deps{
		Log:       log,
		Auth:      auth.NewService(users, tokens),
		Gate:      auth.NewGate(tokens, users),
		Presence:  auth.NewPresence(rdb),
		Users:     users,
		Inventory: inventory.NewStore(db),
		Hub:       realtime.NewHub(log),
	}, nil
}

func SetupRouter(cfg *config.Config, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(d.Log))

	requireAuth := auth.Middleware(d.Gate, d.Presence, d.Log, false)
	requireAdmin := auth.Middleware(d.Gate, d.Presence, d.Log, true)

	group := r.Group(cfg.Server.Subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))

		// Setup: only while no admin exists
		group.POST("/setup", SetupHandler(d))

		// Auth
		group.POST("/auth/register", RegisterHandler(d))
		group.POST("/auth/login", LoginHandler(d))
		group.POST("/auth/logout", requireAuth, LogoutHandler(d))
		group.GET("/auth/me", requireAuth, MeHandler())

		// Users
		group.GET("/users", requireAdmin, ListUsersHandler(d))
		group.GET("/users/online", requireAuth, OnlineUserCountHandler(d))

		// Inventory
		group.GET("/inventory", requireAuth, ListInventoryHandler(d))
		group.POST("/inventory", requireAuth, CreateInventoryItemHandler(d))
		group.DELETE("/inventory", requireAdmin, ClearInventoryHandler(d))

		// Realtime relay; authenticates itself so browsers can pass ?token=
		group.GET("/ws", WSHandler(d))
	}
	return r
}
