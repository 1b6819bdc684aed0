package middleware

import (
	"happycrafts_server/database"
	"happycrafts_server/services"
	"happycrafts_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	cfg          *structs.Config
	logger       *gecho.Logger
	authService  *services.AuthService
	cacheService *services.CacheService
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, db *database.DB) *Middleware {
	return &Middleware{
		cfg:          cfg,
		logger:       logger,
		authService:  services.NewAuthService(cfg, logger, db),
		cacheService: services.NewCacheService(logger, cfg),
	}
}
