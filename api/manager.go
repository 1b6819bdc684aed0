package api

import (
	"happycrafts_server/api/admin"
	"happycrafts_server/api/auth"
	"happycrafts_server/api/favorites"
	"happycrafts_server/api/health"
	"happycrafts_server/api/middleware"
	"happycrafts_server/api/products"
	"happycrafts_server/api/reviews"
	"happycrafts_server/services"
	"happycrafts_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes  *products.ProductRoutesManager
	healthRoutes   *health.HealthRoutesManager
	authRoutes     *auth.AuthRoutesManager
	adminRoutes    *admin.AdminRoutesManager
	reviewRoutes   *reviews.ReviewRoutesManager
	favoriteRoutes *favorites.FavoriteRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	mw *middleware.Middleware,
	sm *services.ServiceManager,
) *routerManager {
	return &routerManager{
		productRoutes:  products.NewProductRoutesManager(logger, sm.ProductService),
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
		authRoutes:     auth.NewAuthRoutesManager(logger, sm.AuthService, sm.CacheService, cfg, mw),
		adminRoutes:    admin.NewAdminRoutesManager(logger, sm.ProductService, sm.StorageService, mw),
		reviewRoutes:   reviews.NewReviewRoutesManager(logger, sm.ReviewService, sm.AuthService, mw),
		favoriteRoutes: favorites.NewFavoriteRoutesManager(logger, sm.FavoriteService, mw),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.reviewRoutes.RegisterRoutes(r)
	rm.favoriteRoutes.RegisterRoutes(r)
}
