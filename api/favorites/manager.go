package favorites

import (
	"happycrafts_server/api/middleware"
	"happycrafts_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type FavoriteRoutesManager struct {
	logger          *gecho.Logger
	favoriteService *services.FavoriteService
	mw              *middleware.Middleware
}

func NewFavoriteRoutesManager(
	logger *gecho.Logger,
	favoriteService *services.FavoriteService,
	mw *middleware.Middleware,
) *FavoriteRoutesManager {
	return &FavoriteRoutesManager{
		logger:          logger,
		favoriteService: favoriteService,
		mw:              mw,
	}
}

func (frm *FavoriteRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/favorites", func(r chi.Router) {
		r.Use(frm.mw.UserAuthMiddleware)
		r.Get("/", frm.ListFavorites)

		r.Group(func(r chi.Router) {
			r.Use(frm.mw.CSRFMiddleware())
			r.Post("/toggle", frm.ToggleFavorite)
		})
	})
}
