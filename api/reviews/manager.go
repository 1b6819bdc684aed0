package reviews

import (
	"happycrafts_server/api/middleware"
	"happycrafts_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ReviewRoutesManager struct {
	logger        *gecho.Logger
	reviewService *services.ReviewService
	authService   *services.AuthService
	mw            *middleware.Middleware
}

func NewReviewRoutesManager(
	logger *gecho.Logger,
	reviewService *services.ReviewService,
	authService *services.AuthService,
	mw *middleware.Middleware,
) *ReviewRoutesManager {
	return &ReviewRoutesManager{
		logger:        logger,
		reviewService: reviewService,
		authService:   authService,
		mw:            mw,
	}
}

func (rrm *ReviewRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", rrm.ListReviews)

		r.Group(func(r chi.Router) {
			r.Use(rrm.mw.UserAuthMiddleware)
			r.Get("/me", rrm.GetMyReview)

			r.Group(func(r chi.Router) {
				r.Use(rrm.mw.CSRFMiddleware())
				r.Post("/", rrm.CreateReview)
				r.Delete("/{id}", rrm.DeleteReview)
			})
		})
	})
}
