package admin

import (
	"happycrafts_server/api/middleware"
	"happycrafts_server/imageset"
	"happycrafts_server/services"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	storageService *services.StorageService
	submitter      *imageset.Submitter
	mw             *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	storageService *services.StorageService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	submitter := imageset.NewSubmitter(
		storageService,
		storageService,
		services.NewSubmissionPersister(productService),
		logger,
	)

	return &AdminRoutesManager{
		logger:         logger,
		productService: productService,
		storageService: storageService,
		submitter:      submitter,
		mw:             mw,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ar.mw.UserAuthMiddleware)
		r.Use(ar.mw.AdminAuthMiddleware)
		r.Get("/products", ar.ListAllProducts)

		// Protected routes behind CSRF
		r.Group(func(r chi.Router) {
			r.Use(ar.mw.CSRFMiddleware())
			r.Post("/products", ar.CreateProduct)
			r.Put("/products/{id}", ar.UpdateProduct)
			r.Delete("/products/{id}", ar.DeleteProduct)
		})
	})
}

// sendFailure maps a submission failure onto the matching HTTP response
func (ar *AdminRoutesManager) sendFailure(w http.ResponseWriter, fail *imageset.Failure) {
	switch fail.Kind {
	case imageset.ValidationError:
		gecho.BadRequest(w, gecho.WithMessage(fail.Message), gecho.Send())
	case imageset.NotFound:
		gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
	case imageset.UploadError:
		ar.logger.Error("Image upload failed during submission", gecho.Field("error", fail.Err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to store product images. Please try again"), gecho.Send())
	default:
		ar.logger.Error("Product submission failed", gecho.Field("error", fail.Err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to save product. Please try again"), gecho.Send())
	}
}
