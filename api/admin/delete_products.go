package admin

import (
	"context"
	"happycrafts_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DeleteProduct handles DELETE /admin/products/{id}. The database rows go
// first; releasing the stored images is best-effort afterwards.
func (ar *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	urls, err := ar.productService.DeleteProduct(r.Context(), id)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete product. Please try again"), gecho.Send())
		return
	}

	// Orphaned objects are only a storage cost, never block the response
	go func(urls []string) {
		ctx := context.WithoutCancel(r.Context())
		for _, url := range urls {
			if err := ar.storageService.Remove(ctx, url); err != nil {
				ar.logger.Warn("Failed to delete stored image after product delete",
					gecho.Field("url", url),
					gecho.Field("error", err),
				)
			}
		}
	}(urls)

	gecho.Success(w,
		gecho.WithMessage("Product deleted successfully"),
		gecho.WithData(map[string]int{"deleted_images": len(urls)}),
		gecho.Send(),
	)
}
