package admin

import (
	"happycrafts_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UpdateProduct handles PUT /admin/products/{id}. The form's existing_urls
// are the gallery entries to keep; prior URLs missing from it are released
// from storage before the new files upload.
func (ar *AdminRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		ar.logger.Warn("Invalid product ID format", gecho.Field("id", idStr), gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	// The current gallery decides which stored objects become orphans
	existing, err := ar.productService.GetProductByID(r.Context(), id, true)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to load product before update", gecho.Field("error", err), gecho.Field("product_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update product. Please try again"), gecho.Send())
		return
	}

	priorURLs := make([]string, 0, len(existing.Images))
	for _, img := range existing.Images {
		priorURLs = append(priorURLs, img.URL)
	}

	form, err := parseProductForm(r)
	if err != nil {
		ar.logger.Debug("Failed to parse product form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	updatedID, fail := ar.submitter.SubmitUpdate(r.Context(), id.String(), form.Fields, priorURLs, form.Set)
	if fail != nil {
		ar.sendFailure(w, fail)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"id": updatedID}),
		gecho.WithMessage("Product updated successfully"),
		gecho.Send(),
	)
}
