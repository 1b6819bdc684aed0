package admin

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// CreateProduct handles POST /admin/products. The body is a multipart form
// with product fields and an ordered image set (existing_urls + images files).
func (ar *AdminRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, err := parseProductForm(r)
	if err != nil {
		ar.logger.Debug("Failed to parse product form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	ar.logger.Debug("CreateProduct request received",
		gecho.Field("product_name", form.Fields.Name),
		gecho.Field("images_count", form.Set.Len()),
		gecho.Field("main_index", form.Set.Main()),
	)

	id, fail := ar.submitter.Submit(r.Context(), form.Fields, form.Set)
	if fail != nil {
		ar.sendFailure(w, fail)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"id": id}),
		gecho.WithMessage("Product created successfully"),
		gecho.Send(),
	)
}
