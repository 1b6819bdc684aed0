package admin

import (
	"happycrafts_server/handling"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (ar *AdminRoutesManager) ListAllProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseCatalogOptions(r)
	if err != nil {
		ar.logger.Warn("Failed to parse catalog options", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.invalidQueryParameters"), gecho.Send())
		return
	}

	// The admin list always needs galleries for the editor
	opts.IncludeImages = true

	result, err := ar.productService.GetCatalog(r.Context(), opts)
	if err != nil {
		ar.logger.Error("Failed to list products", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.products.failedToList"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.WithMessage("success.products.retrieved"),
		gecho.Send(),
	)
}
