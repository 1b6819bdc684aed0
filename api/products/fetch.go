package products

import (
	"happycrafts_server/handling"
	"happycrafts_server/lib"
	"happycrafts_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchCatalog handles GET /products with filtering and pagination
func (p *ProductRoutesManager) FetchCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Parse query parameters into options
	opts, err := handling.ParseCatalogOptions(r)
	if err != nil {
		p.logger.Warn("Invalid query parameters", "error", err)
		gecho.BadRequest(w,
			gecho.WithMessage("error.invalidQueryParameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	p.logger.Debug("Fetching catalog",
		gecho.Field("page", opts.Page),
		gecho.Field("per_page", opts.PerPage),
		gecho.Field("category", opts.Category),
	)

	result, err := p.productService.GetCatalog(ctx, opts)
	if err != nil {
		p.logger.Error("Failed to fetch catalog", "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToFetch"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Products,
			"pagination": result.Pagination,
			"filters":    result.Filters,
			"meta": map[string]any{
				"query_time_ms": result.QueryTime.Milliseconds(),
				"count":         len(result.Products),
			},
		}),
		gecho.Send(),
	)
}

// FetchProductByID handles GET /products/{id} to fetch a single product
func (p *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	idStr := chi.URLParam(r, "id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		p.logger.Warn("Invalid product ID format", "id", idStr, "error", err)
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.invalidProductId"),
			gecho.Send(),
		)
		return
	}

	if id == uuid.Nil {
		p.logger.Warn("Product ID not provided")
		gecho.BadRequest(w,
			gecho.WithMessage("error.products.productIdRequired"),
			gecho.Send(),
		)
		return
	}

	// Detail pages always get the full gallery unless explicitly disabled
	includeImages := r.URL.Query().Get("include_images") != "false"

	product, err := p.productService.GetProductByID(ctx, id, includeImages)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("error.products.notFound"),
				gecho.Send(),
			)
			return
		}

		p.logger.Error("Failed to fetch product by ID", "id", id, "error", err)
		gecho.InternalServerError(w,
			gecho.WithMessage("error.products.failedToFetchOne"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product": product,
		}),
		gecho.Send(),
	)
}

// FetchCategories handles GET /products/categories, the fixed category vocabulary
func (p *ProductRoutesManager) FetchCategories(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"categories": structs.ProductCategories,
		}),
		gecho.Send(),
	)
}

// FetchTags handles GET /products/tags, the fixed tag vocabulary
func (p *ProductRoutesManager) FetchTags(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"tags": structs.ProductTags,
		}),
		gecho.Send(),
	)
}
