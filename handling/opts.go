package handling

import (
	"happycrafts_server/services"
	"net/http"
	"strconv"
)

// ParseCatalogOptions parses HTTP query parameters into CatalogOptions
func ParseCatalogOptions(r *http.Request) (*services.CatalogOptions, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &services.CatalogOptions{}, nil
	}

	opts := &services.CatalogOptions{}

	if page := query.Get("page"); page != "" {
		val, err := strconv.Atoi(page)
		if err != nil {
			return nil, err
		}
		opts.Page = val
	}

	if perPage := query.Get("per_page"); perPage != "" {
		val, err := strconv.Atoi(perPage)
		if err != nil {
			return nil, err
		}
		opts.PerPage = val
	}

	if category := query.Get("category"); category != "" {
		opts.Category = category
	}

	if tag := query.Get("tag"); tag != "" {
		opts.Tag = tag
	}

	if search := query.Get("search"); search != "" {
		opts.Search = search
	}

	if includeImages := query.Get("include_images"); includeImages != "" {
		val, err := strconv.ParseBool(includeImages)
		if err != nil {
			return nil, err
		}
		opts.IncludeImages = val
	}

	return opts, nil
}
