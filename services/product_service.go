package services

import (
	"context"
	"fmt"
	"happycrafts_server/database"
	"happycrafts_server/imageset"
	"happycrafts_server/lib"
	"happycrafts_server/structs"
	"happycrafts_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

const (
	defaultPerPage = 12
	maxPerPage     = 48
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// CatalogOptions contains filtering and pagination options for catalog queries
type CatalogOptions struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`

	Category string `json:"category,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Search   string `json:"search,omitempty"`

	IncludeImages bool `json:"include_images"`
}

// CatalogResult wraps the catalog response with metadata
type CatalogResult struct {
	Products   []tables.Product    `json:"products"`
	Pagination database.Pagination `json:"pagination"`
	Filters    CatalogOptions      `json:"filters"`
	QueryTime  time.Duration       `json:"query_time"`
}

// GetCatalog retrieves the storefront catalog page with filters and pagination
func (ps *ProductService) GetCatalog(ctx context.Context, opts *CatalogOptions) (*CatalogResult, error) {
	startTime := time.Now()

	if opts == nil {
		opts = &CatalogOptions{}
	}
	ps.applyDefaultOptions(opts)

	if err := ps.validateOptions(opts); err != nil {
		ps.logger.Warn("Invalid catalog options", gecho.Field("error", err), gecho.Field("options", opts))
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Unfiltered pages are served from cache when possible
	cacheable := opts.Category == "" && opts.Tag == "" && opts.Search == ""
	if cacheable {
		if cached, err := ps.cacheService.GetCatalogPage(opts.Page, opts.PerPage, opts.IncludeImages); err != nil {
			ps.logger.Warn("Failed to get catalog page from cache", gecho.Field("error", err))
		} else if cached != nil {
			ps.logger.Debug("Catalog page retrieved from cache",
				gecho.Field("page", opts.Page),
				gecho.Field("duration", time.Since(startTime)),
			)
			cached.Filters = *opts
			cached.QueryTime = time.Since(startTime)
			return cached, nil
		}
	}

	query := database.Query[tables.Product](ps.db)
	query = ps.applyFilters(query, opts)
	query = query.OrderBy("created_at", database.DESC).OrderBy("id", database.ASC)

	if opts.IncludeImages {
		query = query.RelationWith("Images", orderImages)
	}

	result, err := database.Paginate(query, ctx, opts.Page, opts.PerPage)
	if err != nil {
		ps.logger.Error("Failed to fetch catalog page",
			gecho.Field("error", err),
			gecho.Field("page", opts.Page),
			gecho.Field("perPage", opts.PerPage),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	catalog := &CatalogResult{
		Products:   result.Data,
		Pagination: result.Pagination,
		Filters:    *opts,
		QueryTime:  time.Since(startTime),
	}

	if cacheable {
		go func() {
			if err := ps.cacheService.SetCatalogPage(opts.Page, opts.PerPage, opts.IncludeImages, catalog); err != nil {
				ps.logger.Warn("Failed to cache catalog page", gecho.Field("error", err))
			}
		}()
	}

	ps.logger.Debug("Catalog page fetched",
		gecho.Field("count", len(result.Data)),
		gecho.Field("total", result.Pagination.Total),
		gecho.Field("page", result.Pagination.Page),
		gecho.Field("duration", time.Since(startTime)),
	)

	return catalog, nil
}

// GetProductByID retrieves a single product with its gallery ordered
// primary-first. Returns lib.ErrNotFound when the id does not exist.
func (ps *ProductService) GetProductByID(ctx context.Context, id uuid.UUID, includeImages bool) (*tables.Product, error) {
	startTime := time.Now()

	cachedProduct, err := ps.cacheService.GetProductByID(id.String(), includeImages)
	if err != nil {
		ps.logger.Warn("Failed to get product from cache", gecho.Field("error", err), gecho.Field("id", id))
	} else if cachedProduct != nil {
		ps.logger.Debug("Product retrieved from cache", gecho.Field("id", id), gecho.Field("duration", time.Since(startTime)))
		return cachedProduct, nil
	}

	query := database.Query[tables.Product](ps.db).
		Where("id", id).
		Timeout(5 * time.Second)

	if includeImages {
		query = query.RelationWith("Images", orderImages)
	}

	product, err := query.First(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch product by ID",
			gecho.Field("id", id),
			gecho.Field("error", err),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	if product == nil {
		return nil, lib.ErrNotFound
	}

	go func() {
		if err := ps.cacheService.SetProductByID(product, includeImages); err != nil {
			ps.logger.Warn("Failed to cache product", gecho.Field("error", err), gecho.Field("id", id))
		}
	}()

	return product, nil
}

// orderImages orders a preloaded gallery primary-first, then by position
func orderImages(sq *bun.SelectQuery) *bun.SelectQuery {
	return sq.OrderExpr("is_primary DESC, position ASC")
}

func (ps *ProductService) applyDefaultOptions(opts *CatalogOptions) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PerPage < 1 {
		opts.PerPage = defaultPerPage
	}
	if opts.PerPage > maxPerPage {
		opts.PerPage = maxPerPage
	}
}

func (ps *ProductService) validateOptions(opts *CatalogOptions) error {
	if opts.Category != "" && !structs.IsProductCategory(opts.Category) {
		return fmt.Errorf("unknown category: %s", opts.Category)
	}
	if opts.Tag != "" && !structs.IsProductTag(opts.Tag) {
		return fmt.Errorf("unknown tag: %s", opts.Tag)
	}
	return nil
}

func (ps *ProductService) applyFilters(query *database.QueryBuilder[tables.Product], opts *CatalogOptions) *database.QueryBuilder[tables.Product] {
	if opts.Category != "" {
		query = query.Where("category", opts.Category)
	}

	if opts.Tag != "" {
		query = query.WhereRaw("? = ANY (tags)", opts.Tag)
	}

	if opts.Search != "" {
		searchPattern := "%" + opts.Search + "%"
		query = query.WhereRaw(
			"(name ILIKE ? OR description ILIKE ? OR company ILIKE ?)",
			searchPattern, searchPattern, searchPattern,
		)
	}

	return query
}

// validateFields enforces the product form contract. Violations wrap
// imageset.ErrInvalid so the submission workflow classifies them.
func validateFields(fields imageset.ProductFields) error {
	switch {
	case fields.Name == "":
		return fmt.Errorf("%w: name is required", imageset.ErrInvalid)
	case fields.Company == "":
		return fmt.Errorf("%w: company is required", imageset.ErrInvalid)
	case fields.Description == "":
		return fmt.Errorf("%w: description is required", imageset.ErrInvalid)
	case !structs.IsProductCategory(fields.Category):
		return fmt.Errorf("%w: unknown category %q", imageset.ErrInvalid, fields.Category)
	case len(fields.Tags) == 0:
		return fmt.Errorf("%w: at least one tag is required", imageset.ErrInvalid)
	}
	for _, tag := range fields.Tags {
		if !structs.IsProductTag(tag) {
			return fmt.Errorf("%w: unknown tag %q", imageset.ErrInvalid, tag)
		}
	}
	return nil
}

// CreateProduct writes the product row and its gallery rows as one
// transaction. The product row denormalizes urls[main] into its image
// column; each gallery row carries its list position and the main flag.
func (ps *ProductService) CreateProduct(ctx context.Context, fields imageset.ProductFields, urls []string, main int) (uuid.UUID, error) {
	startTime := time.Now()

	if err := validateFields(fields); err != nil {
		return uuid.Nil, err
	}
	if len(urls) == 0 || main < 0 || main >= len(urls) {
		return uuid.Nil, fmt.Errorf("%w: invalid image payload", imageset.ErrInvalid)
	}

	productID := uuid.New()
	product := &tables.Product{
		ID:          productID,
		Name:        fields.Name,
		Company:     fields.Company,
		Description: fields.Description,
		Category:    fields.Category,
		Options:     fields.Options,
		Tags:        fields.Tags,
		Price:       fields.Price,
		Image:       urls[main],
	}

	err := database.Transaction(ps.db, ctx, func(tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(product).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}

		images := buildImageRows(productID, urls, main, fields.Name)
		if _, err := tx.NewInsert().Model(&images).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert product images: %w", err)
		}

		return nil
	})
	if err != nil {
		ps.logger.Error("Failed to create product",
			gecho.Field("error", err),
			gecho.Field("product_name", fields.Name),
			gecho.Field("duration", time.Since(startTime)),
		)
		return uuid.Nil, err
	}

	ps.invalidateCaches(productID)

	ps.logger.Info("Product created",
		gecho.Field("id", productID),
		gecho.Field("image_count", len(urls)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return productID, nil
}

// UpdateProduct rewrites the product row and replaces its entire gallery
// inside one transaction. Wraps imageset.ErrNotFound when id is unknown.
func (ps *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, fields imageset.ProductFields, urls []string, main int) error {
	startTime := time.Now()

	if err := validateFields(fields); err != nil {
		return err
	}
	if len(urls) == 0 || main < 0 || main >= len(urls) {
		return fmt.Errorf("%w: invalid image payload", imageset.ErrInvalid)
	}

	err := database.Transaction(ps.db, ctx, func(tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*tables.Product)(nil)).
			Set("name = ?", fields.Name).
			Set("company = ?", fields.Company).
			Set("description = ?", fields.Description).
			Set("category = ?", fields.Category).
			Set("options = ?", pgdialect.Array(fields.Options)).
			Set("tags = ?", pgdialect.Array(fields.Tags)).
			Set("price = ?", fields.Price).
			Set("image = ?", urls[main]).
			Set("updated_at = now()").
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return fmt.Errorf("%w: product %s", imageset.ErrNotFound, id)
		}

		if _, err := tx.NewDelete().
			Model((*tables.ProductImage)(nil)).
			Where("product_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete existing images: %w", err)
		}

		images := buildImageRows(id, urls, main, fields.Name)
		if _, err := tx.NewInsert().Model(&images).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert new images: %w", err)
		}

		return nil
	})
	if err != nil {
		ps.logger.Error("Failed to update product",
			gecho.Field("error", err),
			gecho.Field("product_id", id),
			gecho.Field("duration", time.Since(startTime)),
		)
		return err
	}

	ps.invalidateCaches(id)

	ps.logger.Info("Product updated",
		gecho.Field("id", id),
		gecho.Field("image_count", len(urls)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return nil
}

// DeleteProduct removes the product and returns the URLs of its stored
// images so the caller can release the objects. Gallery rows cascade.
func (ps *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) ([]string, error) {
	product, err := ps.GetProductByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		urls = append(urls, img.URL)
	}

	deleted, err := database.DeleteByID[tables.Product](ps.db, ctx, id)
	if err != nil {
		ps.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	if deleted == 0 {
		return nil, lib.ErrNotFound
	}

	ps.invalidateCaches(id)

	ps.logger.Info("Product deleted", gecho.Field("id", id), gecho.Field("image_count", len(urls)))
	return urls, nil
}

// buildImageRows maps an ordered URL list to gallery rows
func buildImageRows(productID uuid.UUID, urls []string, main int, altText string) []tables.ProductImage {
	images := make([]tables.ProductImage, len(urls))
	for i, url := range urls {
		images[i] = tables.ProductImage{
			ID:        uuid.New(),
			ProductID: productID,
			URL:       url,
			AltText:   altText,
			IsPrimary: i == main,
			Position:  i,
		}
	}
	return images
}

func (ps *ProductService) invalidateCaches(productID uuid.UUID) {
	go func() {
		if err := ps.cacheService.InvalidateProductCaches(productID); err != nil {
			ps.logger.Warn("Failed to invalidate product caches",
				gecho.Field("error", err),
				gecho.Field("product_id", productID),
			)
		}
	}()
}

// SubmissionPersister adapts ProductService to the submission workflow's
// persister contract.
type SubmissionPersister struct {
	products *ProductService
}

func NewSubmissionPersister(products *ProductService) *SubmissionPersister {
	return &SubmissionPersister{products: products}
}

func (sp *SubmissionPersister) Create(ctx context.Context, fields imageset.ProductFields, urls []string, main int) (string, error) {
	id, err := sp.products.CreateProduct(ctx, fields, urls, main)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (sp *SubmissionPersister) Update(ctx context.Context, id string, fields imageset.ProductFields, urls []string, main int) (string, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: invalid product id %q", imageset.ErrInvalid, id)
	}
	if err := sp.products.UpdateProduct(ctx, productID, fields, urls, main); err != nil {
		return "", err
	}
	return id, nil
}
