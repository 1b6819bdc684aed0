package services

import (
	"context"
	"fmt"
	"happycrafts_server/database"
	"happycrafts_server/lib"
	"happycrafts_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type FavoriteService struct {
	logger         *gecho.Logger
	db             *database.DB
	productService *ProductService
}

func NewFavoriteService(logger *gecho.Logger, db *database.DB, productService *ProductService) *FavoriteService {
	return &FavoriteService{
		logger:         logger,
		db:             db,
		productService: productService,
	}
}

// ToggleFavorite flips the favorite state of a product for a customer.
// Returns true when the product is now favorited, false when unfavorited.
func (fs *FavoriteService) ToggleFavorite(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	// The product must exist, otherwise favorites can point at nothing
	if _, err := fs.productService.GetProductByID(ctx, productID, false); err != nil {
		if lib.IsNotFound(err) {
			return false, lib.ErrNotFound
		}
		return false, err
	}

	existing, err := database.Query[tables.Favorite](fs.db).
		Where("customer_id", customerID).
		Where("product_id", productID).
		First(ctx)
	if err != nil {
		fs.logger.Error("Failed to look up favorite",
			gecho.Field("error", err),
			gecho.Field("customer_id", customerID),
			gecho.Field("product_id", productID),
		)
		return false, fmt.Errorf("failed to look up favorite: %w", err)
	}

	if existing != nil {
		_, err := database.DeleteByID[tables.Favorite](fs.db, ctx, existing.ID)
		if err != nil {
			fs.logger.Error("Failed to remove favorite", gecho.Field("error", err), gecho.Field("favorite_id", existing.ID))
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}

	favorite := &tables.Favorite{
		CustomerID: customerID,
		ProductID:  productID,
	}
	if _, err := database.Query[tables.Favorite](fs.db).Insert(ctx, favorite); err != nil {
		mappedErr := lib.MapPgError(err)
		// A concurrent toggle can race the existence check, treat as favorited
		if lib.IsUniqueViolation(mappedErr) {
			return true, nil
		}
		fs.logger.Error("Failed to add favorite", gecho.Field("error", mappedErr), gecho.Field("product_id", productID))
		return false, mappedErr
	}

	return true, nil
}

// GetFavorites returns a customer's favorites with products preloaded, newest first
func (fs *FavoriteService) GetFavorites(ctx context.Context, customerID uuid.UUID) ([]tables.Favorite, error) {
	favorites, err := database.Query[tables.Favorite](fs.db).
		Where("customer_id", customerID).
		Relation("Product").
		OrderBy("created_at", database.DESC).
		All(ctx)
	if err != nil {
		fs.logger.Error("Failed to fetch favorites", gecho.Field("error", err), gecho.Field("customer_id", customerID))
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}
	return favorites, nil
}
