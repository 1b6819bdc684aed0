package services

import (
	"happycrafts_server/database"
	"happycrafts_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService     *AuthService
	CacheService    *CacheService
	EmailService    *EmailService
	HealthService   *HealthService
	ProductService  *ProductService
	StorageService  *StorageService
	ReviewService   *ReviewService
	FavoriteService *FavoriteService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) (*ServiceManager, error) {
	authService := NewAuthService(cfg, logger, db)
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	productService := NewProductService(logger, db, cacheService)
	reviewService := NewReviewService(logger, db, emailService)
	favoriteService := NewFavoriteService(logger, db, productService)

	storageService, err := NewStorageService(logger, cfg)
	if err != nil {
		return nil, err
	}

	return &ServiceManager{
		AuthService:     authService,
		CacheService:    cacheService,
		EmailService:    emailService,
		HealthService:   healthService,
		ProductService:  productService,
		StorageService:  storageService,
		ReviewService:   reviewService,
		FavoriteService: favoriteService,
	}, nil
}
