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

type ReviewService struct {
	logger       *gecho.Logger
	db           *database.DB
	emailService *EmailService
}

func NewReviewService(logger *gecho.Logger, db *database.DB, emailService *EmailService) *ReviewService {
	return &ReviewService{
		logger:       logger,
		db:           db,
		emailService: emailService,
	}
}

// CreateReview stores a customer's review. The reviews table has a unique
// constraint on customer_id, so a second submit maps to lib.ErrConflict.
func (rs *ReviewService) CreateReview(ctx context.Context, customer *tables.User, rating int, comment string) (*tables.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	if comment == "" {
		return nil, fmt.Errorf("comment is required")
	}

	review := &tables.Review{
		CustomerID:     customer.Id,
		AuthorName:     customer.Username,
		AuthorImageURL: customer.ImageURL,
		Rating:         rating,
		Comment:        comment,
	}

	review, err := database.Query[tables.Review](rs.db).Insert(ctx, review)
	if err != nil {
		mappedErr := lib.MapPgError(err)

		if lib.IsUniqueViolation(mappedErr) {
			rs.logger.Debug("Duplicate review rejected", gecho.Field("customer_id", customer.Id))
		} else {
			rs.logger.Error("Failed to create review",
				gecho.Field("error", mappedErr),
				gecho.Field("customer_id", customer.Id),
			)
		}
		return nil, mappedErr
	}

	rs.logger.Info("Review created",
		gecho.Field("review_id", review.ID),
		gecho.Field("rating", review.Rating),
	)

	// Notify the shop owner, failures never affect the response
	go func() {
		if err := rs.emailService.NotifyNewReview(review); err != nil {
			rs.logger.Warn("Failed to send review notification", gecho.Field("error", err))
		}
	}()

	return review, nil
}

// GetReviews returns all reviews, newest first
func (rs *ReviewService) GetReviews(ctx context.Context, limit int) ([]tables.Review, error) {
	query := database.Query[tables.Review](rs.db).
		OrderBy("created_at", database.DESC)
	if limit > 0 {
		query = query.Limit(limit)
	}

	reviews, err := query.All(ctx)
	if err != nil {
		rs.logger.Error("Failed to fetch reviews", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

// GetReviewByCustomer returns the customer's own review, or lib.ErrNotFound
func (rs *ReviewService) GetReviewByCustomer(ctx context.Context, customerID uuid.UUID) (*tables.Review, error) {
	review, err := database.Query[tables.Review](rs.db).
		Where("customer_id", customerID).
		First(ctx)
	if err != nil {
		rs.logger.Error("Failed to fetch review", gecho.Field("error", err), gecho.Field("customer_id", customerID))
		return nil, lib.MapPgError(err)
	}
	if review == nil {
		return nil, lib.ErrNotFound
	}
	return review, nil
}

// DeleteReview removes a review. Non-admin callers may only delete their own.
func (rs *ReviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID, caller *tables.User) error {
	review, err := database.FindByID[tables.Review](rs.db, ctx, reviewID)
	if err != nil {
		return lib.MapPgError(err)
	}
	if review == nil {
		return lib.ErrNotFound
	}

	if caller.Role != "admin" && review.CustomerID != caller.Id {
		return lib.ErrForbidden
	}

	deleted, err := database.DeleteByID[tables.Review](rs.db, ctx, reviewID)
	if err != nil {
		rs.logger.Error("Failed to delete review", gecho.Field("error", err), gecho.Field("review_id", reviewID))
		return lib.MapPgError(err)
	}
	if deleted == 0 {
		return lib.ErrNotFound
	}

	rs.logger.Info("Review deleted", gecho.Field("review_id", reviewID), gecho.Field("by", caller.Id))
	return nil
}
