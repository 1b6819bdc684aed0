package reviews

import (
	"errors"
	"happycrafts_server/api/middleware"
	"happycrafts_server/lib"
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

// ListReviews handles GET /reviews, newest first. An optional limit query
// parameter caps the result, zero or absent means all.
func (rrm *ReviewRoutesManager) ListReviews(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			gecho.BadRequest(w, gecho.WithMessage("Invalid limit"), gecho.Send())
			return
		}
		limit = parsed
	}

	reviews, err := rrm.reviewService.GetReviews(r.Context(), limit)
	if err != nil {
		rrm.logger.Error("Failed to list reviews", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load reviews. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"reviews": reviews,
			"count":   len(reviews),
		}),
		gecho.Send(),
	)
}

// CreateReview handles POST /reviews. One review per customer.
func (rrm *ReviewRoutesManager) CreateReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[createReviewRequest](r)
	if err != nil {
		rrm.logger.Warn("Failed to extract review body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("A rating from 1 to 5 and a comment are required"), gecho.Send())
		return
	}

	// The review denormalizes the author's name and avatar
	user, err := rrm.authService.GetUserByID(claims.Sub)
	if err != nil {
		rrm.logger.Error("Failed to load user for review", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to submit review. Please try again"), gecho.Send())
		return
	}

	review, err := rrm.reviewService.CreateReview(r.Context(), user, body.Rating, body.Comment)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("You have already left a review"), gecho.Send())
			return
		}
		gecho.InternalServerError(w, gecho.WithMessage("Unable to submit review. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Review submitted successfully"),
		gecho.WithData(review),
		gecho.Send(),
	)
}

// GetMyReview handles GET /reviews/me
func (rrm *ReviewRoutesManager) GetMyReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	review, err := rrm.reviewService.GetReviewByCustomer(r.Context(), claims.Sub)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("You have not left a review yet"), gecho.Send())
			return
		}
		rrm.logger.Error("Failed to fetch own review", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load your review. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(review), gecho.Send())
}

// DeleteReview handles DELETE /reviews/{id}, owner or admin only
func (rrm *ReviewRoutesManager) DeleteReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid review ID"), gecho.Send())
		return
	}

	caller, err := rrm.authService.GetUserByID(claims.Sub)
	if err != nil {
		rrm.logger.Error("Failed to load user for review delete", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to delete review. Please try again"), gecho.Send())
		return
	}

	if err := rrm.reviewService.DeleteReview(r.Context(), id, caller); err != nil {
		switch {
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage("Review not found"), gecho.Send())
		case errors.Is(err, lib.ErrForbidden):
			gecho.Forbidden(w, gecho.WithMessage("You can only delete your own review"), gecho.Send())
		default:
			rrm.logger.Error("Failed to delete review", gecho.Field("error", err), gecho.Field("review_id", id))
			gecho.InternalServerError(w, gecho.WithMessage("Unable to delete review. Please try again"), gecho.Send())
		}
		return
	}

	gecho.Success(w, gecho.WithMessage("Review deleted successfully"), gecho.Send())
}
