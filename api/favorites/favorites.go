package favorites

import (
	"happycrafts_server/api/middleware"
	"happycrafts_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type toggleFavoriteRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// ToggleFavorite handles POST /favorites/toggle
func (frm *FavoriteRoutesManager) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[toggleFavoriteRequest](r)
	if err != nil {
		frm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("A product_id is required"), gecho.Send())
		return
	}

	favorited, err := frm.favoriteService.ToggleFavorite(r.Context(), claims.Sub, body.ProductID)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}
		frm.logger.Error("Failed to toggle favorite", gecho.Field("error", err), gecho.Field("product_id", body.ProductID))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update favorites. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product_id": body.ProductID,
			"favorited":  favorited,
		}),
		gecho.Send(),
	)
}

// ListFavorites handles GET /favorites
func (frm *FavoriteRoutesManager) ListFavorites(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	favorites, err := frm.favoriteService.GetFavorites(r.Context(), claims.Sub)
	if err != nil {
		frm.logger.Error("Failed to list favorites", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load favorites. Please try again"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"favorites": favorites,
			"count":     len(favorites),
		}),
		gecho.Send(),
	)
}
