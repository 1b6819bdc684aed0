package auth

import (
	"happycrafts_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleMe returns the currently authenticated user
func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, err := lib.ExtractClaims(r, arm.cfg.Auth.AccessTokenSecret)
	if err != nil {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	user, err := arm.authService.GetUserByID(claims.Sub)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.Unauthorized(w, gecho.WithMessage("Account no longer exists"), gecho.Send())
			return
		}
		arm.logger.Error("Failed to load current user", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load account"), gecho.Send())
		return
	}

	user.PasswordHash = ""

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
