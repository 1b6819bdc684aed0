package auth

import (
	"errors"
	"happycrafts_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleRefresh rotates both tokens from a valid refresh token cookie
func (arm *AuthRoutesManager) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := lib.GetCookieValue(lib.RefreshCookieName, r)
	if err != nil {
		gecho.Unauthorized(w, gecho.WithMessage("No refresh token found"), gecho.Send())
		return
	}

	result, err := arm.authService.RefreshAccessToken(refreshToken)
	if err != nil {
		if errors.Is(err, lib.ErrInvalidToken) || errors.Is(err, lib.ErrExpiredToken) {
			lib.ClearCookie(lib.AccessCookieName, w)
			lib.ClearCookie(lib.RefreshCookieName, w)
			gecho.Unauthorized(w, gecho.WithMessage("Session expired, please log in again"), gecho.Send())
			return
		}

		arm.logger.Error("Failed to refresh tokens", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to refresh session. Please try again"), gecho.Send())
		return
	}

	lib.SetCookie(lib.RefreshCookieName, result.RefreshToken, arm.authService.GetRefreshTokenExpiration(), w)
	lib.SetCookie(lib.AccessCookieName, result.AccessToken, arm.authService.GetAccessTokenExpiration(), w)

	result.User.PasswordHash = ""

	gecho.Success(w,
		gecho.WithMessage("Session refreshed"),
		gecho.WithData(result.User),
		gecho.Send(),
	)
}
