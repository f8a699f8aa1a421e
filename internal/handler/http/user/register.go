package user

import (
	"net/http"

	userUC "prompt-library/internal/usecase/user"
)

// Register registers the account routes with the given mux. The limiter
// wraps sign-up only; token issuing is registered by the auth package.
func Register(mux *http.ServeMux, svc *userUC.Service, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(h http.Handler) http.Handler { return h }
	}
	mux.Handle("POST   /auth/register", limit(RegisterHandler{svc}))
	mux.Handle("GET    /users/{username}", ProfileHandler{svc})
	mux.Handle("PUT    /me/profile", UpdateProfileHandler{svc})
}
