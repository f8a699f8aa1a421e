package user

import (
	"errors"
	"net/http"

	"prompt-library/internal/handler/http/auth"
	"prompt-library/internal/handler/http/respond"
	userUC "prompt-library/internal/usecase/user"
)

var errUnauthorized = errors.New("unauthorized")

// RegisterHandler serves POST /auth/register.
type RegisterHandler struct{ Svc *userUC.Service }

func (h RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var in userUC.RegisterInput
	if err := respond.DecodeJSON(r, &in); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	u, err := h.Svc.Register(r.Context(), in)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(u))
}

// ProfileHandler serves GET /users/{username}.
type ProfileHandler struct{ Svc *userUC.Service }

func (h ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	v, err := h.Svc.GetProfile(r.Context(), r.PathValue("username"))
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toProfileDTO(v))
}

// UpdateProfileHandler serves PUT /me/profile.
type UpdateProfileHandler struct{ Svc *userUC.Service }

func (h UpdateProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())
	if actor == nil {
		respond.Error(w, http.StatusUnauthorized, errUnauthorized)
		return
	}
	var req profileRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	p, err := h.Svc.UpdateProfile(r.Context(), actor, req.input())
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}
