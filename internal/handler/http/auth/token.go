package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"prompt-library/internal/handler/http/respond"
	"prompt-library/internal/observability/logging"
	authservice "prompt-library/internal/service/auth"
)

type loginRequest struct {
	// Login is a username or an email address.
	Login    string `json:"login"`
	Password string `json:"password"`
}

type tokenUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      tokenUser `json:"user"`
}

// TokenHandler authenticates a login and password and issues an access token.
//
//	POST /auth/token {"login": "alice", "password": "..."}
func TokenHandler(authService *authservice.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := logging.FromContext(r.Context())

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_request"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			recordLogin("unknown", "failure", start)
			respond.Error(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		session, err := authService.Login(r.Context(), authservice.Credentials{
			Login:    req.Login,
			Password: req.Password,
		})
		if err != nil {
			recordLogin("unknown", "failure", start)
			if errors.Is(err, authservice.ErrInvalidCredentials) {
				logger.Warn("authentication failed",
					slog.String("reason", "invalid_credentials"),
					slog.Int64("duration_ms", time.Since(start).Milliseconds()))
				respond.Error(w, http.StatusUnauthorized, err)
				return
			}
			respond.SafeError(w, r, err)
			return
		}

		role := session.User.Role()
		logger.Info("authentication successful",
			slog.Int64("user_id", session.User.ID),
			slog.String("role", role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		recordLogin(role, "success", start)

		respond.JSON(w, http.StatusOK, tokenResponse{
			Token:     session.Token,
			ExpiresAt: session.ExpiresAt,
			User: tokenUser{
				ID:       session.User.ID,
				Username: session.User.Username,
				Role:     role,
			},
		})
	}
}
