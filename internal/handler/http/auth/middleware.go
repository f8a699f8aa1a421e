package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/respond"
	"prompt-library/internal/observability/logging"
	authservice "prompt-library/internal/service/auth"
)

type ctxKey string

const ctxPrincipal ctxKey = "principal"

// Principal is the authenticated caller taken from the access token.
type Principal struct {
	UserID   int64
	Username string
	Role     string
}

// Actor converts p into the user value the use cases check permissions on.
func (p Principal) Actor() *entity.User {
	return &entity.User{ID: p.UserID, Username: p.Username, IsStaff: p.Role == RoleAdmin}
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// PrincipalFrom returns the caller stored by Authz.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	return p, ok
}

// ActorFrom returns the caller as a user, or nil for anonymous requests.
func ActorFrom(ctx context.Context) *entity.User {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return nil
	}
	return p.Actor()
}

var (
	errMissingToken = errors.New("missing bearer token")
	errUnauthorized = errors.New("unauthorized")
	errForbidden    = errors.New("forbidden")
)

// Authz authenticates the bearer token and enforces RolePermissions.
//
//  1. Public endpoints are served without looking at the token.
//  2. A token, when present, must verify; a bad token is 401 even on
//     anonymous reads.
//  3. Anonymous reads are served without a principal.
//  4. Everything else needs a principal whose role allows method and path (403 otherwise).
func Authz(tokens *authservice.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := authenticate(tokens, r.Header.Get("Authorization"))
			switch {
			case errors.Is(err, errMissingToken):
				if IsAnonymousRead(r.Method, r.URL.Path) {
					next.ServeHTTP(w, r)
					return
				}
				recordUnauthorized()
				respond.Error(w, http.StatusUnauthorized, errUnauthorized)
				return
			case err != nil:
				logging.FromContext(r.Context()).Warn("rejected access token",
					slog.String("path", r.URL.Path),
					slog.Any("error", err))
				recordUnauthorized()
				respond.Error(w, http.StatusUnauthorized, errUnauthorized)
				return
			}

			allowed := IsAnonymousRead(r.Method, r.URL.Path) ||
				checkRolePermission(principal.Role, r.Method, r.URL.Path)
			if !allowed {
				recordForbidden(principal.Role)
				respond.Error(w, http.StatusForbidden, errForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func authenticate(tokens *authservice.Tokens, header string) (Principal, error) {
	if header == "" {
		return Principal{}, errMissingToken
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return Principal{}, errors.New("malformed authorization header")
	}
	claims, err := tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, prefix)))
	if err != nil {
		return Principal{}, err
	}
	return Principal{UserID: claims.UserID, Username: claims.Subject, Role: claims.Role}, nil
}
