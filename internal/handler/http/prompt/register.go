package prompt

import (
	"net/http"

	"prompt-library/internal/common/pagination"
	promptUC "prompt-library/internal/usecase/prompt"
)

// Register registers all prompt-related HTTP handlers with the given mux.
// Reads are open to anonymous callers; writes and /me need a member token,
// which the auth middleware enforces.
func Register(mux *http.ServeMux, svc *promptUC.Service, cfg pagination.Config) {
	mux.Handle("GET    /prompts", ListHandler{Svc: svc, Pagination: cfg})
	mux.Handle("GET    /prompts/{slug}", GetHandler{svc})

	mux.Handle("POST   /prompts", CreateHandler{svc})
	mux.Handle("PUT    /prompts/{slug}", UpdateHandler{svc})
	mux.Handle("DELETE /prompts/{slug}", DeleteHandler{svc})
	mux.Handle("POST   /prompts/{slug}/bookmark", BookmarkHandler{svc})

	mux.Handle("GET    /me/prompts", MineHandler{Svc: svc, Pagination: cfg})
	mux.Handle("GET    /me/bookmarks", BookmarksHandler{Svc: svc, Pagination: cfg})
}
