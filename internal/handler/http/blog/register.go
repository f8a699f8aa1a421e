package blog

import (
	"net/http"

	"prompt-library/internal/common/pagination"
	blogUC "prompt-library/internal/usecase/blog"
)

// Register registers the blog routes with the given mux.
func Register(mux *http.ServeMux, svc *blogUC.Service, cfg pagination.Config) {
	mux.Handle("GET    /blog/posts", ListHandler{Svc: svc, Pagination: cfg})
	mux.Handle("GET    /blog/posts/{slug}", GetHandler{svc})

	mux.Handle("POST   /blog/posts", CreateHandler{svc})
	mux.Handle("PUT    /blog/posts/{slug}", UpdateHandler{svc})
	mux.Handle("DELETE /blog/posts/{slug}", DeleteHandler{svc})
	mux.Handle("POST   /blog/posts/{slug}/comments", CommentHandler{svc})
	mux.Handle("GET    /me/posts", MineHandler{Svc: svc, Pagination: cfg})

	mux.Handle("PUT    /admin/comments/{id}", ModerateHandler{svc})
}
