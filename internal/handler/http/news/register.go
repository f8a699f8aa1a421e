package news

import (
	"net/http"

	"prompt-library/internal/common/pagination"
	newsUC "prompt-library/internal/usecase/news"
)

// Register registers the news routes with the given mux.
func Register(mux *http.ServeMux, svc *newsUC.Service, cfg pagination.Config) {
	mux.Handle("GET    /news/articles", ListHandler{Svc: svc, Pagination: cfg})
	mux.Handle("GET    /news/articles/{slug}", GetHandler{svc})
	mux.Handle("GET    /news/categories/{slug}/articles", CategoryHandler{Svc: svc, Pagination: cfg})

	mux.Handle("GET    /admin/news/articles", AdminListHandler{Svc: svc, Pagination: cfg})
	mux.Handle("POST   /admin/news/articles", CreateHandler{svc})
	mux.Handle("PUT    /admin/news/articles/{slug}", UpdateHandler{svc})
	mux.Handle("DELETE /admin/news/articles/{slug}", DeleteHandler{svc})
}
