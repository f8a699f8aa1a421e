package category

import (
	"net/http"

	catUC "prompt-library/internal/usecase/category"
)

// Register registers the category routes with the given mux.
// Access to /admin is restricted to staff by the auth middleware.
func Register(mux *http.ServeMux, svc *catUC.Service) {
	mux.Handle("GET    /categories/{kind}", ListHandler{svc})
	mux.Handle("GET    /categories/{kind}/{slug}", GetHandler{svc})

	mux.Handle("POST   /admin/categories/{kind}", CreateHandler{svc})
	mux.Handle("PUT    /admin/categories/{kind}/{slug}", UpdateHandler{svc})
	mux.Handle("DELETE /admin/categories/{kind}/{slug}", DeleteHandler{svc})
}
