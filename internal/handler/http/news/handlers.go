package news

import (
	"net/http"
	"time"

	"prompt-library/internal/common/pagination"
	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/auth"
	"prompt-library/internal/handler/http/category"
	"prompt-library/internal/handler/http/requestid"
	"prompt-library/internal/handler/http/respond"
	"prompt-library/internal/observability/logging"
	newsUC "prompt-library/internal/usecase/news"
)

const collection = "news"

func pageParams(r *http.Request, cfg pagination.Config) (pagination.Params, error) {
	return pagination.ParseQueryParams(r, cfg.WithDefaultLimit(pagination.NewsPageSize))
}

func logPage(r *http.Request, params pagination.Params, n int, start time.Time) {
	pagination.RecordRequest(collection, http.StatusOK, params.Page)
	pagination.LogResponse(logging.FromContext(r.Context()), requestid.FromContext(r.Context()),
		collection, params, n, time.Since(start), http.StatusOK)
}

// ListHandler serves GET /news/articles?search=&category=&priority=&page=&limit=.
type ListHandler struct {
	Svc        *newsUC.Service
	Pagination pagination.Config
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params, err := pageParams(r, h.Pagination)
	if err != nil {
		pagination.RecordError(collection, "validation")
		respond.SafeError(w, r, err)
		return
	}
	q := r.URL.Query()
	page, err := h.Svc.List(r.Context(), newsUC.ListFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Priority: entity.Priority(q.Get("priority")),
	}, params)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	dtos := ToDTOs(page.Items)
	logPage(r, params, len(dtos), start)
	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, page.Pagination))
}

// CategoryHandler serves GET /news/categories/{slug}/articles.
type CategoryHandler struct {
	Svc        *newsUC.Service
	Pagination pagination.Config
}

func (h CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params, err := pageParams(r, h.Pagination)
	if err != nil {
		pagination.RecordError(collection, "validation")
		respond.SafeError(w, r, err)
		return
	}
	page, err := h.Svc.ListByCategory(r.Context(), r.PathValue("slug"), params)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	dtos := ToDTOs(page.Items)
	logPage(r, params, len(dtos), start)
	respond.JSON(w, http.StatusOK, CategoryPageDTO{
		Category: category.ToDTO(page.Category),
		Response: pagination.NewResponse(dtos, page.Pagination),
	})
}

// GetHandler serves GET /news/articles/{slug} and counts the view.
type GetHandler struct{ Svc *newsUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d, err := h.Svc.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDetailDTO(d))
}

// AdminListHandler serves GET /admin/news/articles, unpublished included.
type AdminListHandler struct {
	Svc        *newsUC.Service
	Pagination pagination.Config
}

func (h AdminListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params, err := pageParams(r, h.Pagination)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	page, err := h.Svc.ListAll(r.Context(), auth.ActorFrom(r.Context()), params)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	dtos := ToDTOs(page.Items)
	logPage(r, params, len(dtos), start)
	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, page.Pagination))
}

// CreateHandler serves POST /admin/news/articles.
type CreateHandler struct{ Svc *newsUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	a, err := h.Svc.Create(r.Context(), auth.ActorFrom(r.Context()), newsUC.CreateInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Subtitle:      req.Subtitle,
		Summary:       req.Summary,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Source:        req.Source,
		Category:      req.Category,
		Priority:      entity.Priority(req.Priority),
		Tags:          req.Tags,
		IsPublished:   req.IsPublished,
		IsFeatured:    req.IsFeatured,
	})
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, ToDTO(a))
}

// UpdateHandler serves PUT /admin/news/articles/{slug}.
type UpdateHandler struct{ Svc *newsUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	a, err := h.Svc.Update(r.Context(), auth.ActorFrom(r.Context()), r.PathValue("slug"), req.input())
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(a))
}

// DeleteHandler serves DELETE /admin/news/articles/{slug}.
type DeleteHandler struct{ Svc *newsUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), auth.ActorFrom(r.Context()), r.PathValue("slug")); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
