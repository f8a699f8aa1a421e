package blog

import (
	"net/http"
	"time"

	"prompt-library/internal/common/pagination"
	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/auth"
	"prompt-library/internal/handler/http/pathutil"
	"prompt-library/internal/handler/http/requestid"
	"prompt-library/internal/handler/http/respond"
	"prompt-library/internal/observability/logging"
	blogUC "prompt-library/internal/usecase/blog"
)

const collection = "posts"

func pageParams(r *http.Request, cfg pagination.Config) (pagination.Params, error) {
	return pagination.ParseQueryParams(r, cfg.WithDefaultLimit(pagination.PostsPageSize))
}

func writePage(w http.ResponseWriter, r *http.Request, params pagination.Params, page *pagination.Page[*entity.Post], start time.Time) {
	dtos := ToPostDTOs(page.Items)
	pagination.RecordRequest(collection, http.StatusOK, params.Page)
	pagination.LogResponse(logging.FromContext(r.Context()), requestid.FromContext(r.Context()),
		collection, params, len(dtos), time.Since(start), http.StatusOK)
	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, page.Pagination))
}

// ListHandler serves GET /blog/posts?search=&category=&page=&limit=.
type ListHandler struct {
	Svc        *blogUC.Service
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
	page, err := h.Svc.List(r.Context(), blogUC.ListFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}, params)
	if err != nil {
		if respond.StatusFor(err) >= http.StatusInternalServerError {
			pagination.RecordError(collection, "database")
		}
		respond.SafeError(w, r, err)
		return
	}
	writePage(w, r, params, page, start)
}

// GetHandler serves GET /blog/posts/{slug} with the rendered body and the
// approved comments.
type GetHandler struct{ Svc *blogUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d, err := h.Svc.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDetailDTO(d))
}

// CreateHandler serves POST /blog/posts. Posts are drafts unless
// publish_now is set.
type CreateHandler struct{ Svc *blogUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	p, err := h.Svc.Create(r.Context(), auth.ActorFrom(r.Context()), blogUC.CreateInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Category:      req.Category,
		Tags:          req.Tags,
		PublishNow:    req.PublishNow,
		IsFeatured:    req.IsFeatured,
	})
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, ToPostDTO(p))
}

// UpdateHandler serves PUT /blog/posts/{slug}.
type UpdateHandler struct{ Svc *blogUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	p, err := h.Svc.Update(r.Context(), auth.ActorFrom(r.Context()), r.PathValue("slug"), req.input())
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToPostDTO(p))
}

// DeleteHandler serves DELETE /blog/posts/{slug}.
type DeleteHandler struct{ Svc *blogUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), auth.ActorFrom(r.Context()), r.PathValue("slug")); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MineHandler serves GET /me/posts, drafts included.
type MineHandler struct {
	Svc        *blogUC.Service
	Pagination pagination.Config
}

func (h MineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params, err := pageParams(r, h.Pagination)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	page, err := h.Svc.ListByAuthor(r.Context(), auth.ActorFrom(r.Context()), params)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	writePage(w, r, params, page, start)
}

// CommentHandler serves POST /blog/posts/{slug}/comments.
type CommentHandler struct{ Svc *blogUC.Service }

func (h CommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	c, err := h.Svc.AddComment(r.Context(), auth.ActorFrom(r.Context()), r.PathValue("slug"), req.Content)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toCommentDTO(c))
}

// ModerateHandler serves PUT /admin/comments/{id}.
type ModerateHandler struct{ Svc *blogUC.Service }

func (h ModerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	var req moderateRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	c, err := h.Svc.ModerateComment(r.Context(), auth.ActorFrom(r.Context()), id, req.Approved)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toCommentDTO(c))
}
