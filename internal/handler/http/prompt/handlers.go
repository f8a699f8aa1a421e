package prompt

import (
	"log/slog"
	"net/http"
	"time"

	"prompt-library/internal/common/pagination"
	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/auth"
	"prompt-library/internal/handler/http/requestid"
	"prompt-library/internal/handler/http/respond"
	"prompt-library/internal/observability/logging"
	"prompt-library/internal/repository"
	promptUC "prompt-library/internal/usecase/prompt"
)

const collection = "prompts"

func pageParams(r *http.Request, cfg pagination.Config) (pagination.Params, error) {
	return pagination.ParseQueryParams(r, cfg.WithDefaultLimit(pagination.PromptsPageSize))
}

// writePage converts and writes one page of prompts with the pagination
// metrics and log line every listing emits.
func writePage(w http.ResponseWriter, r *http.Request, params pagination.Params, page *pagination.Page[*entity.Prompt], start time.Time) {
	dtos := ToDTOs(page.Items)
	pagination.RecordRequest(collection, http.StatusOK, params.Page)
	pagination.LogResponse(logging.FromContext(r.Context()), requestid.FromContext(r.Context()),
		collection, params, len(dtos), time.Since(start), http.StatusOK)
	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, page.Pagination))
}

// ListHandler serves GET /prompts.
//
//	?search=   search in title, description and tags
//	?category= category slug
//	?difficulty=, ?model=, ?sort= (-created_at, -views, -upvotes)
//	?page=, ?limit=
type ListHandler struct {
	Svc        *promptUC.Service
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
	page, err := h.Svc.List(r.Context(), promptUC.ListFilter{
		Search:     q.Get("search"),
		Category:   q.Get("category"),
		Difficulty: entity.Difficulty(q.Get("difficulty")),
		AIModel:    entity.AIModel(q.Get("model")),
		Sort:       repository.PromptSort(q.Get("sort")),
	}, params)
	if err != nil {
		if respond.StatusFor(err) >= http.StatusInternalServerError {
			pagination.RecordError(collection, "database")
			pagination.LogError(logging.FromContext(r.Context()), requestid.FromContext(r.Context()),
				collection, params, err, "database")
		}
		respond.SafeError(w, r, err)
		return
	}
	writePage(w, r, params, page, start)
}

// GetHandler serves GET /prompts/{slug} and counts the view.
type GetHandler struct{ Svc *promptUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d, err := h.Svc.GetBySlug(r.Context(), r.PathValue("slug"), auth.ActorFrom(r.Context()))
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDetailDTO(d))
}

// CreateHandler serves POST /prompts.
type CreateHandler struct{ Svc *promptUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	actor := auth.ActorFrom(r.Context())
	p, err := h.Svc.Create(r.Context(), actor, promptUC.CreateInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		PromptText:  req.PromptText,
		Category:    req.Category,
		Difficulty:  entity.Difficulty(req.Difficulty),
		AIModel:     entity.AIModel(req.AIModel),
		Tags:        req.Tags,
		IsFeatured:  req.IsFeatured,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("prompt created",
		slog.Int64("prompt_id", p.ID),
		slog.String("slug", p.Slug),
		slog.Int64("author_id", actor.ID))
	respond.JSON(w, http.StatusCreated, ToDTO(p))
}

// UpdateHandler serves PUT /prompts/{slug}. Only the author or staff may edit.
type UpdateHandler struct{ Svc *promptUC.Service }

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
	respond.JSON(w, http.StatusOK, ToDTO(p))
}

// DeleteHandler serves DELETE /prompts/{slug}.
type DeleteHandler struct{ Svc *promptUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), auth.ActorFrom(r.Context()), r.PathValue("slug")); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BookmarkHandler serves POST /prompts/{slug}/bookmark, toggling the
// caller's bookmark.
type BookmarkHandler struct{ Svc *promptUC.Service }

func (h BookmarkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	on, err := h.Svc.ToggleBookmark(r.Context(), auth.ActorFrom(r.Context()), r.PathValue("slug"))
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, bookmarkResponse{Bookmarked: on})
}

// MineHandler serves GET /me/prompts, drafts included.
type MineHandler struct {
	Svc        *promptUC.Service
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

// BookmarksHandler serves GET /me/bookmarks.
type BookmarksHandler struct {
	Svc        *promptUC.Service
	Pagination pagination.Config
}

func (h BookmarksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params, err := pageParams(r, h.Pagination)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	page, err := h.Svc.ListBookmarks(r.Context(), auth.ActorFrom(r.Context()), params)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	writePage(w, r, params, page, start)
}
