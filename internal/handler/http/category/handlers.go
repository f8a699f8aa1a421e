package category

import (
	"net/http"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/respond"
	catUC "prompt-library/internal/usecase/category"
)

func kindOf(r *http.Request) (entity.CategoryKind, error) {
	return entity.ParseCategoryKind(r.PathValue("kind"))
}

// ListHandler serves GET /categories/{kind}.
type ListHandler struct{ Svc *catUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind, err := kindOf(r)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	cats, err := h.Svc.List(r.Context(), kind)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	out := make([]*DTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, ToDTO(c))
	}
	respond.JSON(w, http.StatusOK, out)
}

// GetHandler serves GET /categories/{kind}/{slug}.
type GetHandler struct{ Svc *catUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind, err := kindOf(r)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	c, err := h.Svc.GetBySlug(r.Context(), kind, r.PathValue("slug"))
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(c))
}

// CreateHandler serves POST /admin/categories/{kind}. The slug is derived
// from the explicit slug or the name and made unique within the kind.
type CreateHandler struct{ Svc *catUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind, err := kindOf(r)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	var req createRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	c, err := h.Svc.Create(r.Context(), kind, catUC.CreateInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, ToDTO(c))
}

// UpdateHandler serves PUT /admin/categories/{kind}/{slug}.
type UpdateHandler struct{ Svc *catUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind, err := kindOf(r)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	var req updateRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	c, err := h.Svc.Update(r.Context(), kind, r.PathValue("slug"), catUC.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(c))
}

// DeleteHandler serves DELETE /admin/categories/{kind}/{slug}.
type DeleteHandler struct{ Svc *catUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind, err := kindOf(r)
	if err != nil {
		respond.SafeError(w, r, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), kind, r.PathValue("slug")); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
