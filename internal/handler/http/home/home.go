// Package home serves the landing page aggregate.
package home

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"prompt-library/internal/handler/http/blog"
	"prompt-library/internal/handler/http/news"
	"prompt-library/internal/handler/http/prompt"
	"prompt-library/internal/handler/http/respond"
	blogUC "prompt-library/internal/usecase/blog"
	newsUC "prompt-library/internal/usecase/news"
	promptUC "prompt-library/internal/usecase/prompt"
)

// DTO is the landing page.
type DTO struct {
	FeaturedPrompts []prompt.DTO   `json:"featured_prompts"`
	FeaturedPosts   []blog.PostDTO `json:"featured_posts"`
	BreakingNews    []news.DTO     `json:"breaking_news"`
	FeaturedNews    []news.DTO     `json:"featured_news"`
	LatestNews      []news.DTO     `json:"latest_news"`
}

// Handler serves GET /home.
type Handler struct {
	Prompts *promptUC.Service
	Posts   *blogUC.Service
	News    *newsUC.Service
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var out DTO
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		ps, err := h.Prompts.Featured(ctx)
		out.FeaturedPrompts = prompt.ToDTOs(ps)
		return err
	})
	g.Go(func() error {
		ps, err := h.Posts.Featured(ctx)
		out.FeaturedPosts = blog.ToPostDTOs(ps)
		return err
	})
	g.Go(func() error {
		as, err := h.News.Breaking(ctx)
		out.BreakingNews = news.ToDTOs(as)
		return err
	})
	g.Go(func() error {
		as, err := h.News.Featured(ctx)
		out.FeaturedNews = news.ToDTOs(as)
		return err
	})
	g.Go(func() error {
		as, err := h.News.Latest(ctx)
		out.LatestNews = news.ToDTOs(as)
		return err
	})
	if err := g.Wait(); err != nil {
		respond.SafeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}

// Register registers GET /home with the given mux.
func Register(mux *http.ServeMux, h Handler) {
	mux.Handle("GET    /home", h)
}
