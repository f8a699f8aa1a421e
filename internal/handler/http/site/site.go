// Package site serves the site settings.
package site

import (
	"net/http"

	"prompt-library/internal/config"
	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/auth"
	"prompt-library/internal/handler/http/respond"
	userUC "prompt-library/internal/usecase/user"
)

// DTO is the site settings as seen by the caller.
type DTO struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Languages   []config.LanguageOption `json:"languages"`
	Theme       entity.Theme            `json:"theme"`
	Language    entity.Language         `json:"language"`
}

// Handler serves GET /site. Anonymous callers get the default preferences.
type Handler struct {
	Site  *config.SiteConfig
	Users *userUC.Service
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	def := entity.NewProfile(0)
	out := DTO{
		Name:        h.Site.Site.Name,
		Description: h.Site.Site.Description,
		Languages:   h.Site.Site.Languages,
		Theme:       def.Theme,
		Language:    def.Language,
	}
	if p, ok := auth.PrincipalFrom(r.Context()); ok {
		theme, lang, err := h.Users.Preferences(r.Context(), p.UserID)
		if err != nil {
			respond.SafeError(w, r, err)
			return
		}
		out.Theme, out.Language = theme, lang
	}
	respond.JSON(w, http.StatusOK, out)
}

// Register registers GET /site with the given mux.
func Register(mux *http.ServeMux, h Handler) {
	mux.Handle("GET    /site", h)
}
