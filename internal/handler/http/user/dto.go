// Package user provides the HTTP handlers for registration and profiles.
package user

import (
	"time"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/prompt"
	userUC "prompt-library/internal/usecase/user"
)

// DTO is the public view of an account. The email is never exposed.
type DTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(u *entity.User) DTO {
	return DTO{ID: u.ID, Username: u.Username, Role: u.Role(), CreatedAt: u.CreatedAt}
}

// ProfileDTO is a profile page.
type ProfileDTO struct {
	User           DTO             `json:"user"`
	Profile        *entity.Profile `json:"profile"`
	RecentPrompts  []prompt.DTO    `json:"recent_prompts"`
	TotalPrompts   int64           `json:"total_prompts"`
	TotalBookmarks int64           `json:"total_bookmarks"`
	TotalViews     int64           `json:"total_views"`
}

func toProfileDTO(v *userUC.ProfileView) ProfileDTO {
	return ProfileDTO{
		User:           toDTO(v.User),
		Profile:        v.Profile,
		RecentPrompts:  prompt.ToDTOs(v.RecentPrompts),
		TotalPrompts:   v.TotalPrompts,
		TotalBookmarks: v.TotalBookmarks,
		TotalViews:     v.TotalViews,
	}
}

type profileRequest struct {
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Website   *string `json:"website"`
	Location  *string `json:"location"`
	Theme     *string `json:"theme"`
	Language  *string `json:"language"`
}

func (req profileRequest) input() userUC.ProfileInput {
	in := userUC.ProfileInput{
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		Website:   req.Website,
		Location:  req.Location,
	}
	if req.Theme != nil {
		t := entity.Theme(*req.Theme)
		in.Theme = &t
	}
	if req.Language != nil {
		l := entity.Language(*req.Language)
		in.Language = &l
	}
	return in
}
