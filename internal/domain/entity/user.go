package entity

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Role names carried in access tokens.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Theme is the preferred UI theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Language is the preferred UI language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// User is an account. PasswordHash is a bcrypt hash.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsStaff      bool
	CreatedAt    time.Time
}

// Role maps the staff flag onto a token role.
func (u *User) Role() string {
	if u.IsStaff {
		return RoleAdmin
	}
	return RoleMember
}

// CanEdit reports whether u may modify content authored by authorID.
func (u *User) CanEdit(authorID int64) bool {
	return u != nil && (u.IsStaff || u.ID == authorID)
}

// Profile is the one-to-one extension of a User. It is created together with
// the user and the totals are denormalised counters refreshed on demand.
type Profile struct {
	ID             int64     `json:"-"`
	UserID         int64     `json:"-"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"avatar_url"`
	Website        string    `json:"website"`
	Location       string    `json:"location"`
	Theme          Theme     `json:"theme"`
	Language       Language  `json:"language"`
	TotalPrompts   int64     `json:"-"`
	TotalBookmarks int64     `json:"-"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// NewProfile returns the defaults for a freshly registered user.
func NewProfile(userID int64) *Profile {
	return &Profile{UserID: userID, Theme: ThemeLight, Language: LanguageEnglish}
}

// Validate checks the user editable fields.
func (p *Profile) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Bio, validation.RuneLength(0, 500)),
		validation.Field(&p.AvatarURL, validation.Length(0, 200), is.URL),
		validation.Field(&p.Website, validation.Length(0, 200), is.URL),
		validation.Field(&p.Location, validation.RuneLength(0, 100)),
		validation.Field(&p.Theme, validation.Required, validation.In(ThemeLight, ThemeDark)),
		validation.Field(&p.Language, validation.Required, validation.In(LanguageEnglish, LanguageArabic)),
	)
	return FromValidation(err, "bio", "avatar_url", "website", "location", "theme", "language")
}
