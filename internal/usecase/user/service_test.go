package user_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/repository/repotest"
	"prompt-library/internal/service/auth"
	userUC "prompt-library/internal/usecase/user"
)

func newService() (*userUC.Service, *repotest.Store) {
	st := repotest.NewStore()
	return &userUC.Service{
		Users:     st.Users(),
		Profiles:  st.Profiles(),
		Prompts:   st.Prompts(),
		Bookmarks: st.Bookmarks(),
	}, st
}

func registration(name string) userUC.RegisterInput {
	return userUC.RegisterInput{
		Username:        name,
		Email:           name + "@example.com",
		Password:        "correct horse battery",
		PasswordConfirm: "correct horse battery",
	}
}

func mustRegister(t *testing.T, svc *userUC.Service, name string) *entity.User {
	t.Helper()
	u, err := svc.Register(context.Background(), registration(name))
	require.NoError(t, err)
	return u
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *entity.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Field
}

/* ──────────────────────────────── Register ──────────────────────────────── */

func TestService_Register_CreatesUserAndProfile(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	u := mustRegister(t, svc, " alice ")
	assert.Equal(t, "alice", u.Username)
	assert.False(t, u.IsStaff)
	assert.NotEqual(t, "correct horse battery", u.PasswordHash)
	assert.True(t, auth.CheckPassword(u.PasswordHash, "correct horse battery"))

	p, err := st.Profiles().GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, p, "profile is created with the user")
	assert.Equal(t, entity.ThemeLight, p.Theme)
	assert.Equal(t, entity.LanguageEnglish, p.Language)
}

func TestService_Register_Validation(t *testing.T) {
	svc, _ := newService()

	tests := []struct {
		name  string
		mut   func(*userUC.RegisterInput)
		field string
	}{
		{"empty username", func(in *userUC.RegisterInput) { in.Username = "" }, "username"},
		{"username with space", func(in *userUC.RegisterInput) { in.Username = "bad name" }, "username"},
		{"username too long", func(in *userUC.RegisterInput) { in.Username = strings.Repeat("u", 151) }, "username"},
		{"bad email", func(in *userUC.RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *userUC.RegisterInput) { in.Password, in.PasswordConfirm = "short", "short" }, "password"},
		{"common password", func(in *userUC.RegisterInput) { in.Password, in.PasswordConfirm = "Password123", "Password123" }, "password"},
		{"numeric password", func(in *userUC.RegisterInput) { in.Password, in.PasswordConfirm = "73920481", "73920481" }, "password"},
		{"password over bcrypt limit", func(in *userUC.RegisterInput) {
			in.Password = strings.Repeat("xy", 40)
			in.PasswordConfirm = in.Password
		}, "password"},
		{"mismatch", func(in *userUC.RegisterInput) { in.PasswordConfirm = "something else" }, "password_confirm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := registration("valid.user+tag@x")
			in.Email = "valid@example.com"
			tt.mut(&in)
			_, err := svc.Register(context.Background(), in)
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}
}

func TestService_Register_Duplicates(t *testing.T) {
	svc, _ := newService()
	mustRegister(t, svc, "alice")

	_, err := svc.Register(context.Background(), registration("alice"))
	assert.ErrorIs(t, err, userUC.ErrDuplicateUser)

	in := registration("alice2")
	in.Email = "ALICE@example.com"
	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, entity.ErrDuplicateUser)
}

/* ──────────────────────────────── Authenticate ──────────────────────────────── */

func TestService_Authenticate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice")

	u, err := svc.Authenticate(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)

	u, err = svc.Authenticate(ctx, "Alice@Example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID, "email login is case-insensitive")

	_, err = svc.Authenticate(ctx, "alice", "wrong password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody", "correct horse battery")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

/* ──────────────────────────────── Profile ──────────────────────────────── */

func TestService_GetProfile(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")

	for i := 0; i < 8; i++ {
		p := &entity.Prompt{Title: "p", Slug: "p" + strings.Repeat("x", i), AuthorID: alice.ID, IsPublished: true}
		require.NoError(t, st.Prompts().Create(ctx, p))
		require.NoError(t, st.Prompts().IncrementViews(ctx, p.ID))
	}
	draft := &entity.Prompt{Title: "draft", Slug: "draft", AuthorID: alice.ID}
	require.NoError(t, st.Prompts().Create(ctx, draft))
	require.NoError(t, st.Bookmarks().Add(ctx, alice.ID, draft.ID))
	require.NoError(t, st.Bookmarks().Add(ctx, bob.ID, draft.ID))

	v, err := svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, v.User.ID)
	assert.Len(t, v.RecentPrompts, userUC.RecentPromptsLimit)
	assert.Equal(t, int64(8), v.TotalPrompts)
	assert.Equal(t, int64(1), v.TotalBookmarks)
	assert.Equal(t, int64(8), v.TotalViews)
	require.NotNil(t, v.Profile)

	_, err = svc.GetProfile(ctx, "carol")
	assert.ErrorIs(t, err, userUC.ErrUserNotFound)
}

func TestService_UpdateProfile(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice")

	bio := "Prompt engineer"
	dark := entity.ThemeDark
	ar := entity.LanguageArabic
	p, err := svc.UpdateProfile(ctx, alice, userUC.ProfileInput{Bio: &bio, Theme: &dark, Language: &ar})
	require.NoError(t, err)
	assert.Equal(t, bio, p.Bio)

	theme, lang, err := svc.Preferences(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeDark, theme)
	assert.Equal(t, entity.LanguageArabic, lang)

	site := "not a url"
	_, err = svc.UpdateProfile(ctx, alice, userUC.ProfileInput{Website: &site})
	assert.Equal(t, "website", fieldOf(t, err))

	long := strings.Repeat("b", 501)
	_, err = svc.UpdateProfile(ctx, alice, userUC.ProfileInput{Bio: &long})
	assert.Equal(t, "bio", fieldOf(t, err))
}

func TestService_RefreshAllStats(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice")
	bob := mustRegister(t, svc, "bob")

	p := &entity.Prompt{Title: "p", Slug: "p", AuthorID: alice.ID, IsPublished: true}
	require.NoError(t, st.Prompts().Create(ctx, p))
	hidden := &entity.Prompt{Title: "h", Slug: "h", AuthorID: alice.ID}
	require.NoError(t, st.Prompts().Create(ctx, hidden))
	require.NoError(t, st.Bookmarks().Add(ctx, bob.ID, p.ID))

	n, err := svc.RefreshAllStats(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ap, err := st.Profiles().GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ap.TotalPrompts, "only published prompts count")
	bp, err := st.Profiles().GetByUserID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bp.TotalBookmarks)

	st.Err = errors.New("db down")
	_, err = svc.RefreshAllStats(ctx, 4)
	assert.ErrorContains(t, err, "db down")
}
