package pagination_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/common/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPage: 1, DefaultLimit: 12, MaxLimit: 100}
}

/* ──────────────────────────────── calculator ──────────────────────────────── */

func TestCalculateOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, limit, want int
	}{
		{1, 12, 0},
		{2, 12, 12},
		{3, 9, 18},
		{0, 12, 0},
		{-4, 12, 0},
		{2, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pagination.CalculateOffset(tt.page, tt.limit), "page=%d limit=%d", tt.page, tt.limit)
	}
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 12, 1},
		{5, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{27, 9, 3},
		{28, 9, 4},
		{10, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pagination.CalculateTotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

/* ──────────────────────────────── config ──────────────────────────────── */

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	assert.Equal(t, testConfig(), pagination.DefaultConfig())
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("all set", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "2")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "30")
		t.Setenv("PAGINATION_MAX_LIMIT", "200")

		assert.Equal(t, pagination.Config{DefaultPage: 2, DefaultLimit: 30, MaxLimit: 200}, pagination.LoadFromEnv())
	})

	t.Run("unset falls back", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "")
		t.Setenv("PAGINATION_MAX_LIMIT", "")

		assert.Equal(t, pagination.DefaultConfig(), pagination.LoadFromEnv())
	})

	t.Run("invalid falls back", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "-1")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "abc")
		t.Setenv("PAGINATION_MAX_LIMIT", "0")

		assert.Equal(t, pagination.DefaultConfig(), pagination.LoadFromEnv())
	})

	t.Run("default above max is capped", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "50")
		t.Setenv("PAGINATION_MAX_LIMIT", "10")

		cfg := pagination.LoadFromEnv()
		assert.Equal(t, 10, cfg.MaxLimit)
		assert.Equal(t, 10, cfg.DefaultLimit)
	})
}

func TestConfig_WithDefaultLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	assert.Equal(t, pagination.PostsPageSize, cfg.WithDefaultLimit(pagination.PostsPageSize).DefaultLimit)
	assert.Equal(t, 100, cfg.WithDefaultLimit(500).DefaultLimit)
	assert.Equal(t, 12, cfg.WithDefaultLimit(0).DefaultLimit)
	assert.Equal(t, 12, cfg.DefaultLimit, "receiver is not modified")
}

/* ──────────────────────────────── params ──────────────────────────────── */

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   string
		want    pagination.Params
		wantErr string
	}{
		{name: "defaults", query: "", want: pagination.Params{Page: 1, Limit: 12}},
		{name: "both", query: "page=2&limit=30", want: pagination.Params{Page: 2, Limit: 30}},
		{name: "page only", query: "page=3", want: pagination.Params{Page: 3, Limit: 12}},
		{name: "max limit", query: "limit=100", want: pagination.Params{Page: 1, Limit: 100}},
		{name: "page zero", query: "page=0", wantErr: "page must be a positive integer"},
		{name: "page text", query: "page=abc", wantErr: "page must be a positive integer"},
		{name: "limit too large", query: "limit=101", wantErr: "limit must be between 1 and 100"},
		{name: "limit negative", query: "limit=-1", wantErr: "limit must be between 1 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/prompts?"+tt.query, nil)

			got, err := pagination.ParseQueryParams(req, testConfig())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, pagination.ErrInvalidParams))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	assert.NoError(t, pagination.Params{Page: 1, Limit: 12}.Validate(cfg))
	assert.NoError(t, pagination.Params{Page: 9, Limit: 100}.Validate(cfg))
	assert.ErrorIs(t, pagination.Params{Page: 0, Limit: 12}.Validate(cfg), pagination.ErrInvalidParams)
	assert.ErrorIs(t, pagination.Params{Page: 1, Limit: 0}.Validate(cfg), pagination.ErrInvalidParams)
	assert.ErrorIs(t, pagination.Params{Page: 1, Limit: 101}.Validate(cfg), pagination.ErrInvalidParams)
}

func TestParams_WithDefaults(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	tests := []struct {
		in, want pagination.Params
	}{
		{pagination.Params{Page: 2, Limit: 30}, pagination.Params{Page: 2, Limit: 30}},
		{pagination.Params{Page: 0, Limit: 30}, pagination.Params{Page: 1, Limit: 30}},
		{pagination.Params{Page: -5, Limit: 0}, pagination.Params{Page: 1, Limit: 12}},
		{pagination.Params{Page: 1, Limit: 1000}, pagination.Params{Page: 1, Limit: 100}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.WithDefaults(cfg))
	}
}

/* ──────────────────────────────── strategy ──────────────────────────────── */

func TestOffsetStrategy(t *testing.T) {
	t.Parallel()

	s := pagination.OffsetStrategy{}
	assert.Equal(t, pagination.QueryParams{Offset: 18, Limit: 9}, s.CalculateQuery(pagination.Params{Page: 3, Limit: 9}))

	got := s.BuildMetadata(pagination.Params{Page: 2, Limit: 12}, 30)
	want := pagination.Metadata{Total: 30, Page: 2, Limit: 12, TotalPages: 3, HasNext: true, HasPrev: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildMetadata mismatch (-want +got):\n%s", diff)
	}

	last := s.BuildMetadata(pagination.Params{Page: 3, Limit: 12}, 30)
	assert.False(t, last.HasNext)

	empty := s.BuildMetadata(pagination.Params{Page: 1, Limit: 12}, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	p := pagination.NewPage[string](nil, pagination.Params{Page: 1, Limit: 9}, 0)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)

	r := pagination.NewResponse([]int{1, 2}, p.Pagination)
	assert.Equal(t, []int{1, 2}, r.Data)
	assert.Equal(t, 9, r.Pagination.Limit)
}

func TestRecordRequest(t *testing.T) {
	assert.NotPanics(t, func() {
		pagination.RecordRequest("prompts", http.StatusOK, 1)
		pagination.RecordRequest("news", http.StatusBadRequest, 500)
		pagination.RecordError("posts", "validation")
	})
}
