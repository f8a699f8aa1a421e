package pathutil_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-library/internal/domain/entity"
	"prompt-library/internal/handler/http/pathutil"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		path    string
		want    int64
		wantErr bool
	}{
		{"/comments/42", 42, false},
		{"/comments/0", 0, true},
		{"/comments/-3", 0, true},
		{"/comments/abc", 0, true},
		{"/comments/99999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var (
				got int64
				err error
			)
			mux := http.NewServeMux()
			mux.HandleFunc("GET /comments/{id}", func(_ http.ResponseWriter, r *http.Request) {
				got, err = pathutil.PathID(r, "id")
			})
			mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tt.path, nil))

			if tt.wantErr {
				var ve *entity.ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "id", ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
