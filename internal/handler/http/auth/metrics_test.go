package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLogin(t *testing.T) {
	loginsTotal.Reset()

	recordLogin(RoleAdmin, "success", time.Now())
	recordLogin(RoleAdmin, "success", time.Now())
	recordLogin("unknown", "failure", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(loginsTotal.WithLabelValues(RoleAdmin, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(loginsTotal.WithLabelValues("unknown", "failure")))
	assert.Equal(t, 1, testutil.CollectAndCount(loginDuration))
}

func TestAuthz_CountsRejections(t *testing.T) {
	rejectedTotal.Reset()

	serve(t, http.MethodPost, "/prompts", "")
	serve(t, http.MethodPost, "/prompts", "Bearer not-a-token")
	serve(t, http.MethodPost, "/admin/categories/blog", bearer(t, member))

	assert.Equal(t, 2.0, testutil.ToFloat64(rejectedTotal.WithLabelValues("401", "anonymous")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rejectedTotal.WithLabelValues("403", RoleMember)))
}
