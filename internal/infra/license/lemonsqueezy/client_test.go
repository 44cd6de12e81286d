package lemonsqueezy

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/esg-responder/internal/domain/license"
)

func TestCallPostsForm(t *testing.T) {
	type seen struct {
		path, auth, accept string
		form               url.Values
	}
	got := make(chan seen, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(raw))
		got <- seen{r.URL.Path, r.Header.Get("Authorization"), r.Header.Get("Accept"), form}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"valid":false,"error":"license_key not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "sk_test", time.Second)
	resp, err := c.Call(context.Background(), license.ActionActivate, license.Request{
		LicenseKey: "KEY-1", InstanceName: "laptop",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"valid":false,"error":"license_key not found"}`, string(resp.Body))

	s := <-got
	assert.Equal(t, "/v1/licenses/activate", s.path)
	assert.Equal(t, "Bearer sk_test", s.auth)
	assert.Equal(t, "application/json", s.accept)
	assert.Equal(t, "KEY-1", s.form.Get("license_key"))
	assert.Equal(t, "laptop", s.form.Get("instance_name"))
	assert.False(t, s.form.Has("instance_id"))
}

func TestCallTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := NewClient(base, "", time.Second).Call(context.Background(), license.ActionValidate, license.Request{LicenseKey: "k"})
	assert.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", "", 0)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, 30*time.Second, c.HTTP.Timeout)
}
