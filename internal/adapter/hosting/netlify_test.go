package hosting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genfly-deploy/internal/pkg/config"
)

func TestNetlifyClient_CreateSite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/sites", r.URL.Path)
		assert.Equal(t, "Bearer nf-token", r.Header.Get("Authorization"))

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "my-site", body["name"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Site{
			ID:   "site-123",
			Name: "my-site",
			URL:  "https://my-site.netlify.app",
		})
	}))
	defer server.Close()

	client := NewNetlifyClient(&config.NetlifyConfig{
		Token:   "nf-token",
		BaseURL: server.URL,
	})

	site, err := client.CreateSite(context.Background(), "my-site")
	require.NoError(t, err)
	assert.Equal(t, "site-123", site.ID)
	assert.Equal(t, "https://my-site.netlify.app", site.URL)
}

func TestNetlifyClient_CreateSite_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":{"subdomain":["must be unique"]}}`))
	}))
	defer server.Close()

	client := NewNetlifyClient(&config.NetlifyConfig{
		Token:   "nf-token",
		BaseURL: server.URL,
	})

	_, err := client.CreateSite(context.Background(), "taken-name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestNetlifyClient_GetSiteByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		_ = json.NewEncoder(w).Encode([]Site{
			{ID: "site-1", Name: "other-site"},
			{ID: "site-2", Name: "my-site", URL: "https://my-site.netlify.app"},
		})
	}))
	defer server.Close()

	client := NewNetlifyClient(&config.NetlifyConfig{
		Token:   "nf-token",
		BaseURL: server.URL,
	})

	site, err := client.GetSiteByName(context.Background(), "my-site")
	require.NoError(t, err)
	require.NotNil(t, site)
	assert.Equal(t, "site-2", site.ID)

	// 不存在返回nil
	site, err = client.GetSiteByName(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, site)
}
