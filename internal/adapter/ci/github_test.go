package ci

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

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := ParseCatalog([]byte(testCatalogYAML))
	require.NoError(t, err)
	return catalog
}

func TestGitHubClient_Dispatch(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewGitHubClient(&config.GitHubConfig{
		Token:        "gh-token",
		ActionsOwner: "wordixai",
		ActionsRepo:  "clone-action",
		BaseURL:      server.URL,
	}, testCatalog(t))

	err := client.Dispatch(context.Background(), "deploy-netlify", map[string]string{
		"repository_url":  "https://github.com/acme/app",
		"netlify_site_id": "site-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "/repos/wordixai/clone-action/actions/workflows/deploy-to-netlify.yml/dispatches", gotPath)
	assert.Equal(t, "Bearer gh-token", gotAuth)
	assert.Equal(t, "main", gotBody["ref"])

	inputs, ok := gotBody["inputs"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "site-1", inputs["netlify_site_id"])
}

func TestGitHubClient_Dispatch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Unexpected inputs provided"}`))
	}))
	defer server.Close()

	client := NewGitHubClient(&config.GitHubConfig{
		Token:        "gh-token",
		ActionsOwner: "wordixai",
		ActionsRepo:  "clone-action",
		BaseURL:      server.URL,
	}, testCatalog(t))

	err := client.Dispatch(context.Background(), "deploy-netlify", map[string]string{
		"repository_url":  "r",
		"netlify_site_id": "s",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestGitHubClient_Dispatch_UnknownWorkflow(t *testing.T) {
	client := NewGitHubClient(&config.GitHubConfig{Token: "t"}, testCatalog(t))

	err := client.Dispatch(context.Background(), "nonexistent", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestGitHubClient_Dispatch_MissingInputs(t *testing.T) {
	client := NewGitHubClient(&config.GitHubConfig{Token: "t"}, testCatalog(t))

	// 缺少必填输入时不发起请求
	err := client.Dispatch(context.Background(), "deploy-netlify", map[string]string{
		"repository_url": "r",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "netlify_site_id")
}
