package machines

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

func TestFlyClient_ListMachines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/myapp/machines", r.URL.Path)
		assert.Equal(t, "Bearer fly-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]Machine{
			{ID: "m1", Name: "myapp-1", State: "started", Region: "iad"},
			{ID: "m2", Name: "myapp-2", State: "stopped", Region: "iad"},
		})
	}))
	defer server.Close()

	client := NewFlyClient(&config.FlyConfig{
		Token:   "fly-token",
		BaseURL: server.URL,
	})

	machineList, err := client.ListMachines(context.Background(), "myapp")
	require.NoError(t, err)
	require.Len(t, machineList, 2)
	assert.Equal(t, "started", machineList[0].State)
}

func TestFlyClient_Exec(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/myapp/machines/m1/exec", r.URL.Path)

		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "git pull origin main", body["cmd"])
		assert.Equal(t, float64(60), body["timeout"])

		_ = json.NewEncoder(w).Encode(ExecResult{
			ExitCode: 0,
			Stdout:   "Already up to date.",
		})
	}))
	defer server.Close()

	client := NewFlyClient(&config.FlyConfig{
		Token:   "fly-token",
		BaseURL: server.URL,
	})

	result, err := client.Exec(context.Background(), "myapp", "m1", []string{"git", "pull", "origin", "main"}, 60)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "Already up to date.", result.Stdout)
}

func TestFlyClient_Exec_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"machine not found"}`))
	}))
	defer server.Close()

	client := NewFlyClient(&config.FlyConfig{
		Token:   "fly-token",
		BaseURL: server.URL,
	})

	_, err := client.Exec(context.Background(), "myapp", "missing", []string{"ls"}, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
