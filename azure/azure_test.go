package azure

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakharsmirnoff/lloom/provider"
)

func TestBuilder_Endpoint(t *testing.T) {
	b := Builder{
		BaseURL:    "https://example.openai.azure.com/",
		Deployment: "gpt35",
		APIVersion: "2023-05-15",
	}
	assert.Equal(t,
		"https://example.openai.azure.com/openai/deployments/gpt35/chat/completions?api-version=2023-05-15",
		b.Endpoint())
}

func TestComplete_AzureShape(t *testing.T) {
	var gotBody map[string]any
	var gotKey, gotAuth, gotPath, gotVersion string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.URL.Query().Get("api-version")
		gotKey = r.Header.Get("api-key")
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}],"usage":{"prompt_tokens":5,"completion_tokens":1,"total_tokens":6}}`)
	}))
	defer srv.Close()

	client, err := New(provider.Config{
		Provider:   "azure",
		BaseURL:    srv.URL + "/",
		APIVersion: "2023-07-01-preview",
		Deployment: "chat",
	})
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), provider.Request{
		APIKey:    "azure-key",
		Model:     "gpt-3.5-turbo-0301",
		Messages:  []provider.Message{{Role: provider.RoleUser, Content: "ping"}},
		MaxTokens: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "/openai/deployments/chat/chat/completions", gotPath)
	assert.Equal(t, "2023-07-01-preview", gotVersion)
	assert.Equal(t, "azure-key", gotKey)
	assert.Empty(t, gotAuth)
	assert.NotContains(t, gotBody, "model")
	assert.Equal(t, float64(10), gotBody["max_tokens"])
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, 6, resp.Usage.TotalTokens)
	assert.Equal(t, "azure", client.Provider())
}

func TestNew_Validation(t *testing.T) {
	_, err := New(provider.Config{Provider: "azure", BaseURL: "https://example.openai.azure.com/"})
	assert.ErrorIs(t, err, ErrNoDeployment)

	_, err = New(provider.Config{Provider: "azure", Deployment: "chat"})
	assert.Error(t, err)
}

func TestNew_DefaultAPIVersion(t *testing.T) {
	client, err := New(provider.Config{
		Provider:   "azure",
		BaseURL:    "https://example.openai.azure.com",
		Deployment: "chat",
	})
	require.NoError(t, err)
	assert.Contains(t, client.Endpoint(), "api-version="+provider.DefaultAPIVersion)
}

func TestRegistered(t *testing.T) {
	assert.True(t, provider.IsRegistered("azure"))
}
