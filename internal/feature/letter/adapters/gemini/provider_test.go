package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// newTestProvider points a provider at srv through the SDK's base URL override.
func newTestProvider(t *testing.T, srv *httptest.Server) *GeminiProvider {
	t.Helper()
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  srv.Client(),
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	})
	require.NoError(t, err)
	return &GeminiProvider{client: client, model: DefaultModel}
}

func TestGeminiProvider_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/"+DefaultModel+":generateContent"), r.URL.Path)

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var body map[string]any
		assert.NoError(t, json.Unmarshal(raw, &body))
		assert.Contains(t, string(raw), "you write letters")
		assert.Contains(t, string(raw), "write one")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Dear Bureau"}]}}]}`))
	}))
	defer srv.Close()

	got, err := newTestProvider(t, srv).Complete(context.Background(), "you write letters", "write one")

	require.NoError(t, err)
	assert.Equal(t, "Dear Bureau", got)
}

func TestGeminiProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(t, srv).Complete(context.Background(), "s", "p")
	assert.Error(t, err)
}
