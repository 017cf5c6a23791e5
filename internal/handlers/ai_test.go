package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/akshay2172/Excel-Analytics-Platform/internal/ai"
)

func TestSummarizeProxiesUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"sales are trending up"}}]}`))
	}))
	defer upstream.Close()

	client := ai.NewClient("test-key", "openai/gpt-4o-mini", 5*time.Second).WithBaseURL(upstream.URL)
	app := newTestApp(t, client)
	token := app.register(t, "Alice", "alice@example.com", "secret1", "")

	w := app.doJSON(t, http.MethodPost, "/api/ai/summarize", gin.H{"text": "Jan 10, Feb 20"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "sales are trending up", decodeBody(t, w)["summary"])
}

func TestSummarizeUpstreamTimeout(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer upstream.Close()

	client := ai.NewClient("test-key", "openai/gpt-4o-mini", 50*time.Millisecond).WithBaseURL(upstream.URL)
	app := newTestApp(t, client)
	token := app.register(t, "Alice", "alice@example.com", "secret1", "")

	w := app.doJSON(t, http.MethodPost, "/api/ai/summarize", gin.H{"text": "anything"}, token)
	require.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestSummarizeUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	client := ai.NewClient("test-key", "openai/gpt-4o-mini", 5*time.Second).WithBaseURL(upstream.URL)
	app := newTestApp(t, client)
	token := app.register(t, "Alice", "alice@example.com", "secret1", "")

	w := app.doJSON(t, http.MethodPost, "/api/ai/summarize", gin.H{"text": "anything"}, token)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSummarizeRequiresText(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.register(t, "Alice", "alice@example.com", "secret1", "")

	w := app.doJSON(t, http.MethodPost, "/api/ai/summarize", gin.H{}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
