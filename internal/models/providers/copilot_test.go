package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOptions = Options{Model: "gpt-4o-mini", Temperature: 0.4, MaxTokens: 300}

func TestCopilotProvider_RequestContract(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Try the oat latte."}}]}`))
	}))
	defer server.Close()

	p := NewCopilotProvider(server.URL+"/v1/chat", "secret", testOptions)
	reply, err := p.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "context"},
		{Role: RoleUser, Content: "What should we feature?"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Try the oat latte.", reply)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 0.4, got.Temperature)
	assert.Equal(t, 300, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, RoleSystem, got.Messages[0].Role)
	assert.Equal(t, "What should we feature?", got.Messages[1].Content)
}

func TestCopilotProvider_Failures(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
		kind   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad token"}`, ErrStatus},
		{"server error", http.StatusInternalServerError, ``, ErrStatus},
		{"not json", http.StatusOK, `<html>oops</html>`, ErrSchema},
		{"no choices", http.StatusOK, `{"choices":[]}`, ErrSchema},
		{"no message", http.StatusOK, `{"choices":[{}]}`, ErrSchema},
		{"no content", http.StatusOK, `{"choices":[{"message":{"role":"assistant"}}]}`, ErrSchema},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewCopilotProvider(server.URL, "secret", testOptions).
				Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
			assert.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestCopilotProvider_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewCopilotProvider(url, "secret", testOptions).
		Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "network", ErrorKind(err))
}

func TestCopilotProvider_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewCopilotProvider(server.URL, "secret", testOptions).
		Complete(ctx, []Message{{Role: RoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "timeout", ErrorKind(err))
}

func TestCopilotProvider_ClientTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	p := NewCopilotProvider(server.URL, "secret", testOptions).
		WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond})

	_, err := p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "timeout", ErrorKind(err))
}
