package refine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cristianadrielbraun/qrcard/internal/apperr"
	"github.com/cristianadrielbraun/qrcard/internal/config"
)

const completion = "```json\n{\"refinedName\":\"Asha Verma\",\"refinedNameHindi\":\"आशा वर्मा\",\"refinedAddress\":\"12 MG Road, Bengaluru\",\"refinedAddressHindi\":\"12 एमजी रोड, बेंगलुरु\"}\n```"

func newTestClient(url string, retries int, timeout time.Duration) *Client {
	return NewClient(config.RefineConfig{
		BaseURL:     url,
		APIKey:      "secret",
		Timeout:     timeout,
		MaxRetries:  retries,
		MaxTokens:   256,
		Temperature: 0.2,
	}, zap.NewNop())
}

func TestRefineSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/generate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Prompt, "English Name: asha varma")
		assert.Equal(t, 256, req.MaxTokens)

		_ = json.NewEncoder(w).Encode(generateResponse{Text: completion})
	}))
	defer server.Close()

	out, err := newTestClient(server.URL, 0, 5*time.Second).Refine(context.Background(), Input{Name: "asha varma"})
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", out.RefinedName)
	assert.Equal(t, "आशा वर्मा", out.RefinedNameHindi)
	assert.Equal(t, "12 MG Road, Bengaluru", out.RefinedAddress)
}

func TestRefineRetriesThenSucceeds(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(generateResponse{Text: completion})
	}))
	defer server.Close()

	out, err := newTestClient(server.URL, 2, 5*time.Second).Refine(context.Background(), Input{})
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", out.RefinedName)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRefineFailsAfterRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 1, 5*time.Second).Refine(context.Background(), Input{})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeRefineFailed, apperr.CodeOf(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRefineTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 3, 50*time.Millisecond).Refine(context.Background(), Input{})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeRefineTimeout, apperr.CodeOf(err))
}

func TestRefineNotConfigured(t *testing.T) {
	_, err := newTestClient("", 0, time.Second).Refine(context.Background(), Input{})
	assert.Equal(t, apperr.CodeRefineNotConfigured, apperr.CodeOf(err))
}

func TestRefineInvalidCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse{Text: "sorry, I cannot help"})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 0, time.Second).Refine(context.Background(), Input{})
	assert.Equal(t, apperr.CodeRefineFailed, apperr.CodeOf(err))
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"fenced", completion, false},
		{"bare", `{"refinedName":"A"}`, false},
		{"prose around", `Here you go: {"refinedAddress":"B"} done`, false},
		{"no object", "nothing", true},
		{"empty object", "{}", true},
		{"broken", `{"refinedName":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOutput(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildPromptIncludesFields(t *testing.T) {
	p := buildPrompt(Input{Name: "n", NameHindi: "nh", Address: "a", AddressHindi: "ah"})
	assert.Contains(t, p, "English Name: n\n")
	assert.Contains(t, p, "Hindi Name: nh\n")
	assert.Contains(t, p, "English Address: a\n")
	assert.Contains(t, p, "Hindi Address: ah\n")
	assert.Contains(t, p, `"refinedAddressHindi"`)
}
