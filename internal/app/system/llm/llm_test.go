package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// fakeProvider speaks the chat-completions wire format.
func fakeProvider(t *testing.T, reply string, status int, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": reply},
			}},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_Disabled(t *testing.T) {
	c := New(Config{}, zap.NewNop())
	if c.Enabled() {
		t.Error("client without key should be disabled")
	}
	if _, err := c.Complete(context.Background(), "sys", nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Complete() error = %v, want ErrNotConfigured", err)
	}
	if c.Model() != DefaultModel {
		t.Errorf("Model() = %q, want %q", c.Model(), DefaultModel)
	}
}

func TestComplete(t *testing.T) {
	var got capturedRequest
	srv := fakeProvider(t, "  Goa is lovely in December.  ", http.StatusOK, &got)

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1", Model: "test-model"}, zap.NewNop())
	reply, err := c.Complete(context.Background(), "You are a travel assistant.", []Message{
		{Role: RoleUser, Content: "When should I visit Goa?"},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "Goa is lovely in December." {
		t.Errorf("reply = %q", reply)
	}
	if got.Model != "test-model" {
		t.Errorf("model = %q", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestComplete_HistoryCapped(t *testing.T) {
	var got capturedRequest
	srv := fakeProvider(t, "ok", http.StatusOK, &got)

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1", MaxHistory: 3}, zap.NewNop())
	history := []Message{
		{RoleUser, "1"}, {RoleAssistant, "2"}, {RoleUser, "3"}, {RoleAssistant, "4"}, {RoleUser, "5"},
	}
	if _, err := c.Complete(context.Background(), "sys", history); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(got.Messages) != 4 {
		t.Fatalf("sent %d messages, want system + 3", len(got.Messages))
	}
	if got.Messages[1].Content != "3" || got.Messages[3].Content != "5" {
		t.Errorf("should keep the most recent turns, got %+v", got.Messages)
	}
}

func TestComplete_ProviderError(t *testing.T) {
	srv := fakeProvider(t, "", http.StatusInternalServerError, nil)
	c := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"}, zap.NewNop())

	if _, err := c.Complete(context.Background(), "sys", []Message{{RoleUser, "hi"}}); err == nil {
		t.Error("Complete() should fail on provider error")
	}
}

func TestComplete_EmptyReply(t *testing.T) {
	srv := fakeProvider(t, "   ", http.StatusOK, nil)
	c := New(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"}, zap.NewNop())

	_, err := c.Complete(context.Background(), "sys", []Message{{RoleUser, "hi"}})
	if !errors.Is(err, ErrEmptyReply) {
		t.Errorf("Complete() error = %v, want ErrEmptyReply", err)
	}
}

func TestRecent(t *testing.T) {
	h := []Message{{RoleUser, "a"}, {RoleUser, "b"}, {RoleUser, "c"}}
	tests := []struct {
		n    int
		want int
	}{
		{0, 3}, {2, 2}, {3, 3}, {10, 3},
	}
	for _, tt := range tests {
		if got := Recent(h, tt.n); len(got) != tt.want {
			t.Errorf("Recent(n=%d) len = %d, want %d", tt.n, len(got), tt.want)
		}
	}
	if Recent(h, 1)[0].Content != "c" {
		t.Error("Recent should keep the tail")
	}
}
