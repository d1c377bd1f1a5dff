package aiopenai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aidul23/agent-mem/pkg/ai/llm"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/chat/completions"):
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["model"] != DefaultChatModel {
				t.Errorf("unexpected model %v", body["model"])
			}
			w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
				"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"hello there"}}],
				"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`))
		case strings.HasSuffix(r.URL.Path, "/embeddings"):
			w.Write([]byte(`{"object":"list","model":"text-embedding-3-small",
				"data":[{"object":"embedding","index":0,"embedding":[0.5,0.25]}],
				"usage":{"prompt_tokens":1,"total_tokens":1}}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestChat(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL, "")
	resp, err := p.Chat(context.Background(), []llm.Message{
		llm.NewSystemMessage("be brief"),
		llm.NewUserMessage("hi"),
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Message.Content != "hello there" || resp.Usage.TotalTokens != 5 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestChatRejectsUnknownRole(t *testing.T) {
	p := NewOpenAIProvider("test-key", "http://127.0.0.1:0", "")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "tool", Content: "x"}})
	if err == nil {
		t.Error("expected unsupported role error")
	}
}

func TestEmbedQuery(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL, "")
	e, err := p.EmbedQuery(context.Background(), "solder")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(e.Vector) != 2 || e.Vector[0] != 0.5 {
		t.Errorf("unexpected vector %v", e.Vector)
	}
}
