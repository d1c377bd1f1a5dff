package memoryinfra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHindsightRetain(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody retainRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewHindsightClient(srv.URL+"/", "secret", time.Second)
	if err := c.Retain(context.Background(), "company-acme-kb", "hello", "chat_turn"); err != nil {
		t.Fatalf("retain: %v", err)
	}

	if gotPath != "/v1/default/banks/company-acme-kb/memories" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if len(gotBody.Items) != 1 || gotBody.Items[0].Content != "hello" || gotBody.Items[0].Context != "chat_turn" {
		t.Errorf("unexpected body %+v", gotBody)
	}
}

func TestHindsightRecall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/default/banks/b1/memories/recall" {
			http.NotFound(w, r)
			return
		}
		var req queryRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Query != "pricing" {
			t.Errorf("unexpected query %q", req.Query)
		}
		w.Write([]byte(`{"results":[{"text":"a"},{"text":"b"},{"text":"c"}]}`))
	}))
	defer srv.Close()

	c := NewHindsightClient(srv.URL, "", time.Second)

	texts, err := c.Recall(context.Background(), "b1", "pricing", 0)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if strings.Join(texts, ",") != "a,b,c" {
		t.Errorf("got %v", texts)
	}

	texts, err = c.Recall(context.Background(), "b1", "pricing", 2)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if len(texts) != 2 {
		t.Errorf("expected truncation to 2, got %v", texts)
	}
}

func TestHindsightReflectAndErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/default/banks/ok/reflect":
			w.Write([]byte(`{"text":"consolidated"}`))
		case "/health":
			w.Write([]byte(`{"status":"healthy"}`))
		default:
			http.Error(w, "bank exploded", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewHindsightClient(srv.URL, "", time.Second)

	text, err := c.Reflect(context.Background(), "ok", "topic")
	if err != nil || text != "consolidated" {
		t.Errorf("got %q, %v", text, err)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}

	_, err = c.Reflect(context.Background(), "broken", "topic")
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestHindsightUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewHindsightClient(url, "", time.Second)
	if _, err := c.Recall(context.Background(), "b", "q", 0); err == nil {
		t.Error("expected connection error")
	}
}
