package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeOpenAI serves /v1/chat/completions with the given status and assistant content.
func fakeOpenAI(t *testing.T, status int, content string, seen *map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header %q", got)
		}
		if seen != nil {
			if err := json.NewDecoder(r.Body).Decode(seen); err != nil {
				t.Errorf("Failed to decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			fmt.Fprint(w, `{"error": {"message": "upstream exploded", "type": "server_error"}}`)
			return
		}
		body, _ := json.Marshal(content)
		fmt.Fprintf(w, `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":%s},"finish_reason":"stop"}]}`, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIProviderComplete(t *testing.T) {
	var seen map[string]interface{}
	srv := fakeOpenAI(t, http.StatusOK, "  Boa janela para plantio.  ", &seen)
	p := NewOpenAIProvider("test-key", srv.URL+"/v1", "", 5*time.Second)

	got, err := p.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "persona"},
		{Role: RoleUser, Content: "quando plantar?"},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "Boa janela para plantio." {
		t.Errorf("Expected trimmed content, got %q", got)
	}

	if seen["model"] != DefaultModel {
		t.Errorf("Expected model %s, got %v", DefaultModel, seen["model"])
	}
	if seen["max_tokens"] != float64(maxCompletionTokens) {
		t.Errorf("Expected max_tokens %d, got %v", maxCompletionTokens, seen["max_tokens"])
	}
	messages, _ := seen["messages"].([]interface{})
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %v", seen["messages"])
	}
	first, _ := messages[0].(map[string]interface{})
	if first["role"] != RoleSystem || first["content"] != "persona" {
		t.Errorf("Unexpected first message %v", first)
	}
}

func TestOpenAIProviderEmptyCompletion(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusOK, "   ", nil)
	p := NewOpenAIProvider("test-key", srv.URL+"/v1", "gpt-4o-mini", 5*time.Second)

	_, err := p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "oi"}})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("Expected ErrEmptyCompletion, got %v", err)
	}
}

func TestGatewayFallsBackOnOpenAIError(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusInternalServerError, "", nil)
	p := NewOpenAIProvider("test-key", srv.URL+"/v1", "", 5*time.Second)
	g := NewGateway(NewRateLimitedProvider(p, 10, 1), 5*time.Second)

	if got := g.Reply(context.Background(), "qual a previsão de chuva?", nil, nil); got != cannedRules[0].reply {
		t.Errorf("Expected the weather canned reply, got %q", firstLine(got))
	}
}

func TestRateLimitedProviderCanceledWait(t *testing.T) {
	stub := &stubProvider{reply: "ok"}
	p := NewRateLimitedProvider(stub, 1, 1)
	if p.Name() != "stub [Rate Limited]" {
		t.Errorf("Unexpected name %q", p.Name())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Complete(ctx, nil); err == nil {
		t.Error("Expected an error for a canceled wait")
	}
	if stub.calls != 0 {
		t.Errorf("Expected the wrapped provider not to be called, got %d calls", stub.calls)
	}
}
