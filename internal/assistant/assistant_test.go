package assistant

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"store-insights-go/internal/config"
	"store-insights-go/internal/logger"
	"store-insights-go/internal/types"
)

func llmConfig(url string) config.LLMConfig {
	return config.LLMConfig{
		GatewayURL: url,
		APIKey:     "test-key",
		Model:      "test-model",
		Timeout:    2 * time.Second,
		MaxRetry:   2 * time.Second,
	}
}

func snapshotWithProduct() types.Snapshot {
	return types.Snapshot{
		Catalog: []types.CatalogItem{{ID: "A", Title: "Widget", VariationIDs: []string{"vA"}}},
	}
}

func TestChatMockShortCircuits(t *testing.T) {
	client := NewClient(config.LLMConfig{Mock: true}, logger.New("test", "error"))

	answer, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, types.Snapshot{})
	if err != nil {
		t.Fatalf("mock chat: %v", err)
	}
	if answer == "" {
		t.Fatal("mock chat should answer")
	}
}

func TestChatUnconfiguredGateway(t *testing.T) {
	client := NewClient(config.LLMConfig{}, logger.New("test", "error"))

	if _, err := client.Chat(context.Background(), nil, types.Snapshot{}); err == nil {
		t.Fatal("expected an error without gateway settings")
	}
}

func TestChatSendsGroundedPrompt(t *testing.T) {
	var captured struct {
		Model    string    `json:"model"`
		Messages []Message `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Widget sells well."}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(llmConfig(srv.URL), logger.New("test", "error"))
	answer, err := client.Chat(context.Background(),
		[]Message{{Role: "user", Content: "How is my store doing?"}},
		snapshotWithProduct())
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if answer != "Widget sells well." {
		t.Fatalf("answer = %q", answer)
	}

	if captured.Model != "test-model" {
		t.Fatalf("model = %q", captured.Model)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("prompt should lead with a system message, got %+v", captured.Messages)
	}
	if !strings.Contains(captured.Messages[0].Content, "Widget") {
		t.Fatal("system message should embed the store data")
	}
	if captured.Messages[1].Content != "How is my store doing?" {
		t.Fatalf("user turn = %q", captured.Messages[1].Content)
	}
}

func TestChatRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "recovered"}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(llmConfig(srv.URL), logger.New("test", "error"))
	answer, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, types.Snapshot{})
	if err != nil {
		t.Fatalf("chat should recover after a 5xx: %v", err)
	}
	if answer != "recovered" || calls < 2 {
		t.Fatalf("answer = %q after %d calls", answer, calls)
	}
}

func TestChatDoesNotRetryRejections(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad model", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(llmConfig(srv.URL), logger.New("test", "error"))
	if _, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, types.Snapshot{}); err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", calls)
	}
}
