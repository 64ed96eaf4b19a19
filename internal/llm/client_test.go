package llm

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

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	cfg.MaxRetries = 0
	return cfg
}

func chatHandler(t *testing.T, reply string, capture *chatWireRequest) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		json.NewEncoder(w).Encode(chatWireResponse{
			Model:   "llama3.2",
			Message: Message{Role: "assistant", Content: reply},
		})
	}
}

func TestChat_Success(t *testing.T) {
	var captured chatWireRequest
	srv := httptest.NewServer(chatHandler(t, "refine", &captured))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Chat(context.Background(), ChatRequest{
		Task:         TaskClassify,
		SystemPrompt: "You are an intent classifier.",
		Messages:     []Message{{Role: "user", Content: "show younger players"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "refine", resp.Text)
	require.Len(t, captured.Messages, 2, "system prompt prepended to history")
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.False(t, captured.Stream)
}

func TestChat_TaskParametersApplied(t *testing.T) {
	var captured chatWireRequest
	srv := httptest.NewServer(chatHandler(t, "ok", &captured))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks[TaskSummarize] = TaskConfig{Temperature: 0.7, MaxTokens: 99, TimeoutMs: 5000}

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Chat(context.Background(), ChatRequest{Task: TaskSummarize})
	require.NoError(t, err)
	assert.Equal(t, 0.7, captured.Options.Temperature)
	assert.Equal(t, 99, captured.Options.NumPredict)
}

func TestChat_ServerErrorExhaustsRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 2
	client := NewOllamaClient(cfg, NoopObserver{})

	_, err := client.Chat(context.Background(), ChatRequest{Task: TaskSelect})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 3, calls)
}

func TestChat_TimeoutSurfacesAsErrTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks[TaskClassify] = TaskConfig{TimeoutMs: 30}
	client := NewOllamaClient(cfg, NoopObserver{})

	_, err := client.Chat(context.Background(), ChatRequest{Task: TaskClassify})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestChat_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before use

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Chat(context.Background(), ChatRequest{Task: TaskClassify})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestChat_ObserverReceivesEvents(t *testing.T) {
	srv := httptest.NewServer(chatHandler(t, "ok", nil))
	defer srv.Close()

	var events []CallEvent
	obs := observerFunc(func(e CallEvent) { events = append(events, e) })

	client := NewOllamaClient(testConfig(srv.URL), obs)
	_, err := client.Chat(context.Background(), ChatRequest{Task: TaskAnswer})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.Equal(t, TaskAnswer, events[0].Task)
}

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	assert.True(t, client.Available(context.Background()))

	srv.Close()
	assert.False(t, client.Available(context.Background()))
}

type observerFunc func(CallEvent)

func (f observerFunc) OnCallComplete(e CallEvent) { f(e) }
