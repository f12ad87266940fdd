package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.Model = "llava"
	cfg.Endpoint = endpoint
	return cfg
}

func TestOllamaConversation_Send_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llava", req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "be helpful", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "what is this leaf?", req.Messages[1].Content)
		require.Len(t, req.Messages[1].Images, 1)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), req.Messages[1].Images[0])

		json.NewEncoder(w).Encode(ollamaResponse{
			Model:   "llava",
			Message: ollamaMessage{Role: "assistant", Content: "Leaf rust."},
			Done:    true,
		})
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	conv, err := client.StartChat(context.Background(), "be helpful")
	require.NoError(t, err)

	resp, err := conv.Send(context.Background(), []Part{
		TextPart("what is this leaf?"),
		ImagePart([]byte{1, 2, 3}, "image/png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Leaf rust.", resp.Text)
	assert.Equal(t, "llava", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaConversation_Send_KeepsHistoryAcrossTurns(t *testing.T) {
	var seen []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seen = append(seen, len(req.Messages))
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llava", Message: ollamaMessage{Role: "assistant", Content: "ok"}})
	}))
	defer srv.Close()

	conv, err := NewOllamaClient(testConfig(srv.URL), NoopObserver{}).StartChat(context.Background(), "sys")
	require.NoError(t, err)

	_, err = conv.Send(context.Background(), []Part{TextPart("one")})
	require.NoError(t, err)
	_, err = conv.Send(context.Background(), []Part{TextPart("two")})
	require.NoError(t, err)

	// system+user, then system+user+assistant+user
	assert.Equal(t, []int{2, 4}, seen)
}

func TestOllamaConversation_Send_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(10 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	conv, err := NewOllamaClient(testConfig(srv.URL), NoopObserver{}).StartChat(context.Background(), "sys")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = conv.Send(ctx, []Part{TextPart("test")})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaConversation_Send_Unavailable(t *testing.T) {
	conv, err := NewOllamaClient(testConfig("http://127.0.0.1:1"), NoopObserver{}).StartChat(context.Background(), "sys")
	require.NoError(t, err)

	_, err = conv.Send(context.Background(), []Part{TextPart("test")})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOllamaConversation_Send_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad request"))
	}))
	defer srv.Close()

	conv, err := NewOllamaClient(testConfig(srv.URL), NoopObserver{}).StartChat(context.Background(), "sys")
	require.NoError(t, err)

	_, err = conv.Send(context.Background(), []Part{TextPart("test")})

	assert.ErrorIs(t, err, ErrBadStatus)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestOllamaConversation_Send_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llava", Message: ollamaMessage{Role: "assistant", Content: "  "}})
	}))
	defer srv.Close()

	conv, err := NewOllamaClient(testConfig(srv.URL), NoopObserver{}).StartChat(context.Background(), "sys")
	require.NoError(t, err)

	_, err = conv.Send(context.Background(), []Part{TextPart("test")})

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOllamaClient_Available_True(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{})
	assert.True(t, client.Available(context.Background()))
}

func TestOllamaClient_Available_False(t *testing.T) {
	client := NewOllamaClient(testConfig("http://127.0.0.1:1"), NoopObserver{})
	assert.False(t, client.Available(context.Background()))
}

func TestOllamaClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llava", Message: ollamaMessage{Role: "assistant", Content: "ok"}})
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	conv, err := NewOllamaClient(testConfig(srv.URL), obs).StartChat(context.Background(), "sys")
	require.NoError(t, err)
	_, err = conv.Send(context.Background(), []Part{TextPart("hi"), ImagePart([]byte{9}, "image/jpeg")})

	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, captured.Provider)
	assert.Equal(t, "llava", captured.Model)
	assert.Equal(t, 2, captured.Parts)
	assert.True(t, captured.WithImage)
	assert.True(t, captured.Success)
}

func TestOllamaClient_ObserverUnavailableErrorCode(t *testing.T) {
	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	conv, err := NewOllamaClient(testConfig("http://127.0.0.1:1"), obs).StartChat(context.Background(), "sys")
	require.NoError(t, err)
	_, err = conv.Send(context.Background(), []Part{TextPart("hi")})

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, captured.Success)
	assert.Equal(t, "UNAVAILABLE", captured.ErrorCode)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }
