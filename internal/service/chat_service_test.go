package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChatService_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
			assert.Equal(t, "hello there", req.Messages[0].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"hi, how can I help?"}}]}`))
	}))
	defer server.Close()

	svc := NewChatService(server.URL, "test-token", "test-model")

	reply, err := svc.Complete(context.Background(), "hello there")
	assert.NoError(t, err)
	assert.Equal(t, "hi, how can I help?", reply)
}

func TestChatService_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	svc := NewChatService(server.URL, "test-token", "test-model")

	reply, err := svc.Complete(context.Background(), "hello")
	assert.Error(t, err)
	assert.Empty(t, reply)
	assert.Contains(t, err.Error(), "429")
}

func TestChatService_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	svc := NewChatService(server.URL, "test-token", "test-model")

	_, err := svc.Complete(context.Background(), "hello")
	assert.Error(t, err)
}

func TestChatService_MissingToken(t *testing.T) {
	svc := NewChatService("http://localhost:0", "", "test-model")

	_, err := svc.Complete(context.Background(), "hello")
	assert.Error(t, err)
}

func TestChatService_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	svc := NewChatService(server.URL, "test-token", "test-model")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Complete(ctx, "hello")
	assert.Error(t, err)
}
