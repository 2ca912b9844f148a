package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	. "wellness360/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChatService(apiKey, baseURL string) *ChatService {
	return &ChatService{
		apiKey:  apiKey,
		model:   "test-model",
		baseURL: baseURL,
		client:  http.DefaultClient,
		log:     logger.New("ChatService"),
	}
}

func TestChatService_Enabled(t *testing.T) {
	assert.False(t, newTestChatService("", "").Enabled())
	assert.True(t, newTestChatService("key", "").Enabled())
}

func TestChatService_Complete_Disabled(t *testing.T) {
	service := newTestChatService("", "")

	_, err := service.Complete(context.Background(), MoodHappy, nil, "hello")

	assert.ErrorIs(t, err, ErrChatUnavailable)
}

func TestChatService_Complete(t *testing.T) {
	var captured groqRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "One step at a time."}},
			},
		})
	}))
	defer server.Close()

	service := newTestChatService("test-key", server.URL)

	history := []ChatMessage{
		{Role: ChatRoleUser, Content: "I skipped my workout"},
		{Role: ChatRoleAssistant, Content: "That happens, tomorrow is a new day"},
	}

	reply, err := service.Complete(context.Background(), MoodSad, history, "feeling low today")
	require.NoError(t, err)
	assert.Equal(t, "One step at a time.", reply)

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "test-model", captured.Model)

	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.True(t, strings.Contains(captured.Messages[0].Content, "feeling sad"),
		"system prompt should reflect the user's mood")
	assert.Equal(t, "feeling low today", captured.Messages[3].Content)
}

func TestChatService_Complete_UnknownMoodFallsBackToBasePrompt(t *testing.T) {
	var captured groqRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer server.Close()

	service := newTestChatService("test-key", server.URL)

	_, err := service.Complete(context.Background(), "confused", nil, "hi")
	require.NoError(t, err)

	require.NotEmpty(t, captured.Messages)
	assert.Equal(t, basePrompt, captured.Messages[0].Content)
}

func TestChatService_Complete_TrimsHistoryWindow(t *testing.T) {
	var captured groqRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer server.Close()

	service := newTestChatService("test-key", server.URL)

	history := make([]ChatMessage, 0, 15)
	for i := range 15 {
		history = append(history, ChatMessage{
			Role:    ChatRoleUser,
			Content: fmt.Sprintf("message %d", i),
		})
	}

	_, err := service.Complete(context.Background(), MoodNeutral, history, "latest")
	require.NoError(t, err)

	// system + 10 most recent history entries + the new user message
	require.Len(t, captured.Messages, 12)
	assert.Equal(t, "message 5", captured.Messages[1].Content)
	assert.Equal(t, "latest", captured.Messages[11].Content)
}

func TestChatService_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limit exceeded"},
		})
	}))
	defer server.Close()

	service := newTestChatService("test-key", server.URL)

	_, err := service.Complete(context.Background(), MoodCalm, nil, "hi")

	assert.Error(t, err)
}
