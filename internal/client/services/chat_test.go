package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/models"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openAIStub answers chat completions with fn.
func openAIStub(t *testing.T, fn func(w http.ResponseWriter, req openai.ChatCompletionRequest)) client.ChatCompleter {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		fn(w, req)
	}))
	t.Cleanup(srv.Close)
	return client.NewChatClient(srv.URL, 2*time.Second, nil)
}

func TestChat_EmptyPromptIsValidationError(t *testing.T) {
	svc := NewChatService(openAIStub(t, func(w http.ResponseWriter, _ openai.ChatCompletionRequest) {
		t.Fatal("no request expected")
	}), "tutor")

	_, err := svc.Ask(context.Background(), nil, "   ", models.LevelN5)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "prompt", ve.Field)
}

func TestChat_SendsSystemPromptHistoryAndPrompt(t *testing.T) {
	var got openai.ChatCompletionRequest
	svc := NewChatService(openAIStub(t, func(w http.ResponseWriter, req openai.ChatCompletionRequest) {
		got = req
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "はい、そうです。"},
			}},
		})
	}), "tutor")

	history := []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "これはペンですか"},
		{Role: models.ChatRoleAssistant, Content: "はい。"},
	}
	reply, err := svc.Ask(context.Background(), history, "本当に？", models.LevelN4)
	require.NoError(t, err)
	assert.Equal(t, models.ChatMessage{Role: models.ChatRoleAssistant, Content: "はい、そうです。"}, reply)

	assert.Equal(t, "tutor", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "N4")
	assert.Equal(t, openai.ChatMessageRoleAssistant, got.Messages[2].Role)
	assert.Equal(t, "本当に？", got.Messages[3].Content)
}

func TestChat_EmptyChoices(t *testing.T) {
	svc := NewChatService(openAIStub(t, func(w http.ResponseWriter, _ openai.ChatCompletionRequest) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}), "tutor")

	_, err := svc.Ask(context.Background(), nil, "hi", models.LevelN5)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestChat_APIErrorIsDeclined(t *testing.T) {
	svc := NewChatService(openAIStub(t, func(w http.ResponseWriter, _ openai.ChatCompletionRequest) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}), "tutor")

	_, err := svc.Ask(context.Background(), nil, "hi", models.LevelN5)
	var se *ServerDeclinedError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Equal(t, "slow down", UserMessage(err))
}

func TestChat_BareStatusIsTransport(t *testing.T) {
	svc := NewChatService(openAIStub(t, func(w http.ResponseWriter, _ openai.ChatCompletionRequest) {
		w.WriteHeader(http.StatusBadGateway)
	}), "tutor")

	_, err := svc.Ask(context.Background(), nil, "hi", models.LevelN5)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadGateway, te.StatusCode)
}

func TestChat_UnreachableIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc := NewChatService(client.NewChatClient(url, time.Second, nil), "tutor")
	_, err := svc.Ask(context.Background(), nil, "hi", models.LevelN5)
	assert.Equal(t, MsgConnectivity, UserMessage(err))
}

func TestChat_AgainstGateway(t *testing.T) {
	var token string
	c, url := newGateway(t, &token)

	reg, err := NewAuthService(c).Register(context.Background(), "Hana", "hana@example.com", "hash")
	require.NoError(t, err)
	token = reg.Token

	svc := NewChatService(client.NewChatClient(url, 5*time.Second, func() string { return token }), "kotoba-tutor")
	reply, err := svc.Ask(context.Background(), nil, "こんにちは", models.LevelN5)
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "こんにちは")
}
