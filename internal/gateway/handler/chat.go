package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// ChatHandler is an OpenAI-compatible chat completion endpoint that answers
// with canned tutor replies.
type ChatHandler struct {
	now func() time.Time
}

func NewChatHandler() *ChatHandler {
	return &ChatHandler{now: time.Now}
}

// AIFail writes an error in the OpenAI error format.
func AIFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, openai.ErrorResponse{Error: &openai.APIError{
		Type:    "invalid_request_error",
		Message: message,
	}})
}

func lastUserMessage(msgs []openai.ChatCompletionMessage) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == openai.ChatMessageRoleUser {
			return strings.TrimSpace(msgs[i].Content)
		}
	}
	return ""
}

// Reply picks the canned answer for prompt.
func Reply(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(prompt, "こんにちは"), strings.Contains(lower, "hello"):
		return "こんにちは！今日は何を勉強しましょうか。\n(Hello! What shall we study today?)"
	case strings.Contains(prompt, "ありがとう"), strings.Contains(lower, "thank"):
		return "どういたしまして。また練習しましょうね。\n(You're welcome. Let's practice again!)"
	case strings.HasSuffix(prompt, "?"), strings.HasSuffix(prompt, "？"), strings.HasSuffix(prompt, "か。"):
		return fmt.Sprintf("いい質問ですね。「%s」について一緒に考えましょう。\n(Good question. Let's think about it together.)", prompt)
	default:
		return fmt.Sprintf("「%s」ですね。もう一度、日本語で言ってみましょう。\n(Let's try saying that again in Japanese.)", prompt)
	}
}

func (h *ChatHandler) Completions(c *gin.Context) {
	var req openai.ChatCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AIFail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	prompt := lastUserMessage(req.Messages)
	if prompt == "" {
		AIFail(c, http.StatusBadRequest, "at least one user message is required")
		return
	}

	c.JSON(http.StatusOK, openai.ChatCompletionResponse{
		ID:      "chatcmpl-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: h.now().Unix(),
		Model:   req.Model,
		Choices: []openai.ChatCompletionChoice{{
			Index:        0,
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: Reply(prompt)},
			FinishReason: openai.FinishReasonStop,
		}},
	})
}
