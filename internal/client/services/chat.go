package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/models"
	openai "github.com/sashabaranov/go-openai"
)

const tutorPrompt = `You are a patient Japanese language tutor. The learner is studying for JLPT %s.
Answer with Japanese that a %s learner can read, add furigana in parentheses for kanji above that level,
and follow with a short English explanation. Correct mistakes in the learner's Japanese gently.`

// ChatService talks to the AI tutor.
type ChatService interface {
	// Ask sends history plus prompt and returns the tutor's reply.
	Ask(ctx context.Context, history []models.ChatMessage, prompt string, level models.Level) (models.ChatMessage, error)
}

type chatService struct {
	client client.ChatCompleter
	model  string
}

// NewChatService uses model for every completion request.
func NewChatService(c client.ChatCompleter, model string) ChatService {
	return &chatService{client: c, model: model}
}

// SystemPrompt returns the tutor instructions for level.
func SystemPrompt(level models.Level) string {
	return fmt.Sprintf(tutorPrompt, level, level)
}

func (s *chatService) Ask(ctx context.Context, history []models.ChatMessage, prompt string, level models.Level) (models.ChatMessage, error) {
	if strings.TrimSpace(prompt) == "" {
		return models.ChatMessage{}, &ValidationError{Field: "prompt", Message: "Please type a message."}
	}
	if err := checkLevel(level); err != nil {
		return models.ChatMessage{}, err
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt(level)})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == models.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: msgs,
	})
	if err != nil {
		return models.ChatMessage{}, mapChatError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return models.ChatMessage{}, ErrEmptyResponse
	}
	return models.ChatMessage{Role: models.ChatRoleAssistant, Content: resp.Choices[0].Message.Content}, nil
}

func mapChatError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return &ServerDeclinedError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &TransportError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &TransportError{Err: err}
}
