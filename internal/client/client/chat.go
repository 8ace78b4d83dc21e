package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// ChatCompleter is the part of the OpenAI client the tutor uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// bearerDoer swaps the static OpenAI key for the current session token.
type bearerDoer struct {
	http  *http.Client
	token TokenSource
}

func (d bearerDoer) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok := d.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	} else {
		req.Header.Del("Authorization")
	}
	return d.http.Do(req)
}

// NewChatClient returns an OpenAI-compatible client that talks to the
// gateway's /api/v1/ai endpoints with the session bearer token.
func NewChatClient(baseURL string, timeout time.Duration, token TokenSource) *openai.Client {
	if token == nil {
		token = func() string { return "" }
	}

	cfg := openai.DefaultConfig("")
	cfg.BaseURL = strings.TrimRight(baseURL, "/") + apiPrefix + "/ai"
	cfg.HTTPClient = bearerDoer{http: &http.Client{Timeout: timeout}, token: token}

	return openai.NewClientWithConfig(cfg)
}
