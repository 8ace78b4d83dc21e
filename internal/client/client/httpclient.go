package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/google/uuid"
)

const apiPrefix = "/api/v1"

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the gateway at baseURL. A zero timeout
// disables the per-request deadline; token may be nil.
func NewHTTPClient(baseURL string, timeout time.Duration, token TokenSource) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}
	if token == nil {
		token = func() string { return "" }
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
	}, nil
}

// BaseURL returns the gateway root without a trailing slash.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// do sends the request and decodes the envelope into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

func statusError(code int, raw []byte) error {
	var env struct {
		Message string `json:"message"`
	}
	se := &StatusError{StatusCode: code}
	if json.Unmarshal(raw, &env) == nil {
		se.Message = env.Message
	}
	return se
}

func call[T any](ctx context.Context, c *HTTPClient, method, path string, body any) (*models.Envelope[T], error) {
	var env models.Envelope[T]
	if err := c.do(ctx, method, path, body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Ping checks that the gateway answers its health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := call[struct{}](ctx, c, http.MethodGet, "/health", nil)
	return err
}

func (c *HTTPClient) Login(ctx context.Context, email, passwordHash string) (*models.Envelope[models.AuthData], error) {
	return call[models.AuthData](ctx, c, http.MethodPost, "/auth/login",
		models.LoginRequest{Email: email, Password: passwordHash})
}

func (c *HTTPClient) Register(ctx context.Context, name, email, passwordHash string) (*models.Envelope[models.AuthData], error) {
	return call[models.AuthData](ctx, c, http.MethodPost, "/auth/register",
		models.RegisterRequest{Name: name, Email: email, Password: passwordHash})
}

func (c *HTTPClient) SendOTP(ctx context.Context, email string) (*models.Ack, error) {
	return call[struct{}](ctx, c, http.MethodPost, "/auth/otp/send", models.OTPRequest{Email: email})
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) (*models.Ack, error) {
	return call[struct{}](ctx, c, http.MethodPost, "/auth/otp/verify", models.OTPRequest{Email: email, OTP: otp})
}

func (c *HTTPClient) ChangePassword(ctx context.Context, email, newPasswordHash string) (*models.Ack, error) {
	return call[struct{}](ctx, c, http.MethodPost, "/auth/password",
		models.ChangePasswordRequest{Email: email, NewPassword: newPasswordHash})
}

func (c *HTTPClient) GetProfile(ctx context.Context, userID string) (*models.Envelope[models.UserProfile], error) {
	return call[models.UserProfile](ctx, c, http.MethodGet, "/users/"+url.PathEscape(userID)+"/profile", nil)
}

func (c *HTTPClient) SetProfile(ctx context.Context, userID, email, phone, displayName string) (*models.Ack, error) {
	return call[struct{}](ctx, c, http.MethodPut, "/users/"+url.PathEscape(userID)+"/profile",
		models.ProfileUpdateRequest{DisplayName: displayName, Email: email, Phone: phone})
}

func (c *HTTPClient) UploadAvatar(ctx context.Context, userID, imageBase64 string) (*models.Envelope[models.AvatarData], error) {
	return call[models.AvatarData](ctx, c, http.MethodPut, "/users/"+url.PathEscape(userID)+"/avatar",
		models.AvatarUploadRequest{Image: imageBase64})
}

func levelQuery(level models.Level) string {
	return "?" + url.Values{"level": {string(level)}}.Encode()
}

func (c *HTTPClient) Vocabulary(ctx context.Context, level models.Level) (*models.Envelope[[]models.VocabularyItem], error) {
	return call[[]models.VocabularyItem](ctx, c, http.MethodGet, "/vocabulary"+levelQuery(level), nil)
}

func (c *HTTPClient) Grammar(ctx context.Context, level models.Level) (*models.Envelope[[]models.GrammarPoint], error) {
	return call[[]models.GrammarPoint](ctx, c, http.MethodGet, "/grammar"+levelQuery(level), nil)
}

func (c *HTTPClient) Readings(ctx context.Context, level models.Level) (*models.Envelope[[]models.ReadingPassage], error) {
	return call[[]models.ReadingPassage](ctx, c, http.MethodGet, "/reading"+levelQuery(level), nil)
}

func (c *HTTPClient) Reading(ctx context.Context, id string) (*models.Envelope[models.ReadingPassage], error) {
	return call[models.ReadingPassage](ctx, c, http.MethodGet, "/reading/"+url.PathEscape(id), nil)
}
