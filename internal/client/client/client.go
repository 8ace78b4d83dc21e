package client

import (
	"context"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
)

// Client is the API gateway contract. Every call issues exactly one request
// and returns the decoded response envelope. Transport problems are reported
// as errors (see ErrUnavailable, ErrMalformedResponse and *StatusError); the
// envelope's success flag is left for the caller to interpret.
type Client interface {
	Ping(ctx context.Context) error

	Login(ctx context.Context, email, passwordHash string) (*models.Envelope[models.AuthData], error)
	Register(ctx context.Context, name, email, passwordHash string) (*models.Envelope[models.AuthData], error)
	SendOTP(ctx context.Context, email string) (*models.Ack, error)
	VerifyOTP(ctx context.Context, email, otp string) (*models.Ack, error)
	ChangePassword(ctx context.Context, email, newPasswordHash string) (*models.Ack, error)

	GetProfile(ctx context.Context, userID string) (*models.Envelope[models.UserProfile], error)
	SetProfile(ctx context.Context, userID, email, phone, displayName string) (*models.Ack, error)
	UploadAvatar(ctx context.Context, userID, imageBase64 string) (*models.Envelope[models.AvatarData], error)

	Vocabulary(ctx context.Context, level models.Level) (*models.Envelope[[]models.VocabularyItem], error)
	Grammar(ctx context.Context, level models.Level) (*models.Envelope[[]models.GrammarPoint], error)
	Readings(ctx context.Context, level models.Level) (*models.Envelope[[]models.ReadingPassage], error)
	Reading(ctx context.Context, id string) (*models.Envelope[models.ReadingPassage], error)
}

// TokenSource returns the current bearer token, or "" when there is none.
type TokenSource func() string
