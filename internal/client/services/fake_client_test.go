package services

import (
	"context"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/models"
)

// fakeClient implements client.Client for unit tests. Unset results return
// a nil envelope and nil error.
type fakeClient struct {
	calls int

	PingErr error

	LoginRet    *models.Envelope[models.AuthData]
	LoginErr    error
	RegisterRet *models.Envelope[models.AuthData]
	RegisterErr error
	AckRet      *models.Ack
	AckErr      error

	ProfileRet *models.Envelope[models.UserProfile]
	ProfileErr error
	AvatarRet  *models.Envelope[models.AvatarData]
	AvatarErr  error

	VocabRet    *models.Envelope[[]models.VocabularyItem]
	GrammarRet  *models.Envelope[[]models.GrammarPoint]
	ReadingsRet *models.Envelope[[]models.ReadingPassage]
	ReadingRet  *models.Envelope[models.ReadingPassage]
	ContentErr  error

	LastEmail    string
	LastPassword string
	LastUserID   string
	LastLevel    models.Level
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Ping(ctx context.Context) error {
	f.calls++
	return f.PingErr
}

func (f *fakeClient) Login(ctx context.Context, email, passwordHash string) (*models.Envelope[models.AuthData], error) {
	f.calls++
	f.LastEmail, f.LastPassword = email, passwordHash
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, name, email, passwordHash string) (*models.Envelope[models.AuthData], error) {
	f.calls++
	f.LastEmail, f.LastPassword = email, passwordHash
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) SendOTP(ctx context.Context, email string) (*models.Ack, error) {
	f.calls++
	f.LastEmail = email
	return f.AckRet, f.AckErr
}

func (f *fakeClient) VerifyOTP(ctx context.Context, email, otp string) (*models.Ack, error) {
	f.calls++
	f.LastEmail = email
	return f.AckRet, f.AckErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, email, newPasswordHash string) (*models.Ack, error) {
	f.calls++
	f.LastEmail, f.LastPassword = email, newPasswordHash
	return f.AckRet, f.AckErr
}

func (f *fakeClient) GetProfile(ctx context.Context, userID string) (*models.Envelope[models.UserProfile], error) {
	f.calls++
	f.LastUserID = userID
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) SetProfile(ctx context.Context, userID, email, phone, displayName string) (*models.Ack, error) {
	f.calls++
	f.LastUserID, f.LastEmail = userID, email
	return f.AckRet, f.AckErr
}

func (f *fakeClient) UploadAvatar(ctx context.Context, userID, imageBase64 string) (*models.Envelope[models.AvatarData], error) {
	f.calls++
	f.LastUserID = userID
	return f.AvatarRet, f.AvatarErr
}

func (f *fakeClient) Vocabulary(ctx context.Context, level models.Level) (*models.Envelope[[]models.VocabularyItem], error) {
	f.calls++
	f.LastLevel = level
	return f.VocabRet, f.ContentErr
}

func (f *fakeClient) Grammar(ctx context.Context, level models.Level) (*models.Envelope[[]models.GrammarPoint], error) {
	f.calls++
	f.LastLevel = level
	return f.GrammarRet, f.ContentErr
}

func (f *fakeClient) Readings(ctx context.Context, level models.Level) (*models.Envelope[[]models.ReadingPassage], error) {
	f.calls++
	f.LastLevel = level
	return f.ReadingsRet, f.ContentErr
}

func (f *fakeClient) Reading(ctx context.Context, id string) (*models.Envelope[models.ReadingPassage], error) {
	f.calls++
	return f.ReadingRet, f.ContentErr
}

func envelope[T any](v T, msg string) *models.Envelope[T] {
	return &models.Envelope[T]{Success: true, Data: &v, Message: msg}
}

func declined[T any](msg string) *models.Envelope[T] {
	return &models.Envelope[T]{Success: false, Message: msg}
}
