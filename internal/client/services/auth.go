package services

import (
	"context"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/models"
)

// AuthService covers account and password recovery calls. Passwords are
// passed already hashed.
type AuthService interface {
	Login(ctx context.Context, email, passwordHash string) (models.AuthData, error)
	Register(ctx context.Context, name, email, passwordHash string) (models.AuthData, error)
	SendOTP(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ChangePassword(ctx context.Context, email, newPasswordHash string) (string, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

// Login returns the account data. A response without a user id is treated
// as empty.
func (a *authService) Login(ctx context.Context, email, passwordHash string) (models.AuthData, error) {
	data, err := unwrap(a.client.Login(ctx, email, passwordHash))
	if err != nil {
		return models.AuthData{}, err
	}
	if data.UserID == "" {
		return models.AuthData{}, ErrEmptyResponse
	}
	if data.Email == "" {
		data.Email = email
	}
	return data, nil
}

func (a *authService) Register(ctx context.Context, name, email, passwordHash string) (models.AuthData, error) {
	data, err := unwrap(a.client.Register(ctx, name, email, passwordHash))
	if err != nil {
		return models.AuthData{}, err
	}
	if data.UserID == "" {
		return models.AuthData{}, ErrEmptyResponse
	}
	if data.Email == "" {
		data.Email = email
	}
	if data.Name == "" {
		data.Name = name
	}
	return data, nil
}

func (a *authService) SendOTP(ctx context.Context, email string) (string, error) {
	return acknowledge(a.client.SendOTP(ctx, email))
}

func (a *authService) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	return acknowledge(a.client.VerifyOTP(ctx, email, otp))
}

func (a *authService) ChangePassword(ctx context.Context, email, newPasswordHash string) (string, error) {
	return acknowledge(a.client.ChangePassword(ctx, email, newPasswordHash))
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		return mapCallError(err)
	}
	return nil
}
