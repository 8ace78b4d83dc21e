package services

import (
	"context"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/models"
)

// ProfileService reads and writes the remote profile. Nothing is cached.
type ProfileService interface {
	Get(ctx context.Context, userID string) (models.UserProfile, error)
	// Update returns the server's confirmation message.
	Update(ctx context.Context, userID, email, phone, displayName string) (string, error)
	// UploadAvatar returns the URL of the stored image.
	UploadAvatar(ctx context.Context, userID, imageBase64 string) (string, error)
}

type profileService struct {
	client client.Client
}

func NewProfileService(c client.Client) ProfileService {
	return &profileService{client: c}
}

func (p *profileService) Get(ctx context.Context, userID string) (models.UserProfile, error) {
	if userID == "" {
		return models.UserProfile{}, ErrEmptyIdentity
	}
	return unwrap(p.client.GetProfile(ctx, userID))
}

func (p *profileService) Update(ctx context.Context, userID, email, phone, displayName string) (string, error) {
	if userID == "" {
		return "", ErrEmptyIdentity
	}
	return acknowledge(p.client.SetProfile(ctx, userID, email, phone, displayName))
}

func (p *profileService) UploadAvatar(ctx context.Context, userID, imageBase64 string) (string, error) {
	if userID == "" {
		return "", ErrEmptyIdentity
	}
	data, err := unwrap(p.client.UploadAvatar(ctx, userID, imageBase64))
	if err != nil {
		return "", err
	}
	if data.AvatarURL == "" {
		return "", ErrEmptyResponse
	}
	return data.AvatarURL, nil
}
