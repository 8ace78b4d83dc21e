// Package profile implements the profile screen controller. Reads go to
// the gateway every time and writes are sent straight through; nothing is
// cached locally.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/client/services"
	"github.com/dmitrijs2005/kotoba/internal/client/validation"
	"github.com/dmitrijs2005/kotoba/internal/imagex"
	"github.com/dmitrijs2005/kotoba/internal/logging"
	"github.com/dmitrijs2005/kotoba/internal/observable"
)

// MsgSaved is shown when the gateway confirms an update without a message.
const MsgSaved = "Profile updated"

// ErrBusy is returned when another profile operation is running.
var ErrBusy = errors.New("another profile operation is in progress")

// IdentitySource yields the signed-in user id.
type IdentitySource interface {
	CurrentUserID() (string, bool)
}

type Controller struct {
	profiles services.ProfileService
	identity IdentitySource
	log      logging.Logger

	inFlight atomic.Bool

	state   *observable.Value[EditProfileState]
	profile *observable.Value[models.Optional[models.UserProfile]]
}

func NewController(profiles services.ProfileService, identity IdentitySource, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		profiles: profiles,
		identity: identity,
		log:      log,
		state:    observable.NewValue[EditProfileState](ProfileIdle{}),
		profile:  observable.NewValue(models.None[models.UserProfile]()),
	}
}

func (c *Controller) State() *observable.Value[EditProfileState] { return c.state }

// Profile is the last profile fetched by GetProfile.
func (c *Controller) Profile() *observable.Value[models.Optional[models.UserProfile]] {
	return c.profile
}

// begin takes the in-flight slot; end must be called when it succeeds.
func (c *Controller) begin() bool { return c.inFlight.CompareAndSwap(false, true) }

func (c *Controller) end() { c.inFlight.Store(false) }

func (c *Controller) fail(ctx context.Context, op string, err error) error {
	c.log.Info(ctx, "profile operation failed", "op", op, "error", err)
	c.state.Set(ProfileFailed{Message: services.UserMessage(err)})
	return err
}

func (c *Controller) userID() (string, error) {
	id, ok := c.identity.CurrentUserID()
	if !ok || id == "" {
		return "", services.ErrEmptyIdentity
	}
	return id, nil
}

// GetProfile fetches the signed-in user's profile.
func (c *Controller) GetProfile(ctx context.Context) (models.UserProfile, error) {
	if !c.begin() {
		return models.UserProfile{}, ErrBusy
	}
	defer c.end()

	id, err := c.userID()
	if err != nil {
		return models.UserProfile{}, c.fail(ctx, "get", err)
	}

	c.state.Set(ProfileLoading{})

	p, err := c.profiles.Get(ctx, id)
	if err != nil {
		c.profile.Set(models.None[models.UserProfile]())
		return models.UserProfile{}, c.fail(ctx, "get", err)
	}

	c.profile.Set(models.Some(p))
	c.state.Set(ProfileLoaded{Profile: p})
	return p, nil
}

// UpdateProfile validates the fields in order and sends them. The first
// invalid field is reported without a network call.
func (c *Controller) UpdateProfile(ctx context.Context, displayName, email, phone string) error {
	if !c.begin() {
		return ErrBusy
	}
	defer c.end()

	checks := []struct{ field, msg string }{
		{"displayName", validation.DisplayName(displayName)},
		{"email", validation.ProfileEmail(email)},
		{"phone", validation.Phone(phone)},
	}
	for _, ch := range checks {
		if ch.msg != "" {
			return c.fail(ctx, "update", &services.ValidationError{Field: ch.field, Message: ch.msg})
		}
	}

	id, err := c.userID()
	if err != nil {
		return c.fail(ctx, "update", err)
	}

	c.state.Set(ProfileLoading{})

	msg, err := c.profiles.Update(ctx, id, email, phone, displayName)
	if err != nil {
		return c.fail(ctx, "update", err)
	}
	if msg == "" {
		msg = MsgSaved
	}
	c.state.Set(ProfileSaved{Message: msg})
	return nil
}

// UpdateAvatar converts image to a JPEG of at most imagex.MaxEdge pixels
// per side and uploads it. It returns the new avatar URL.
func (c *Controller) UpdateAvatar(ctx context.Context, image io.Reader) (string, error) {
	if !c.begin() {
		return "", ErrBusy
	}
	defer c.end()

	id, err := c.userID()
	if err != nil {
		return "", c.fail(ctx, "avatar", err)
	}

	c.state.Set(ProfileLoading{})

	encoded, err := imagex.AvatarBase64(image)
	if err != nil {
		return "", c.fail(ctx, "avatar", fmt.Errorf("%w: %w", services.ErrImageProcessing, err))
	}

	url, err := c.profiles.UploadAvatar(ctx, id, encoded)
	if err != nil {
		return "", c.fail(ctx, "avatar", err)
	}
	c.state.Set(ProfileSaved{Message: url})
	return url, nil
}
