package profile

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/client/services"
	"github.com/dmitrijs2005/kotoba/internal/client/validation"
	"github.com/dmitrijs2005/kotoba/internal/gateway"
	"github.com/dmitrijs2005/kotoba/internal/gateway/config"
	"github.com/gin-gonic/gin"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticIdentity string

func (s staticIdentity) CurrentUserID() (string, bool) { return string(s), s != "" }

type fakeProfiles struct {
	calls int

	profile models.UserProfile
	msg     string
	url     string
	err     error

	lastUserID string
	lastImage  string
	lastFields []string
}

func (f *fakeProfiles) Get(ctx context.Context, userID string) (models.UserProfile, error) {
	f.calls++
	f.lastUserID = userID
	return f.profile, f.err
}

func (f *fakeProfiles) Update(ctx context.Context, userID, email, phone, displayName string) (string, error) {
	f.calls++
	f.lastUserID = userID
	f.lastFields = []string{displayName, email, phone}
	return f.msg, f.err
}

func (f *fakeProfiles) UploadAvatar(ctx context.Context, userID, imageBase64 string) (string, error) {
	f.calls++
	f.lastUserID = userID
	f.lastImage = imageBase64
	return f.url, f.err
}

func pngImage(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return &buf
}

func TestGetProfile(t *testing.T) {
	f := &fakeProfiles{profile: models.UserProfile{FullName: "Aiko", Level: models.LevelN4}}
	c := NewController(f, staticIdentity("u1"), nil)

	p, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Aiko", p.FullName)
	assert.Equal(t, "u1", f.lastUserID)
	assert.Equal(t, ProfileLoaded{Profile: p}, c.State().Get())
	assert.Equal(t, models.Some(p), c.Profile().Get())
}

func TestGetProfile_NoIdentityFailsFast(t *testing.T) {
	f := &fakeProfiles{}
	c := NewController(f, staticIdentity(""), nil)

	_, err := c.GetProfile(context.Background())
	assert.ErrorIs(t, err, services.ErrEmptyIdentity)
	assert.Equal(t, ProfileFailed{Message: services.MsgEmptyIdentity}, c.State().Get())
	assert.Zero(t, f.calls)
}

func TestGetProfile_FailureClearsProfile(t *testing.T) {
	f := &fakeProfiles{profile: models.UserProfile{FullName: "Aiko"}}
	c := NewController(f, staticIdentity("u1"), nil)
	_, err := c.GetProfile(context.Background())
	require.NoError(t, err)

	f.err = &services.ServerDeclinedError{StatusCode: 404, Message: "User not found"}
	_, err = c.GetProfile(context.Background())
	require.Error(t, err)
	assert.False(t, c.Profile().Get().Present)
	assert.Equal(t, ProfileFailed{Message: "User not found"}, c.State().Get())
}

func TestUpdateProfile_Validation(t *testing.T) {
	tests := []struct {
		name, display, email, phone string
		field, msg                  string
	}{
		{"blank display name", "", "a@b.com", "0123456789", "displayName", validation.MsgDisplayNameEmpty},
		{"bad email", "Aiko", "a@", "0123456789", "email", validation.MsgProfileEmail},
		{"blank phone", "Aiko", "a@b.com", "", "phone", validation.MsgPhoneEmpty},
		{"short phone", "Aiko", "a@b.com", "12345", "phone", validation.MsgPhoneLength},
		{"letters in phone", "Aiko", "a@b.com", "01234abcd", "phone", validation.MsgPhoneDigits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeProfiles{}
			c := NewController(f, staticIdentity("u1"), nil)

			err := c.UpdateProfile(context.Background(), tt.display, tt.email, tt.phone)
			var ve *services.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.msg, ve.Message)
			assert.Equal(t, ProfileFailed{Message: tt.msg}, c.State().Get())
			assert.Zero(t, f.calls)
		})
	}
}

func TestUpdateProfile_Sends(t *testing.T) {
	f := &fakeProfiles{}
	c := NewController(f, staticIdentity("u1"), nil)

	require.NoError(t, c.UpdateProfile(context.Background(), "Aiko", "a@b.com", "0123456789"))
	assert.Equal(t, []string{"Aiko", "a@b.com", "0123456789"}, f.lastFields)
	assert.Equal(t, ProfileSaved{Message: MsgSaved}, c.State().Get())
	assert.False(t, c.Profile().Get().Present)
}

func TestUpdateProfile_TransportFailure(t *testing.T) {
	f := &fakeProfiles{err: &services.TransportError{Err: errors.New("timeout")}}
	c := NewController(f, staticIdentity("u1"), nil)

	err := c.UpdateProfile(context.Background(), "Aiko", "a@b.com", "0123456789")
	require.Error(t, err)
	assert.Equal(t, ProfileFailed{Message: services.MsgConnectivity}, c.State().Get())
}

func TestUpdateAvatar_ImageErrorIsDistinct(t *testing.T) {
	f := &fakeProfiles{}
	c := NewController(f, staticIdentity("u1"), nil)

	_, err := c.UpdateAvatar(context.Background(), strings.NewReader("not an image"))
	assert.ErrorIs(t, err, services.ErrImageProcessing)
	assert.Equal(t, ProfileFailed{Message: services.MsgImageProcessing}, c.State().Get())
	assert.Zero(t, f.calls)
}

func TestUpdateAvatar_NoIdentity(t *testing.T) {
	f := &fakeProfiles{}
	c := NewController(f, staticIdentity(""), nil)

	_, err := c.UpdateAvatar(context.Background(), pngImage(t, 4, 4))
	assert.ErrorIs(t, err, services.ErrEmptyIdentity)
}

func TestUpdateAvatar_Uploads(t *testing.T) {
	f := &fakeProfiles{url: "http://x/avatars/u1"}
	c := NewController(f, staticIdentity("u1"), nil)

	url, err := c.UpdateAvatar(context.Background(), pngImage(t, 800, 600))
	require.NoError(t, err)
	assert.Equal(t, "http://x/avatars/u1", url)
	assert.NotEmpty(t, f.lastImage)
	assert.Equal(t, ProfileSaved{Message: url}, c.State().Get())
}

func TestController_AgainstGateway(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg, err := config.LoadFrom(context.Background(), envconfig.MapLookuper(nil))
	require.NoError(t, err)
	srv := httptest.NewServer(gateway.NewApp(cfg, zap.NewNop()).Router())
	t.Cleanup(srv.Close)

	var token string
	hc, err := client.NewHTTPClient(srv.URL, 5*time.Second, func() string { return token })
	require.NoError(t, err)
	ctx := context.Background()

	data, err := services.NewAuthService(hc).Register(ctx, "Hana", "hana@example.com", "hash")
	require.NoError(t, err)
	token = data.Token

	c := NewController(services.NewProfileService(hc), staticIdentity(data.UserID), nil)

	p, err := c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hana", p.FullName)
	assert.Nil(t, p.AvatarURL)

	require.NoError(t, c.UpdateProfile(ctx, "Hana Sato", "hana@example.com", "0123456789"))
	assert.Equal(t, ProfileSaved{Message: "Profile updated successfully"}, c.State().Get())

	url, err := c.UpdateAvatar(ctx, pngImage(t, 1000, 1000))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "/api/v1/avatars/"+data.UserID), url)

	p, err = c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hana Sato", p.FullName)
	assert.Equal(t, "0123456789", p.Phone)
	require.NotNil(t, p.AvatarURL)
	assert.Equal(t, url, *p.AvatarURL)

	other := NewController(services.NewProfileService(hc), staticIdentity("someone-else"), nil)
	_, err = other.GetProfile(ctx)
	require.Error(t, err)
	assert.IsType(t, ProfileFailed{}, other.State().Get())
}
