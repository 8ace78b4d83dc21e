package profile

import "github.com/dmitrijs2005/kotoba/internal/client/models"

// EditProfileState is the state of the profile screen.
type EditProfileState interface {
	editProfileState()
}

type ProfileIdle struct{}

type ProfileLoading struct{}

type ProfileLoaded struct {
	Profile models.UserProfile
}

// ProfileSaved carries the server's confirmation, or the avatar URL after
// an upload.
type ProfileSaved struct {
	Message string
}

type ProfileFailed struct {
	Message string
}

func (ProfileIdle) editProfileState()    {}
func (ProfileLoading) editProfileState() {}
func (ProfileLoaded) editProfileState()  {}
func (ProfileSaved) editProfileState()   {}
func (ProfileFailed) editProfileState()  {}
