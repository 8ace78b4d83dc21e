package users

import (
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Profile      models.UserProfile
	Avatar       []byte
	CreatedAt    time.Time
}

// Session is the result of a successful login or registration.
type Session struct {
	User  User
	Token string
}
