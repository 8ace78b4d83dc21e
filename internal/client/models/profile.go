package models

import "fmt"

// Level is a JLPT level.
type Level string

const (
	LevelN5 Level = "N5"
	LevelN4 Level = "N4"
	LevelN3 Level = "N3"
	LevelN2 Level = "N2"
	LevelN1 Level = "N1"
)

// Levels lists the JLPT levels from easiest to hardest.
var Levels = []Level{LevelN5, LevelN4, LevelN3, LevelN2, LevelN1}

// ParseLevel validates s as a JLPT level.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q, expected one of N5, N4, N3, N2, N1", s)
}

// UserProfile is the remote profile of a user. It is never cached locally.
type UserProfile struct {
	FullName  string  `json:"fullName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Bio       string  `json:"bio"`
	Level     Level   `json:"level"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
