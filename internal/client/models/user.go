package models

import "time"

// User is the local record of an account that signed in on this device.
type User struct {
	ID              string
	Name            string
	Email           string
	ProfileImageURL *string

	// JoinDate is when the account was first synced to this device.
	JoinDate time.Time

	// DailyStreak counts consecutive days with recorded activity.
	DailyStreak    int
	LastActiveDate time.Time
}
