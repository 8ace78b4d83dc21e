package models

// Envelope is the JSON shape of every API gateway response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Message string `json:"message"`
}

// Ack is the data-less gateway response.
type Ack = Envelope[struct{}]

// AuthData is returned by login and registration.
type AuthData struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Token  string `json:"token,omitempty"`
}

// AvatarData is returned by an avatar upload.
type AvatarData struct {
	AvatarURL string `json:"avatarUrl"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// OTPRequest is the body of the OTP endpoints. OTP is empty for sending.
type OTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp,omitempty" binding:"omitempty,numeric,min=4,max=8"`
}

// ChangePasswordRequest is the body of POST /auth/password.
type ChangePasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ProfileUpdateRequest is the body of PUT /users/{id}/profile.
type ProfileUpdateRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required,numeric,min=9"`
}

// AvatarUploadRequest is the body of PUT /users/{id}/avatar.
type AvatarUploadRequest struct {
	Image string `json:"image" binding:"required,base64"`
}
