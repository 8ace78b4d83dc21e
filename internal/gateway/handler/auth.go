package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/gateway/auth"
	"github.com/dmitrijs2005/kotoba/internal/gateway/users"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves login, registration and password recovery.
type AuthHandler struct {
	users  *users.Service
	secret []byte
	log    *zap.Logger
}

func NewAuthHandler(svc *users.Service, secret []byte, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: svc, secret: secret, log: log}
}

func authData(s *users.Session) models.AuthData {
	return models.AuthData{UserID: s.User.ID, Email: s.User.Email, Name: s.User.Name, Token: s.Token}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	s, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrAlreadyExists) {
			Fail(c, http.StatusConflict, "An account with this email already exists")
			return
		}
		h.log.Error("register failed", zap.Error(err))
		Fail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	respond(c, http.StatusCreated, authData(s), "Registration successful")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	s, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrUnauthorized) {
			Fail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.log.Error("login failed", zap.Error(err))
		Fail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	respond(c, http.StatusOK, authData(s), "Login successful")
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req models.OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Email is required")
		return
	}

	code, err := h.users.SendOTP(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			Fail(c, http.StatusNotFound, "No account is registered with this email")
			return
		}
		h.log.Error("send otp failed", zap.Error(err))
		Fail(c, http.StatusInternalServerError, "Could not send the code")
		return
	}

	// There is no mail delivery in development; the code goes to the log.
	h.log.Info("otp issued", zap.String("email", req.Email), zap.String("otp", code))
	ack(c, http.StatusOK, "A verification code has been sent to your email")
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OTP == "" {
		Fail(c, http.StatusBadRequest, "Email and a 4-8 digit code are required")
		return
	}

	if err := h.users.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		c.JSON(http.StatusOK, models.Ack{Success: false, Message: "The code is invalid or has expired"})
		return
	}
	ack(c, http.StatusOK, "Code verified")
}

// ChangePassword accepts a verified recovery code or the account's own
// bearer token.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Email and new password are required")
		return
	}

	var callerID string
	if token, ok := bearer(c); ok {
		if claims, err := auth.ParseToken(token, h.secret); err == nil {
			callerID = claims.Subject
		}
	}

	err := h.users.ChangePassword(c.Request.Context(), req.Email, req.NewPassword, callerID)
	switch {
	case err == nil:
		ack(c, http.StatusOK, "Password changed successfully")
	case errors.Is(err, users.ErrNotFound):
		Fail(c, http.StatusNotFound, "No account is registered with this email")
	case errors.Is(err, users.ErrForbidden):
		Fail(c, http.StatusForbidden, "Verify the code sent to your email first")
	default:
		h.log.Error("change password failed", zap.Error(err))
		Fail(c, http.StatusInternalServerError, "Could not change the password")
	}
}

func bearer(c *gin.Context) (string, bool) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	return token, ok && token != ""
}
