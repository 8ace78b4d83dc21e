package handler

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/jpeg"
	"net/http"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/gateway/users"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler serves the profile and avatar endpoints.
type ProfileHandler struct {
	users *users.Service
	log   *zap.Logger
}

func NewProfileHandler(svc *users.Service, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{users: svc, log: log}
}

func (h *ProfileHandler) notFoundOrInternal(c *gin.Context, err error, op string) {
	if errors.Is(err, users.ErrNotFound) {
		Fail(c, http.StatusNotFound, "User not found")
		return
	}
	h.log.Error(op+" failed", zap.Error(err))
	Fail(c, http.StatusInternalServerError, "Internal server error")
}

func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.users.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.notFoundOrInternal(c, err, "get profile")
		return
	}
	respond(c, http.StatusOK, p, "")
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Display name, a valid email and a phone number of at least 9 digits are required")
		return
	}

	err := h.users.UpdateProfile(c.Request.Context(), c.Param("id"), req.DisplayName, req.Email, req.Phone)
	if errors.Is(err, users.ErrAlreadyExists) {
		Fail(c, http.StatusConflict, "This email is already used by another account")
		return
	}
	if err != nil {
		h.notFoundOrInternal(c, err, "update profile")
		return
	}
	ack(c, http.StatusOK, "Profile updated successfully")
}

// UploadAvatar accepts a base64 JPEG and returns the URL it is served from.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	var req models.AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "A base64 encoded image is required")
		return
	}

	img, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		Fail(c, http.StatusBadRequest, "A base64 encoded image is required")
		return
	}
	if _, err := jpeg.DecodeConfig(bytes.NewReader(img)); err != nil {
		Fail(c, http.StatusUnsupportedMediaType, "Only JPEG images are accepted")
		return
	}

	id := c.Param("id")
	url := avatarURL(c, id)
	if err := h.users.SetAvatar(c.Request.Context(), id, img, url); err != nil {
		h.notFoundOrInternal(c, err, "upload avatar")
		return
	}
	respond(c, http.StatusOK, models.AvatarData{AvatarURL: url}, "Avatar updated")
}

// Avatar serves a stored image without authentication.
func (h *ProfileHandler) Avatar(c *gin.Context) {
	img, err := h.users.Avatar(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.notFoundOrInternal(c, err, "get avatar")
		return
	}
	c.Data(http.StatusOK, "image/jpeg", img)
}

func avatarURL(c *gin.Context, id string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/api/v1/avatars/" + id
}
