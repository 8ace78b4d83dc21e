package handler

import (
	"net/http"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/gateway/content"
	"github.com/gin-gonic/gin"
)

// ContentHandler serves vocabulary, grammar and reading material.
type ContentHandler struct {
	catalog *content.Catalog
}

func NewContentHandler(catalog *content.Catalog) *ContentHandler {
	return &ContentHandler{catalog: catalog}
}

func level(c *gin.Context) (models.Level, bool) {
	lvl, err := models.ParseLevel(c.DefaultQuery("level", string(models.LevelN5)))
	if err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return "", false
	}
	return lvl, true
}

func (h *ContentHandler) Vocabulary(c *gin.Context) {
	if lvl, ok := level(c); ok {
		respond(c, http.StatusOK, h.catalog.Vocabulary(lvl), "")
	}
}

func (h *ContentHandler) Grammar(c *gin.Context) {
	if lvl, ok := level(c); ok {
		respond(c, http.StatusOK, h.catalog.Grammar(lvl), "")
	}
}

func (h *ContentHandler) Readings(c *gin.Context) {
	if lvl, ok := level(c); ok {
		respond(c, http.StatusOK, h.catalog.Readings(lvl), "")
	}
}

func (h *ContentHandler) Reading(c *gin.Context) {
	r, ok := h.catalog.Reading(c.Param("id"))
	if !ok {
		Fail(c, http.StatusNotFound, "Reading passage not found")
		return
	}
	respond(c, http.StatusOK, r, "")
}
