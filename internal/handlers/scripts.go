package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/veyrascripts/gallery/internal/models"
	"github.com/veyrascripts/gallery/internal/repository"
	"github.com/veyrascripts/gallery/internal/service"
	"github.com/veyrascripts/gallery/internal/userscript"

	"github.com/gin-gonic/gin"
)

type ScriptsHandler struct {
	scriptsService *service.ScriptsService
	publicBaseURL  string
}

func NewScriptsHandler(scriptService *service.ScriptsService, publicBaseURL string) *ScriptsHandler {
	return &ScriptsHandler{scriptsService: scriptService, publicBaseURL: publicBaseURL}
}

func (h *ScriptsHandler) PublicScripts(c *gin.Context) {
	scripts := h.scriptsService.List(c.Request.Context(), c.Query("search"), c.Query("category"))

	c.JSON(http.StatusOK, gin.H{
		"scripts": scripts,
	})
}

// DownloadScript serves the script as an installable userscript file.
func (h *ScriptsHandler) DownloadScript(c *gin.Context) {
	script, err := h.scriptsService.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Println(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serve script"})
		return
	}
	if script == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Script not found"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", userscript.Filename(script.ID)))
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, "text/javascript; charset=utf-8", []byte(userscript.Render(script, h.publicBaseURL)))
}

// CreateScript takes a full record.
func (h *ScriptsHandler) CreateScript(c *gin.Context) {
	var script models.Script
	if err := c.ShouldBindJSON(&script); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.scriptsService.Create(c.Request.Context(), &script)
	if err != nil {
		var validation *service.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create script"})
		return
	}

	c.JSON(http.StatusOK, created)
}

type updateRequest struct {
	ID string `json:"id"`
	models.ScriptPatch
}

// UpdateScript merges the provided fields into the script named by id.
func (h *ScriptsHandler) UpdateScript(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing script ID"})
		return
	}

	updated, err := h.scriptsService.Update(c.Request.Context(), req.ID, req.ScriptPatch)
	if err != nil {
		var validation *service.ValidationError
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Script not found"})
		case errors.As(err, &validation):
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update script"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ScriptsHandler) DeleteScript(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing script ID"})
		return
	}

	if err := h.scriptsService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete script"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
