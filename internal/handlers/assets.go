package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veyrascripts/gallery/internal/catalog"
	"github.com/veyrascripts/gallery/internal/service"
	"github.com/veyrascripts/gallery/internal/storage"
)

// ExportsHandler takes catalog snapshots and serves them back to admins.
type ExportsHandler struct {
	scriptsService *service.ScriptsService
	exportsStorage storage.FilesStorage
	contentType    string
}

func NewExportsHandler(scriptsService *service.ScriptsService, storage storage.FilesStorage) *ExportsHandler {
	return &ExportsHandler{scriptsService: scriptsService, exportsStorage: storage, contentType: "application/x-ndjson"}
}

func (h *ExportsHandler) CreateExport(c *gin.Context) {
	name, err := catalog.Snapshot(c.Request.Context(), h.scriptsService, h.exportsStorage, time.Now())
	if err != nil {
		log.Println(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export scripts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": name})
}

func (h *ExportsHandler) GetExport(c *gin.Context) {
	name := c.Param("name")
	if !catalog.IsSnapshotName(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid export name"})
		return
	}

	file, err := h.exportsStorage.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Export not found"})
			return
		}
		log.Println("Error opening export:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read export"})
		return
	}
	defer file.Close()

	c.Header("Content-Type", h.contentType)
	if _, err := io.Copy(c.Writer, file); err != nil {
		log.Println("Error writing export to response:", err)
	}
}
