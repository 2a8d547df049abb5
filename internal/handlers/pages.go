package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veyrascripts/gallery/internal/channels"
	"github.com/veyrascripts/gallery/internal/gallery"
	"github.com/veyrascripts/gallery/internal/models"
	"github.com/veyrascripts/gallery/internal/repository"
	"github.com/veyrascripts/gallery/internal/service"
	"github.com/veyrascripts/gallery/internal/views"
)

// PagesHandler renders the public gallery and script detail pages.
type PagesHandler struct {
	scriptsService *service.ScriptsService
	cache          *views.Cache
}

func NewPagesHandler(scriptsService *service.ScriptsService, cache *views.Cache) *PagesHandler {
	return &PagesHandler{scriptsService: scriptsService, cache: cache}
}

func (h *PagesHandler) Gallery(c *gin.Context) {
	scripts := h.cache.Scripts(c.Request.Context(), views.Gallery, h.fetchAll)

	search := c.Query("search")
	category := c.DefaultQuery("category", repository.AllCategories)

	c.HTML(http.StatusOK, "gallery.tmpl", gin.H{
		"Scripts":    gallery.Filter(scripts, search, category),
		"Total":      len(scripts),
		"Search":     search,
		"Category":   category,
		"Categories": gallery.Categories,
		"Channel":    channels.Gallery,
	})
}

func (h *PagesHandler) Detail(c *gin.Context) {
	script := h.scriptsService.Get(c.Request.Context(), c.Param("id"))
	if script == nil {
		notFound(c, "Script not found")
		return
	}

	tab := gallery.ParseTab(c.Query("tab"))
	count := len(script.Screenshots)
	shot, _ := strconv.Atoi(c.Query("shot"))
	shot = gallery.Clamp(shot, count)

	data := gin.H{
		"Title":     script.Name,
		"Script":    script,
		"Tab":       tab,
		"Tabs":      gallery.Tabs,
		"Shot":      shot,
		"ShotCount": count,
		"Channel":   channels.ForScript(script.ID),
	}
	if count > 0 {
		data["Screenshot"] = script.Screenshots[shot]
		data["ShotNumber"] = shot + 1
		data["Prev"] = gallery.PrevIndex(shot, count)
		data["Next"] = gallery.NextIndex(shot, count)
	}

	c.HTML(http.StatusOK, "detail.tmpl", data)
}

func (h *PagesHandler) fetchAll(ctx context.Context) ([]*models.Script, error) {
	return h.scriptsService.Fetch(ctx, repository.ScriptFilter{})
}

func notFound(c *gin.Context, message string) {
	c.HTML(http.StatusNotFound, "not_found.tmpl", gin.H{
		"Title":   "Not found",
		"Message": message,
	})
}
