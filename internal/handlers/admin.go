package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veyrascripts/gallery/internal/auth"
	"github.com/veyrascripts/gallery/internal/models"
	"github.com/veyrascripts/gallery/internal/repository"
	"github.com/veyrascripts/gallery/internal/service"
	"github.com/veyrascripts/gallery/internal/views"
)

// AdminHandler serves the admin pages. Routes other than Dashboard sit
// behind auth.RequireSession.
type AdminHandler struct {
	scriptsService *service.ScriptsService
	cache          *views.Cache
}

func NewAdminHandler(scriptsService *service.ScriptsService, cache *views.Cache) *AdminHandler {
	return &AdminHandler{scriptsService: scriptsService, cache: cache}
}

// Dashboard shows the password form until the browser holds a session, and
// the script list afterwards.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	if !auth.IsAdmin(c) {
		renderLogin(c, http.StatusOK, "")
		return
	}

	scripts := h.cache.Scripts(c.Request.Context(), views.Admin, h.fetchAll)
	c.HTML(http.StatusOK, "admin_list.tmpl", gin.H{
		"Title":   "Admin",
		"Scripts": scripts,
	})
}

func (h *AdminHandler) NewForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, newScriptForm(), true, "")
}

func (h *AdminHandler) Create(c *gin.Context) {
	var form scriptForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusBadRequest, form, true, err.Error())
		return
	}

	script, err := form.script()
	if err != nil {
		h.renderForm(c, http.StatusBadRequest, form, true, err.Error())
		return
	}

	if _, err := h.scriptsService.Create(c.Request.Context(), script); err != nil {
		status, message := writeFailure(err, "Failed to create script")
		h.renderForm(c, status, form, true, message)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin")
}

func (h *AdminHandler) EditForm(c *gin.Context) {
	script := h.scriptsService.Get(c.Request.Context(), c.Param("id"))
	if script == nil {
		notFound(c, "Script not found")
		return
	}
	h.renderForm(c, http.StatusOK, formFromScript(script), false, "")
}

// Update overwrites every editable field with the submitted form.
func (h *AdminHandler) Update(c *gin.Context) {
	var form scriptForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusBadRequest, form, false, err.Error())
		return
	}
	form.ID = c.Param("id")

	script, err := form.script()
	if err != nil {
		h.renderForm(c, http.StatusBadRequest, form, false, err.Error())
		return
	}

	if _, err := h.scriptsService.Update(c.Request.Context(), form.ID, models.PatchFrom(script)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			notFound(c, "Script not found")
			return
		}
		status, message := writeFailure(err, "Failed to update script")
		h.renderForm(c, status, form, false, message)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin")
}

func (h *AdminHandler) DeleteConfirm(c *gin.Context) {
	script := h.scriptsService.Get(c.Request.Context(), c.Param("id"))
	if script == nil {
		notFound(c, "Script not found")
		return
	}

	c.HTML(http.StatusOK, "admin_delete.tmpl", gin.H{
		"Title":  "Delete " + script.Name,
		"Script": script,
	})
}

func (h *AdminHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.scriptsService.Delete(c.Request.Context(), id); err != nil {
		c.HTML(http.StatusInternalServerError, "admin_delete.tmpl", gin.H{
			"Title":  "Delete " + id,
			"Script": &models.Script{ID: id, Name: id},
			"Error":  "Failed to delete script",
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin")
}

func (h *AdminHandler) renderForm(c *gin.Context, status int, form scriptForm, isNew bool, message string) {
	title, action := "Edit "+form.Name, "/admin/scripts/"+form.ID+"/edit"
	if isNew {
		title, action = "New script", "/admin/scripts/new"
	}

	c.HTML(status, "admin_form.tmpl", gin.H{
		"Title":      title,
		"Action":     action,
		"IsNew":      isNew,
		"Form":       form,
		"Categories": categoryOptions(form.Category),
		"Error":      message,
	})
}

func (h *AdminHandler) fetchAll(ctx context.Context) ([]*models.Script, error) {
	return h.scriptsService.Fetch(ctx, repository.ScriptFilter{})
}

// writeFailure maps a service error to the status and alert text of a form
// page.
func writeFailure(err error, generic string) (int, string) {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, validation.Error()
	}
	return http.StatusInternalServerError, generic
}

func renderLogin(c *gin.Context, status int, message string) {
	c.HTML(status, "admin_login.tmpl", gin.H{
		"Title": "Admin",
		"Error": message,
	})
}
