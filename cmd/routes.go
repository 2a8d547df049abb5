package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/veyrascripts/gallery/internal/auth"
	"github.com/veyrascripts/gallery/internal/config"
	"github.com/veyrascripts/gallery/internal/handlers"
	"github.com/veyrascripts/gallery/internal/live"
	"github.com/veyrascripts/gallery/internal/service"
	"github.com/veyrascripts/gallery/internal/storage/local"
	"github.com/veyrascripts/gallery/internal/views"
)

func newRouter(cfg config.Config, scriptsService *service.ScriptsService, cache *views.Cache, node *live.Node) *gin.Engine {
	authenticator := auth.SharedSecret(cfg.AdminPassword)
	sessions := auth.NewSessions([]byte(cfg.AdminPassword))

	scriptsHandler := handlers.NewScriptsHandler(scriptsService, cfg.PublicBaseURL)
	pagesHandler := handlers.NewPagesHandler(scriptsService, cache)
	adminHandler := handlers.NewAdminHandler(scriptsService, cache)
	authHandler := handlers.NewAuthHandler(service.NewAuthService(authenticator, sessions))
	exportsHandler := handlers.NewExportsHandler(scriptsService, local.NewLocalFilesStorage(cfg.ExportDir, exportExtension))

	router := gin.Default()
	router.SetTrustedProxies(nil)
	router.SetHTMLTemplate(views.MustTemplates())
	router.Use(requestID(), cors.New(apiCORS()))

	router.GET("/healthz", healthz)
	router.GET(socketPath, gin.WrapH(websocketIdentity(node.WebsocketHandler())))

	pages := router.Group("/", auth.SessionMiddleware(sessions))
	pages.GET("/", pagesHandler.Gallery)
	pages.GET("/scripts/:id", pagesHandler.Detail)
	pages.GET("/admin", adminHandler.Dashboard)
	pages.POST("/admin/login", authHandler.Login)

	admin := pages.Group("/admin/scripts", auth.RequireSession())
	admin.GET("/new", adminHandler.NewForm)
	admin.POST("/new", adminHandler.Create)
	admin.GET("/:id/edit", adminHandler.EditForm)
	admin.POST("/:id/edit", adminHandler.Update)
	admin.GET("/:id/delete", adminHandler.DeleteConfirm)
	admin.POST("/:id/delete", adminHandler.Delete)

	api := router.Group("/api")
	api.GET("/scripts", scriptsHandler.PublicScripts)
	api.GET("/scripts/:id", scriptsHandler.DownloadScript)
	api.GET("/scripts/:id/script.user.js", scriptsHandler.DownloadScript)

	adminAPI := api.Group("/admin", auth.HeaderMiddleware(authenticator))
	adminAPI.POST("/scripts", scriptsHandler.CreateScript)
	adminAPI.PUT("/scripts", scriptsHandler.UpdateScript)
	adminAPI.DELETE("/scripts", scriptsHandler.DeleteScript)
	adminAPI.POST("/exports", exportsHandler.CreateExport)
	adminAPI.GET("/exports/:name", exportsHandler.GetExport)

	return router
}

func apiCORS() cors.Config {
	return cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type", auth.PasswordHeader},
	}
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
