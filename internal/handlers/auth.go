package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veyrascripts/gallery/internal/colors"
	"github.com/veyrascripts/gallery/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges the submitted password for a session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	token, err := h.authService.Login(c.PostForm("password"))
	if err != nil {
		if err == service.ErrInvalidCredentials {
			log.Printf("[%v] rejected login from %v", colors.Warning("admin"), c.ClientIP())
			renderLogin(c, http.StatusUnauthorized, "Invalid password")
			return
		}
		log.Println(err.Error())
		renderLogin(c, http.StatusInternalServerError, "Failed to start session")
		return
	}

	http.SetCookie(c.Writer, h.authService.Sessions().Cookie(token))
	log.Printf("[%v] signed in from %v", colors.Admin("admin"), c.ClientIP())
	c.Redirect(http.StatusSeeOther, "/admin")
}
