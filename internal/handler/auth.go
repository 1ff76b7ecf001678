package handler

import (
	"net/http"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/config"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/dto"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/middleware"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/service"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	svc      service.AuthService
	sesiones *session.Store
	cfg      *config.Config
}

func NewAuthHandler(svc service.AuthService, sesiones *session.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, sesiones: sesiones, cfg: cfg}
}

// emitirCookie opens a server-side session and sets the cookie. The cookie
// is HttpOnly always; Secure follows the deployment config.
func (h *AuthHandler) emitirCookie(c *gin.Context, usuarioID uuid.UUID) error {
	token, err := h.sesiones.Create(c.Request.Context(), usuarioID)
	if err != nil {
		return err
	}
	maxAge := int(h.sesiones.TTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, maxAge, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	return nil
}

func (h *AuthHandler) Registrar(c *gin.Context) {
	var req dto.RegistroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuario, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.emitirCookie(c, usuario.ID); err != nil {
		log.Error().Err(err).Msg("no se pudo crear la sesión tras el registro")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.SesionResponse{
		Mensaje:   "Usuario registrado correctamente.",
		UsuarioID: usuario.ID.String(),
		Correo:    usuario.Correo,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuario, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.emitirCookie(c, usuario.ID); err != nil {
		log.Error().Err(err).Msg("no se pudo crear la sesión tras el login")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SesionResponse{
		Mensaje:   "Sesión iniciada correctamente.",
		UsuarioID: usuario.ID.String(),
		Correo:    usuario.Correo,
	})
}

// Logout destroys the server-side session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.GetToken(c)
	if token != "" {
		if err := h.sesiones.Delete(c.Request.Context(), token); err != nil {
			log.Warn().Err(err).Msg("no se pudo eliminar la sesión en redis")
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"mensaje": "Sesión cerrada correctamente."})
}

// UsuarioActual returns the profile of the authenticated user.
func (h *AuthHandler) UsuarioActual(c *gin.Context) {
	usuario := middleware.GetUsuario(c)
	c.JSON(http.StatusOK, dto.UsuarioActualResponse{
		UsuarioID:          usuario.ID.String(),
		Correo:             usuario.Correo,
		IsAdmin:            usuario.IsAdmin,
		NombreUsuario:      usuario.NombreUsuario,
		DireccionPrincipal: usuario.DireccionPrincipal,
	})
}
