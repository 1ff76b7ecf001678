package middleware

import (
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/apierror"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/repository"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	UsuarioKey = "usuario"
	TokenKey   = "token_sesion"
)

// SessionAuth resolves the session cookie on every protected route. The
// token is an opaque value stored server-side, so logout invalidates it
// immediately.
func SessionAuth(store *session.Store, usuarios repository.UsuarioRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			e := apierror.NoAutenticado()
			c.AbortWithStatusJSON(e.Status(), e)
			return
		}

		userID, err := store.Get(c.Request.Context(), token)
		if err != nil {
			e := apierror.NoAutenticado()
			c.AbortWithStatusJSON(e.Status(), e)
			return
		}

		usuario, err := usuarios.FindByID(c.Request.Context(), userID)
		if err != nil {
			// Session points at a deleted account; treat as logged out.
			e := apierror.NoAutenticado()
			c.AbortWithStatusJSON(e.Status(), e)
			return
		}

		c.Set(UsuarioKey, usuario)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// RequireAdmin rejects authenticated requests from non-admin accounts.
// It must run after SessionAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario := GetUsuario(c)
		if usuario == nil || !usuario.IsAdmin {
			e := apierror.NoAutorizado()
			c.AbortWithStatusJSON(e.Status(), e)
			return
		}
		c.Next()
	}
}

// GetUsuario retrieves the authenticated user from the Gin context.
func GetUsuario(c *gin.Context) *model.Usuario {
	v, ok := c.Get(UsuarioKey)
	if !ok {
		return nil
	}
	usuario, _ := v.(*model.Usuario)
	return usuario
}

// GetToken retrieves the raw session token from the Gin context.
func GetToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
