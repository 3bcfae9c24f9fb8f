package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"

	csrfCookieMaxAge = 7 * 24 * 60 * 60
)

// EnsureCSRFCookie garante o cookie de CSRF na resposta (padrão
// double-submit: o SPA lê o cookie e devolve o valor no header).
// Retorna o token vigente para o handler do /csrf responder no corpo.
func EnsureCSRFCookie(c *gin.Context, secure bool) string {
	if tok, err := c.Cookie(CSRFCookieName); err == nil && tok != "" {
		return tok
	}

	tok := uuid.NewString()
	// httponly=false: o frontend precisa ler o valor para ecoar no header.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CSRFCookieName, tok, csrfCookieMaxAge, "/", "", secure, false)
	return tok
}

// CSRFProtect exige header casando com o cookie nas chamadas de auth que
// mudam estado (login, refresh, logout).
func CSRFProtect() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(CSRFCookieName)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "CSRF cookie not set."})
			return
		}

		header := c.GetHeader(CSRFHeaderName)
		if subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "CSRF token missing or incorrect."})
			return
		}

		c.Next()
	}
}
