package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError segue o contrato do frontend: todo erro vem como {"detail": ...}.
// 404 de recurso alheio e de recurso inexistente são indistinguíveis de
// propósito.
type HTTPError struct {
	Detail string `json:"detail"`
}

func Write(c *gin.Context, status int, detail string) {
	c.JSON(status, HTTPError{Detail: detail})
}

func BadRequest(c *gin.Context, detail string) {
	Write(c, http.StatusBadRequest, detail)
}

func Unauthorized(c *gin.Context, detail string) {
	Write(c, http.StatusUnauthorized, detail)
}

func Forbidden(c *gin.Context, detail string) {
	Write(c, http.StatusForbidden, detail)
}

func NotFound(c *gin.Context) {
	Write(c, http.StatusNotFound, "Not found.")
}

func Internal(c *gin.Context, detail string) {
	Write(c, http.StatusInternalServerError, detail)
}
