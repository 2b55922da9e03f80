package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	ContextSubject = "subject"
	ContextRole    = "role"
)

// Me echoes the identity of the caller, which lets operators check a token
// minted by the CLI.
func Me(c *gin.Context) {
	subject, _ := c.Get(ContextSubject)
	role, _ := c.Get(ContextRole)

	c.JSON(http.StatusOK, gin.H{
		"subject": subject,
		"role":    role,
	})
}
