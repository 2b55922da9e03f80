package contact

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxMessageRunes = 5000

// Message is a contact form submission.
type Message struct {
	Name       string `json:"name" form:"name" binding:"required,max=200"`
	Email      string `json:"email" form:"email" binding:"required,email"`
	Subject    string `json:"subject" form:"subject" binding:"max=200"`
	Message    string `json:"message" form:"message" binding:"required"`
	Restaurant string `json:"restaurant" form:"restaurant"`
}

// Handler accepts contact submissions. They are only logged; there is no
// inbox behind the form.
type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{logger: logger}
}

// --------------------------------------------------
// POST /api/contact
// --------------------------------------------------
func (h *Handler) Submit(c *gin.Context) {
	var msg Message
	if err := c.ShouldBind(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "name, a valid email and a message are required"})
		return
	}

	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Message == "" || utf8.RuneCountInString(msg.Message) > maxMessageRunes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "message must be between 1 and 5000 characters"})
		return
	}

	h.logger.Info("[CONTACT] submission received",
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.String("subject", msg.Subject),
		zap.String("restaurant", msg.Restaurant),
		zap.Int("length", utf8.RuneCountInString(msg.Message)),
	)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
