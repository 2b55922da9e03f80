package newsletter

import (
	"context"
	"net/http"
	"strings"

	"datenight/internal/httputil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Subscriber interface {
	Subscribe(ctx context.Context, email, source string) error
}

type Handler struct {
	subscriber Subscriber
	errors     *httputil.ErrorMapper
	logger     *zap.Logger
}

func NewHandler(subscriber Subscriber, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		subscriber: subscriber,
		errors: httputil.NewErrorMapper().
			WithMapping(ErrNotConfigured, http.StatusServiceUnavailable, "newsletter signup is unavailable").
			WithMapping(ErrUpstream, http.StatusBadGateway, "could not subscribe right now"),
		logger: logger,
	}
}

type subscribeRequest struct {
	Email  string `json:"email" form:"email" binding:"required,email"`
	Source string `json:"source" form:"source"`
}

// --------------------------------------------------
// POST /api/subscribe
// --------------------------------------------------
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	source := req.Source
	if source == "" {
		source = "website"
	}

	if err := h.subscriber.Subscribe(c.Request.Context(), email, source); err != nil {
		h.logger.Error("[NEWSLETTER] subscribe failed", zap.String("source", source), zap.Error(err))
		h.errors.Respond(c, err)
		return
	}

	h.logger.Info("[NEWSLETTER] subscribed", zap.String("source", source))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
