package featured

import (
	"net/http"

	"datenight/internal/auth"
	"datenight/internal/httputil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	store  Store
	errors *httputil.ErrorMapper
	logger *zap.Logger
}

func NewHandler(store Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:  store,
		errors: httputil.NewErrorMapper().WithMapping(ErrEmptyID, http.StatusBadRequest, ErrEmptyID.Error()),
		logger: logger,
	}
}

type setRequest struct {
	ID       string `json:"id" binding:"required"`
	Featured *bool  `json:"featured" binding:"required"`
}

// --------------------------------------------------
// GET /api/featured-restaurants
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	ids, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("[FEATURED] list failed", zap.Error(err))
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"featured": ids})
}

// --------------------------------------------------
// POST /api/featured-restaurants (admin)
// --------------------------------------------------
func (h *Handler) Set(c *gin.Context) {
	var req setRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.store.Set(c.Request.Context(), req.ID, *req.Featured); err != nil {
		h.errors.Respond(c, err)
		return
	}

	subject, _ := c.Get(auth.ContextSubject)
	h.logger.Info("[FEATURED] updated",
		zap.String("id", req.ID),
		zap.Bool("featured", *req.Featured),
		zap.Any("by", subject),
	)

	ids, err := h.store.List(c.Request.Context())
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"featured": ids})
}
