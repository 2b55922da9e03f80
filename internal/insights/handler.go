package insights

import (
	"net/http"

	"datenight/internal/httputil"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	errors  *httputil.ErrorMapper
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		errors: httputil.NewErrorMapper().
			WithMapping(ErrNotEnoughData, http.StatusNotFound, "no data available"),
	}
}

// GET /api/insights?neighborhood=&cuisine=
func (h *Handler) Get(c *gin.Context) {
	snapshot, err := h.service.Snapshot(
		c.Request.Context(),
		c.Query("neighborhood"),
		c.Query("cuisine"),
	)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
