package restaurant

import (
	"net/http"
	"strings"

	"datenight/internal/httputil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	errors  *httputil.ErrorMapper
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service: service,
		errors: httputil.NewErrorMapper().
			WithMapping(ErrNotFound, http.StatusNotFound, "restaurant not found").
			WithMapping(ErrInvalidSlug, http.StatusBadRequest, "invalid slug"),
		logger: logger,
	}
}

// RegisterRoutes mounts the read API under rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/restaurants", h.ListRestaurants)
	rg.GET("/restaurants/:neighborhood/:slug", h.GetRestaurant)
	rg.GET("/filter-restaurants", h.FilterRestaurants)
	rg.GET("/search", h.Search)
	rg.GET("/neighborhoods", h.ListNeighborhoods)
	rg.GET("/cuisines", h.ListCuisines)
}

// --------------------------------------------------
// GET /api/restaurants
// --------------------------------------------------
func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.service.ListRestaurants(c.Request.Context(), Filter{})
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// --------------------------------------------------
// GET /api/filter-restaurants
// --------------------------------------------------
func (h *Handler) FilterRestaurants(c *gin.Context) {
	filter := ParseFilter(c.Request.URL.Query())

	restaurants, err := h.service.ListRestaurants(c.Request.Context(), filter)
	if err != nil {
		// The listing page renders whatever array it gets back.
		h.logger.Warn("[FILTER] returning empty list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, []*Restaurant{})
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// --------------------------------------------------
// GET /api/search?q=
// --------------------------------------------------
func (h *Handler) Search(c *gin.Context) {
	filter := ParseFilter(c.Request.URL.Query())
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		// ?search= is accepted too, like the filter endpoint
		query = filter.Query
	}

	restaurants, err := h.service.Search(c.Request.Context(), query, filter)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// --------------------------------------------------
// GET /api/restaurants/:neighborhood/:slug
// --------------------------------------------------
func (h *Handler) GetRestaurant(c *gin.Context) {
	res, err := h.service.GetRestaurant(
		c.Request.Context(),
		c.Param("neighborhood"),
		c.Param("slug"),
	)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListNeighborhoods(c *gin.Context) {
	neighborhoods, err := h.service.ListNeighborhoods(c.Request.Context())
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, neighborhoods)
}

func (h *Handler) ListCuisines(c *gin.Context) {
	cuisines, err := h.service.ListCuisines(c.Request.Context())
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cuisines)
}
