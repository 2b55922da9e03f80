package router

import (
	"net/http"
	"time"

	"datenight/internal/auth"
	"datenight/internal/contact"
	"datenight/internal/featured"
	"datenight/internal/insights"
	"datenight/internal/middleware"
	"datenight/internal/newsletter"
	"datenight/internal/redirect"
	"datenight/internal/restaurant"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the constructed handlers the API serves. Nil handlers leave
// their routes unmounted.
type Deps struct {
	Restaurants *restaurant.Handler
	Featured    *featured.Handler
	Insights    *insights.Handler
	Newsletter  *newsletter.Handler
	Contact     *contact.Handler
	Redirects   *redirect.Table

	JWTSecret   string
	CORSOrigins []string
	Logger      *zap.Logger
}

func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if d.Redirects != nil {
		r.Use(redirect.Middleware(d.Redirects))
	}

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	if d.Restaurants != nil {
		d.Restaurants.RegisterRoutes(api)
	}
	if d.Insights != nil {
		api.GET("/insights", d.Insights.Get)
	}
	if d.Contact != nil {
		api.POST("/contact", d.Contact.Submit)
	}
	if d.Newsletter != nil {
		api.POST("/subscribe", d.Newsletter.Subscribe)
	}

	admin := []gin.HandlerFunc{
		middleware.AuthMiddleware(d.JWTSecret, logger),
		middleware.RequireRole(auth.RoleAdmin, auth.RoleEditor),
	}
	if d.Featured != nil {
		api.GET("/featured-restaurants", d.Featured.List)
		api.POST("/featured-restaurants", append(admin, d.Featured.Set)...)
	}

	adminGroup := api.Group("/admin", admin...)
	adminGroup.GET("/me", auth.Me)

	return r
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("[HTTP] request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("[HTTP] request", fields...)
		default:
			logger.Info("[HTTP] request", fields...)
		}
	}
}
