package api

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mquinn/folio/backend/internal/kv"
	"github.com/mquinn/folio/backend/internal/services"
)

// Services bundles everything the router serves.
type Services struct {
	Blogs    *services.BlogService
	Readings *services.ReadingService
	Admin    *services.AdminService
	Profile  *services.ProfileService
	Backend  kv.Store
}

// NewRouter wires every route onto a gin engine with zap request logging.
func NewRouter(svc Services, hub *Hub) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(zap.L(), true))

	blogs := NewBlogHandler(svc.Blogs, hub)
	readings := NewReadingHandler(svc.Readings, hub)
	admin := NewAdminHandler(svc.Admin, hub)
	profile := NewProfileHandler(svc.Profile, hub)

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", func(c *gin.Context) {
			if err := svc.Backend.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		apiGroup.GET("/events", hub.Serve)

		apiGroup.GET("/profile", profile.Get)
		apiGroup.PUT("/profile", profile.Put)

		blogGroup := apiGroup.Group("/blogs")
		{
			blogGroup.GET("", blogs.List)
			blogGroup.GET("/published", blogs.Published)
			blogGroup.GET("/slug/:slug", blogs.GetBySlug)
			blogGroup.GET("/:id", blogs.Get)
			blogGroup.POST("", blogs.Create)
			blogGroup.PATCH("/:id", blogs.Update)
			blogGroup.DELETE("/:id", blogs.Delete)
		}

		readingGroup := apiGroup.Group("/readings")
		{
			readingGroup.GET("", readings.List)
			readingGroup.PUT("/order", readings.Reorder)
			readingGroup.GET("/slug/:slug", readings.GetBySlug)
			readingGroup.GET("/:id", readings.Get)
			readingGroup.POST("", readings.Create)
			readingGroup.PATCH("/:id", readings.Update)
			readingGroup.DELETE("/:id", readings.Delete)
		}

		adminGroup := apiGroup.Group("/admin")
		{
			adminGroup.GET("/categories", admin.ListCategories)
			adminGroup.POST("/categories", admin.CreateCategory)
			adminGroup.PUT("/categories/order", admin.ReorderCategories)
			adminGroup.PATCH("/categories/:id", admin.UpdateCategory)
			adminGroup.DELETE("/categories/:id", admin.DeleteCategory)
			adminGroup.GET("/categories/:id/sections", admin.ListSections)
			adminGroup.PUT("/categories/:id/sections/order", admin.ReorderSections)
			adminGroup.GET("/sections", admin.ListAllSections)
			adminGroup.POST("/sections", admin.CreateSection)
			adminGroup.PATCH("/sections/:id", admin.UpdateSection)
			adminGroup.DELETE("/sections/:id", admin.DeleteSection)
		}
	}

	return router
}
