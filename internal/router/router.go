package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"inkwell/internal/config"
	"inkwell/internal/handlers"
	"inkwell/internal/logger"
	"inkwell/internal/middleware"
	"inkwell/internal/services"
	"inkwell/internal/session"
)

type Deps struct {
	Config   *config.Config
	Log      *logrus.Logger
	DB       *gorm.DB
	Sessions *session.Manager
}

// New builds the engine with every route mounted.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = d.Config.Upload.MaxBytes
	r.Use(
		middleware.RequestID(d.Log),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logger.FromContext(c).WithField("panic", recovered).Error("panic recovered")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"code": "INTERNAL", "message": "Something went wrong, please try again"},
			})
		}),
		middleware.LoadSession(d.Sessions),
	)

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	authHandler := handlers.NewAuthHandler(services.NewIdentityService(d.DB), d.Sessions)
	postHandler := handlers.NewPostHandler(services.NewContentService(d.DB))
	categoryHandler := handlers.NewCategoryHandler(services.NewCategoryService(d.DB))
	uploadHandler := handlers.NewUploadHandler(
		services.NewUploadService(d.Config.Upload.Dir, d.Config.Upload.MaxBytes),
		d.Config.Upload.MaxBytes,
	)
	healthHandler := handlers.NewHealthHandler(d.DB)

	r.GET("/healthz", healthHandler.Healthz)
	r.Static(strings.TrimSuffix(services.UploadPrefix, "/"), d.Config.Upload.Dir)

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/posts", postHandler.List)
	api.GET("/posts/search", postHandler.Search)
	api.GET("/posts/slug/:slug", postHandler.GetBySlug)
	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:slug/posts", postHandler.ListByCategory)

	// Protected routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/auth/me", authHandler.Me)
		authorized.POST("/auth/logout", authHandler.Logout)

		authorized.GET("/me/posts", postHandler.Mine)
		authorized.POST("/posts", postHandler.Create)
		authorized.GET("/posts/:id", postHandler.GetByID)
		authorized.PATCH("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.POST("/posts/:id/toggle-publish", postHandler.TogglePublish)

		authorized.POST("/uploads", uploadHandler.Upload)
	}

	// Unknown API paths get JSON; browser navigations without a session
	// are sent to the login page.
	r.NoRoute(middleware.LoginRedirect("/register"), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "NOT_FOUND", "message": "Route not found"},
		})
	})
}
