package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kabarin/kabar/internal/apperr"
	"github.com/kabarin/kabar/internal/auth"
	"github.com/kabarin/kabar/internal/config"
	"github.com/kabarin/kabar/internal/database"
	"github.com/kabarin/kabar/internal/database/articles"
	"github.com/kabarin/kabar/internal/database/bookmarks"
	"github.com/kabarin/kabar/internal/database/categories"
	"github.com/kabarin/kabar/internal/database/comments"
	"github.com/kabarin/kabar/internal/database/users"
)

// RouterConfig carries all router dependencies, improving testability and
// reducing parameter count.
type RouterConfig struct {
	Database    *database.Database
	AuthService *auth.Service
	TokenCodec  *auth.TokenCodec
	AuthConfig  config.Auth
	CORSOrigin  string
	Version     string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.CORSOrigin != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.CORSOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
		}))
	}

	// Centralized error handling: middlewares and handlers record errors on
	// the context; this renders them as the {success, message} envelope.
	router.Use(apperr.Handler())

	authRequired := auth.Middleware(cfg.AuthService, cfg.TokenCodec)

	db := cfg.Database.DB
	articleRepo := articles.NewRepository(db)
	categoryRepo := categories.NewRepository(db)
	commentRepo := comments.NewRepository(db)
	bookmarkRepo := bookmarks.NewRepository(db)
	userRepo := users.NewRepository(db)

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService, cfg.TokenCodec, cfg.AuthConfig)
	articlesController := NewArticlesController(articleRepo, categoryRepo)
	categoriesController := NewCategoriesController(categoryRepo)
	commentsController := NewCommentsController(commentRepo, articleRepo)
	bookmarksController := NewBookmarksController(bookmarkRepo, articleRepo)
	usersController := NewUsersController(userRepo)

	router.GET("/health", health.Status)

	api := router.Group("/api")

	authController.RegisterRoutes(api, authRequired)

	// Public content
	api.GET("/articles", articlesController.List)
	api.GET("/articles/:slug", articlesController.Get)
	api.POST("/articles/:slug/share", articlesController.Share)
	api.GET("/categories", categoriesController.List)
	api.GET("/articles/:slug/comments", commentsController.ListByArticle)

	// Authenticated
	protected := api.Group("", authRequired)
	protected.POST("/articles/:slug/comments", commentsController.Create)
	protected.DELETE("/comments/:id", commentsController.Delete)
	protected.GET("/bookmarks", bookmarksController.List)
	protected.POST("/articles/:slug/bookmark", bookmarksController.Create)
	protected.DELETE("/articles/:slug/bookmark", bookmarksController.Delete)
	protected.PUT("/users/language", usersController.UpdateLanguage)

	// Admin
	admin := protected.Group("", auth.RequireAdmin())
	admin.POST("/articles", articlesController.Create)
	admin.PUT("/articles/:slug", articlesController.Update)
	admin.DELETE("/articles/:slug", articlesController.Delete)

	return router
}
