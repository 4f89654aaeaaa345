package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	iauth "github.com/titoscorner/backend/internal/auth"
	"github.com/titoscorner/backend/internal/cache"
	"github.com/titoscorner/backend/internal/handlers"
	"github.com/titoscorner/backend/internal/middleware"
	"github.com/titoscorner/backend/internal/services"
)

// RouterConfig carries the HTTP-surface settings the router needs.
type RouterConfig struct {
	AllowedOrigins  []string
	RateLimitMax    int
	RateLimitWindow time.Duration
	RateStore       middleware.RateStore
}

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, cacheMgr *cache.Manager, jwt *iauth.JWTService, cfg RouterConfig) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}

	blogSvc, err := services.NewBlogService(db, cacheMgr)
	if err != nil {
		return nil, err
	}
	ebookSvc, err := services.NewEbookService(db, cacheMgr)
	if err != nil {
		return nil, err
	}
	podcastSvc, err := services.NewPodcastService(db, cacheMgr)
	if err != nil {
		return nil, err
	}
	recipeSvc, err := services.NewRecipeService(db, cacheMgr)
	if err != nil {
		return nil, err
	}
	cartSvc, err := services.NewCartService(db, cacheMgr)
	if err != nil {
		return nil, err
	}
	userSvc, err := services.NewUserService(db, cacheMgr)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.AllowedOrigins...))
	r.Use(middleware.RateLimit(cfg.RateStore, cfg.RateLimitMax, cfg.RateLimitWindow))

	r.GET("/health", handlers.Health())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.Auth(jwt)
	requireAdmin := middleware.RequireAdmin()

	// Users
	userHandler := handlers.NewUserHandler(userSvc, jwt)
	users := r.Group("/api/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)

		users.GET("", requireAuth, requireAdmin, userHandler.List)
		users.GET("/find/:id", requireAuth, requireAdmin, userHandler.Get)
		users.PUT("/update/:id", requireAuth, requireAdmin, userHandler.Update)
		users.DELETE("/delete/:id", requireAuth, requireAdmin, userHandler.Delete)
	}

	// Blogs: public reads, admin mutations
	blogHandler := handlers.NewBlogHandler(blogSvc)
	blogs := r.Group("/api/blogs")
	{
		blogs.GET("", blogHandler.List)
		blogs.GET("/find/:id", blogHandler.Get)
		blogs.POST("/post", requireAuth, requireAdmin, blogHandler.Create)
		blogs.PUT("/update/:id", requireAuth, requireAdmin, blogHandler.Update)
		blogs.DELETE("/delete/:id", requireAuth, requireAdmin, blogHandler.Delete)
	}

	// Ebooks
	ebookHandler := handlers.NewEbookHandler(ebookSvc)
	ebooks := r.Group("/api/ebooks")
	{
		ebooks.GET("", ebookHandler.List)
		ebooks.GET("/find/:id", ebookHandler.Get)
		ebooks.POST("/upload", requireAuth, requireAdmin, ebookHandler.Create)
		ebooks.PUT("/update/:id", requireAuth, requireAdmin, ebookHandler.Update)
		ebooks.DELETE("/delete/:id", requireAuth, requireAdmin, ebookHandler.Delete)
	}

	// Podcasts
	podcastHandler := handlers.NewPodcastHandler(podcastSvc)
	podcasts := r.Group("/api/podcasts")
	{
		podcasts.GET("", podcastHandler.List)
		podcasts.GET("/find/:id", podcastHandler.Get)
		podcasts.POST("/upload", requireAuth, requireAdmin, podcastHandler.Create)
		podcasts.PUT("/update/:id", requireAuth, requireAdmin, podcastHandler.Update)
		podcasts.DELETE("/delete/:id", requireAuth, requireAdmin, podcastHandler.Delete)
	}

	// Recipes
	recipeHandler := handlers.NewRecipeHandler(recipeSvc)
	recipes := r.Group("/api/recipes")
	{
		recipes.GET("", recipeHandler.List)
		recipes.GET("/find/:id", recipeHandler.Get)
		recipes.POST("/upload", requireAuth, requireAdmin, recipeHandler.Create)
		recipes.PUT("/update/:id", requireAuth, requireAdmin, recipeHandler.Update)
		recipes.DELETE("/delete/:id", requireAuth, requireAdmin, recipeHandler.Delete)
	}

	// Cart: every route requires an authenticated user
	cartHandler := handlers.NewCartHandler(cartSvc)
	cart := r.Group("/api/cart", requireAuth)
	{
		cart.GET("", cartHandler.List)
		cart.GET("/find/:id", cartHandler.Get)
		cart.POST("/post", cartHandler.Create)
		cart.PUT("/update/:id", cartHandler.Update)
		cart.DELETE("/delete/:id", cartHandler.Delete)
	}

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
