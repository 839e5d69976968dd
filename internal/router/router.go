package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"synapshare/internal/config"
	"synapshare/internal/content"
	"synapshare/internal/handlers"
	"synapshare/internal/identity"
	"synapshare/internal/middleware"
	"synapshare/internal/models"
	"synapshare/internal/services"
	"synapshare/internal/storage"
	"synapshare/internal/users"
)

// Deps is everything the HTTP surface needs, built once in main (or in a
// test) and passed in. No package globals.
type Deps struct {
	Cfg      *config.Config
	Log      *logrus.Logger
	DB       *gorm.DB
	Verifier identity.Verifier
	Users    *users.Store
	Files    *storage.FileStore
	News     *services.NewsService

	Notes       *content.Store[models.Note, *models.Note]
	Discussions *content.Store[models.Discussion, *models.Discussion]
	Nodes       *content.Store[models.Node, *models.Node]
}

// New assembles the engine with all routes registered.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(d.Cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = d.Cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.Static("/uploads", d.Cfg.UploadDir)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	Register(r, d)
	return r
}

// Register wires all /api routes.
func Register(r *gin.Engine, d Deps) {
	noteHandler := handlers.NewContentHandler[models.Note, *models.Note](d.Notes, d.Files, d.Log)
	discussionHandler := handlers.NewContentHandler[models.Discussion, *models.Discussion](d.Discussions, d.Files, d.Log)
	nodeHandler := handlers.NewContentHandler[models.Node, *models.Node](d.Nodes, d.Files, d.Log)
	userHandler := handlers.NewUserHandler(d.Users, d.Verifier, d.Log)
	adminHandler := handlers.NewAdminHandler(d.Users, d.Log)
	savedHandler := handlers.NewSavedPostsHandler(d.DB, d.Log)
	searchHandler := handlers.NewSearchHandler(d.Notes, d.Discussions, d.Nodes, d.Log)
	newsHandler := handlers.NewNewsHandler(d.News, d.Log)

	api := r.Group("/api")
	if d.Cfg.RateLimitRPS > 0 {
		burst := int(d.Cfg.RateLimitRPS)*2 + 1
		api.Use(middleware.RateLimit(d.Cfg.RateLimitRPS, burst))
	}

	auth := middleware.Auth(d.Verifier, d.Users, d.Cfg.IsAdmin, d.Log)
	named := middleware.NameRequired()

	// Public surface.
	api.GET("/search", searchHandler.Search)
	api.GET("/news", newsHandler.Headlines)
	api.POST("/check-username", userHandler.CheckUsername)
	api.POST("/request-password-reset", userHandler.RequestPasswordReset)

	registerContent(api, "notes", auth, named, noteHandler)
	registerContent(api, "discussions", auth, named, discussionHandler)
	registerContent(api, "nodes", auth, named, nodeHandler)

	// Authenticated, no username needed yet.
	authed := api.Group("", auth)
	authed.GET("/user/:uid", userHandler.Profile)
	authed.POST("/save-username", userHandler.SaveUsername)

	saved := api.Group("/savedPosts", auth, named)
	saved.GET("", savedHandler.List)
	saved.POST("", savedHandler.Save)

	// Admin surface.
	admin := api.Group("", auth, middleware.AdminRequired())
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:uid", adminHandler.DeleteUser)
	admin.DELETE("/admin/notes/:id", noteHandler.AdminDelete)
	admin.DELETE("/admin/discussions/:id", discussionHandler.AdminDelete)
	admin.DELETE("/admin/nodes/:id", nodeHandler.AdminDelete)
}

func registerContent[T any, P content.Item[T]](api *gin.RouterGroup, path string, auth, named gin.HandlerFunc, h *handlers.ContentHandler[T, P]) {
	api.GET("/"+path, h.List)

	g := api.Group("/"+path, auth, named)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/upvote", h.Upvote)
	g.POST("/:id/downvote", h.Downvote)
	g.POST("/:id/comments", h.AddComment)
}
