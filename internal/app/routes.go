package app

import (
	"database/sql"

	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/cache"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/config"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/handlers"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/repo"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, log zerolog.Logger, db *sql.DB, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	userRepo := repo.NewSQLUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(userSvc, log)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	var listCache service.ListCache
	if rdb != nil {
		listCache = cache.NewTaskCache(rdb, cfg.Redis.DefaultTTL.Duration())
	}
	taskRepo := repo.NewSQLTaskRepo(db)
	taskSvc := service.NewTaskService(taskRepo, listCache, log)
	taskHandler := handlers.NewTaskHandler(taskSvc, log)
	r.GET("/tasks", taskHandler.List)
	r.POST("/tasks", taskHandler.Create)
	r.PUT("/tasks/:task_id", taskHandler.Update)
	r.DELETE("/tasks/:task_id", taskHandler.Delete)
	r.GET("/cache/ping", taskHandler.CachePing)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Gerenciador de Tarefas",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
