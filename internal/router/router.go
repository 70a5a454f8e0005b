package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/blogapi/internal/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options 描述路由层需要的外部配置
type Options struct {
	Logger       *slog.Logger
	CORSOrigins  []string
	ExposeErrors bool
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	api := handler.NewAPI(gdb, handler.Options{
		Logger:       log,
		ExposeErrors: opts.ExposeErrors,
	})

	r := gin.New()
	r.Use(handler.RequestLogger(log))
	r.Use(handler.Metrics())

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 放在日志与指标之内，panic 产生的 500 同样会被记录
	r.Use(api.Recovery())

	r.GET("/", api.Root)
	r.GET("/health", api.Health)
	r.GET("/metrics", handler.MetricsHandler())

	apiGroup := r.Group("/api")
	{
		posts := apiGroup.Group("/posts")
		posts.GET("", api.ListPosts)
		posts.GET("/:id", api.GetPost)
		posts.GET("/:id/preview", api.PreviewPost)
		posts.POST("", api.CreatePost)
		posts.PUT("/:id", api.UpdatePost)
		posts.DELETE("/:id", api.DeletePost)

		categories := apiGroup.Group("/categories")
		categories.GET("", api.ListCategories)
		categories.GET("/:id", api.GetCategory)
		categories.POST("", api.CreateCategory)
		categories.PUT("/:id", api.UpdateCategory)
		categories.DELETE("/:id", api.DeleteCategory)
	}

	r.NoRoute(api.NotFound)

	return r
}
