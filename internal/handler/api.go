package handler

import (
	"log/slog"

	"github.com/blogapi/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	posts        *service.PostService
	categories   *service.CategoryService
	log          *slog.Logger
	exposeErrors bool
}

// Options tune how the handlers report failures.
type Options struct {
	Logger *slog.Logger
	// ExposeErrors adds the underlying error text to 500 responses.
	ExposeErrors bool
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	validator := service.NewValidator()
	categories := service.NewCategoryService(gdb, validator)

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &API{
		db:           gdb,
		posts:        service.NewPostService(gdb, categories, validator),
		categories:   categories,
		log:          log,
		exposeErrors: opts.ExposeErrors,
	}
}

// DB exposes the underlying gorm instance for health checks.
func (a *API) DB() *gorm.DB {
	return a.db
}
