// Package app assembles the API from its configuration and connections.
//
// App is built once at startup and owns every dependency a handler needs;
// nothing is reached through package level state.
package app

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"courseapi/internal/cache"
	"courseapi/internal/config"
	"courseapi/internal/handler"
	"courseapi/internal/repository"
	"courseapi/internal/router"
	"courseapi/internal/service"
)

// App is the application context.
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Cache  *cache.Client
	Echo   *echo.Echo

	Users   service.UserService
	Courses service.CourseService
	Auth    service.AuthService
}

// New wires repositories, services, handlers and routes. cacheClient may be nil.
func New(cfg *config.Config, gormDB *gorm.DB, cacheClient *cache.Client) *App {
	e := echo.New()
	e.HideBanner = true

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, nil)
	userService := service.NewUserService(userRepo)
	courseService := service.NewCourseService(courseRepo, cacheClient, cfg.CacheTTL)

	// Register routes
	router.Register(
		e,
		authService,
		handler.NewUserHandler(userService),
		handler.NewCourseHandler(courseService),
	)

	return &App{
		Config:  cfg,
		DB:      gormDB,
		Cache:   cacheClient,
		Echo:    e,
		Users:   userService,
		Courses: courseService,
		Auth:    authService,
	}
}

// Start listens on the configured port until the server is shut down.
func (a *App) Start() error {
	return a.Echo.Start(":" + a.Config.ServerPort)
}
