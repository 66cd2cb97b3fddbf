package http

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	"task-tracker.com/task-tracker/internal/limiter"
)

type RouteOptions struct {
	Limiter          limiter.Limiter
	CORSAllowOrigins []string
}

func Register(e *echo.Echo, h *Handler, opts RouteOptions) {
	e.HTTPErrorHandler = middleware.ErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: opts.CORSAllowOrigins,
	}))
	if opts.Limiter != nil {
		e.Use(middleware.RateLimiter(opts.Limiter))
	}

	e.GET("/health", h.Health)

	e.GET("/tasks", h.ListTasks)
	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.GetTask)
	e.PUT("/tasks/:id", h.UpdateTask)
	e.DELETE("/tasks/:id", h.DeleteTask)
}
