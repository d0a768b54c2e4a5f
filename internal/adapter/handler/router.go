package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scrumscribe-team/scrumscribe/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	taskHandler    *Task
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, taskHandler *Task) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		taskHandler:    taskHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupTaskRoutes(v1)
}

// setupMeetingRoutes configures meeting import and read routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	meetingGroup.POST("/import", rt.meetingHandler.Import)
	meetingGroup.POST("/upload", rt.meetingHandler.Upload)
	meetingGroup.GET("", rt.meetingHandler.List)
	meetingGroup.GET("/:id", rt.meetingHandler.Get)
	meetingGroup.GET("/:id/tasks", rt.meetingHandler.ListTasks)
}

// setupTaskRoutes configures reviewer routes
func (rt *Router) setupTaskRoutes(g *echo.Group) {
	taskGroup := g.Group("/tasks")

	taskGroup.PATCH("/:id", rt.taskHandler.Update)
	taskGroup.POST("/approve", rt.taskHandler.Approve)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
