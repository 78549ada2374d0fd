// Package tasksrepobridge contains the HTTP surface for task documents.
package tasksrepobridge

import (
	"github.com/avelis/taskboard/core/repositories/tasksrepo"
	"github.com/avelis/taskboard/infrastructure/web"
	"github.com/avelis/taskboard/sdk/logger"
)

// Config holds configuration for the task bridge.
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for tasks on the group.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Repository)

	group.POST("/tasks", b.httpCreate, cfg.Middleware...)
	group.GET("/tasks", b.httpList, cfg.Middleware...)
	group.GET("/tasks/{task_id}", b.httpGetByID, cfg.Middleware...)
	group.PATCH("/tasks/{task_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/tasks/{task_id}", b.httpDelete, cfg.Middleware...)
}

type bridge struct {
	tasksRepository *tasksrepo.Repository
}

func newBridge(tasksRepository *tasksrepo.Repository) *bridge {
	return &bridge{
		tasksRepository: tasksRepository,
	}
}
