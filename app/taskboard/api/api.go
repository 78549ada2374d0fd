// Package api wires the HTTP routes for the taskboard service.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/avelis/taskboard/bridge/repositories/authbridge"
	"github.com/avelis/taskboard/bridge/repositories/tasksrepobridge"
	"github.com/avelis/taskboard/core/auth"
	"github.com/avelis/taskboard/core/repositories/tasksrepo"
	"github.com/avelis/taskboard/infrastructure/web"
	"github.com/avelis/taskboard/sdk/logger"
)

// Config carries everything the route table needs.
type Config struct {
	Build string
	Log   *logger.Logger
	Auth  *auth.Auth
	Tasks *tasksrepo.Repository
}

// AddHandlers registers the service routes. Resource routes live under
// /api/v1, the health route stays at the root.
func AddHandlers(app *web.WebHandler, cfg Config) {
	api := app.Group("/api/v1")

	authbridge.AddHttpRoutes(api, authbridge.Config{
		Log:  cfg.Log,
		Auth: cfg.Auth,
	})

	tasksrepobridge.AddHttpRoutes(api, tasksrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.Tasks,
	})

	app.GET("/{$}", healthHandler(cfg.Build))
}

type healthResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Build     string `json:"build"`
}

func healthHandler(build string) web.HandlerFunc {
	return func(ctx context.Context, r *http.Request) web.Encoder {
		resp := healthResponse{
			Message:   "Server is up and running",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Build:     build,
		}
		return web.NewJSONResponse(resp)
	}
}
