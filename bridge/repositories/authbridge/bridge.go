// Package authbridge contains the HTTP surface for registration and login.
package authbridge

import (
	"github.com/avelis/taskboard/core/auth"
	"github.com/avelis/taskboard/infrastructure/web"
	"github.com/avelis/taskboard/sdk/logger"
)

// Config holds configuration for the auth bridge.
type Config struct {
	Log        *logger.Logger
	Auth       *auth.Auth
	Middleware []web.Middleware
}

// AddHttpRoutes registers the auth routes on the group.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Auth)

	group.POST("/register", b.httpRegister, cfg.Middleware...)
	group.POST("/login", b.httpLogin, cfg.Middleware...)
}

type bridge struct {
	auth *auth.Auth
}

func newBridge(a *auth.Auth) *bridge {
	return &bridge{
		auth: a,
	}
}
