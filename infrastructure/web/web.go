// Package web contains a small web framework extension over net/http.
package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/avelis/taskboard/sdk/logger"
)

// Encoder defines behavior that can encode a data model and provide
// the content type for that encoding.
type Encoder interface {
	Encode() (data []byte, contentType string, err error)
}

// HandlerFunc represents a function that handles a http request within our
// own little mini framework.
type HandlerFunc func(ctx context.Context, r *http.Request) Encoder

// Middleware wraps a HandlerFunc with pre/post processing.
type Middleware func(HandlerFunc) HandlerFunc

// Telemetry represents a function that can call telemetry functions.
type Telemetry interface {
	SetTraceID(ctx context.Context) context.Context
	GetTraceID(ctx context.Context) string
}

// WebHandler is the entrypoint into our application and what configures our
// context object for each of our http handlers.
type WebHandler struct {
	mux              *http.ServeMux
	log              *logger.Logger
	telemetry        Telemetry
	globalMiddleware []Middleware
}

// NewWebHandler creates a WebHandler that handles a set of routes for the
// application. Global middleware runs for every registered route in the
// order given.
func NewWebHandler(log *logger.Logger, telemetry Telemetry, mw ...Middleware) *WebHandler {
	return &WebHandler{
		mux:              http.NewServeMux(),
		log:              log,
		telemetry:        telemetry,
		globalMiddleware: mw,
	}
}

// Handle registers a handler for the method and path with route middleware
// applied inside the global chain.
func (wh *WebHandler) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	finalHandler := wh.buildHandlerChain(handler, middleware...)

	httpHandler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if wh.telemetry != nil {
			ctx = wh.telemetry.SetTraceID(ctx)
		}
		ctx = setWriter(ctx, w)

		resp := finalHandler(ctx, r)

		if err := Respond(ctx, w, resp); err != nil && wh.log != nil {
			wh.log.ErrorContext(ctx, "web-respond", "err", err)
		}
	}

	pattern := fmt.Sprintf("%s %s", strings.ToUpper(method), path)
	wh.mux.HandleFunc(pattern, httpHandler)
}

// HandleRaw registers a raw http.Handler. Global middleware is not applied.
func (wh *WebHandler) HandleRaw(pattern string, handler http.Handler) {
	wh.mux.Handle(pattern, handler)
}

// ServeHTTP implements the http.Handler interface.
func (wh *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wh.mux.ServeHTTP(w, r)
}

func (wh *WebHandler) buildHandlerChain(handler HandlerFunc, middleware ...Middleware) HandlerFunc {
	allMiddleware := append(append([]Middleware{}, wh.globalMiddleware...), middleware...)

	final := handler
	for i := len(allMiddleware) - 1; i >= 0; i-- {
		final = allMiddleware[i](final)
	}

	return final
}
