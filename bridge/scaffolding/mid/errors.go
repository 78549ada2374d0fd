package mid

import (
	"context"
	"errors"
	"net/http"
	"path"

	"github.com/avelis/taskboard/bridge/scaffolding/errs"
	"github.com/avelis/taskboard/infrastructure/web"
	"github.com/avelis/taskboard/sdk/logger"
)

// Errors handles errors coming out of the call chain. Anything that is not
// already an *errs.Error becomes a generic internal error, and internal
// detail is only ever logged, never returned to the caller.
func Errors(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			var appErr *errs.Error
			if !errors.As(err, &appErr) {
				appErr = errs.Newf(errs.Internal, "Internal server error")
			}

			log.ErrorContext(ctx, "handled error during request",
				"err", err,
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			if appErr.Code == errs.InternalOnlyLog {
				appErr = errs.Newf(errs.Internal, "Internal server error")
			}

			return appErr
		}
	}
}
