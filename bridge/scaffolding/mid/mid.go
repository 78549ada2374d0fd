// Package mid provides app level middleware support.
package mid

import (
	"github.com/avelis/taskboard/infrastructure/web"
)

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}

// httpStatus lets the logging middleware report the status an encoder
// will render with.
type httpStatus interface {
	HTTPStatus() int
}

func statusOf(e web.Encoder) int {
	if v, ok := e.(httpStatus); ok {
		return v.HTTPStatus()
	}
	if isError(e) != nil {
		return 500
	}
	return 200
}
