package util

import (
	"fmt"

	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
)

type FatalErrorHandler struct {
	ContinueOnError bool
}

func NewErrorHandler(continueOnError bool) *FatalErrorHandler {
	return &FatalErrorHandler{
		ContinueOnError: continueOnError,
	}
}

// Handle logs the error and returns nil when processing should go on,
// otherwise it returns the described error.
func (h *FatalErrorHandler) Handle(err error, format string, args ...interface{}) error {
	if err == nil {
		if h.ContinueOnError {
			log.Error(fmt.Sprintf(format, args...))
			return nil
		}

		return fmt.Errorf(format, args...)
	}

	if h.ContinueOnError {
		log.Errorf(err, format, args...)
		return nil
	}

	return karma.Format(err, format, args...)
}
