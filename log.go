package cutscene

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

var (
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	defaultLogger atomic.Pointer[slog.Logger]
)

func init() {
	defaultLogger.Store(discardLogger)
}

// SetLogging makes schedulers created afterwards without
// WithLogger log to slog.Default(). Logging is off by default.
func SetLogging(enable bool) {
	if enable {
		defaultLogger.Store(slog.Default())
	} else {
		defaultLogger.Store(discardLogger)
	}
}

// taskName is how tasks show up in logs and errors.
func taskName(task Task) string {
	if s, ok := task.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", task)
}
