package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/shandysiswandi/otpgate/internal/pkg/stacktrace"
)

func callHandlerWithRecover(ctx context.Context, driver, topic string, fn func() error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			stack := debug.Stack()
			var trace any = string(stack)
			if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
				trace = paths
			}
			slog.ErrorContext(ctx, "panic in message handler", "driver", driver, "topic", topic, "panic", rvr, "stack", trace)
			err = fmt.Errorf("messaging: panic in %s handler: %v", driver, rvr)
		}
	}()

	if err = fn(); err != nil {
		slog.WarnContext(ctx, "message handler failed", "driver", driver, "topic", topic, "error", err)
	}
	return err
}
