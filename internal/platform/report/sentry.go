package report

import (
	"context"
	"log"
	"time"

	"github.com/getsentry/sentry-go"

	"meeting-point-service/internal/platform/obs"
)

// Setup initializes Sentry. With an empty DSN the SDK stays disabled and
// every capture becomes a no-op.
func Setup(dsn, env string) error {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
	}); err != nil {
		return err
	}
	if dsn != "" {
		log.Printf("sentry enabled env=%s", env)
	}
	return nil
}

func Flush() {
	sentry.Flush(2 * time.Second)
}

// CaptureError reports err with the request id and operation as tags.
func CaptureError(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("op", op)
		if reqID := obs.RequestID(ctx); reqID != "" {
			scope.SetTag("req_id", reqID)
		}
		scope.SetLevel(sentry.LevelError)
	})
	hub.CaptureException(err)
}
