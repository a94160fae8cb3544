package context

import (
	"context"

	plog "github.com/kodekoding/slackmate/go/log"
	"github.com/kodekoding/slackmate/go/monitoring"
	"github.com/kodekoding/slackmate/go/notifications"
	"github.com/kodekoding/slackmate/go/session"
)

type (
	sessionContext  struct{}
	logoutContext   struct{}
	notifierContext struct{}
)

// SetSession overrides, for calls made with the returned context, the session
// the request client reads its token from. A revoked token read from this session
// is signed out with logout, nil means the team stays signed in.
func SetSession(ctx context.Context, reader session.Reader, logout ...session.LogoutFunc) context.Context {
	ctx = context.WithValue(ctx, sessionContext{}, reader)
	var logoutFn session.LogoutFunc
	if len(logout) > 0 {
		logoutFn = logout[0]
	}
	return context.WithValue(ctx, logoutContext{}, logoutFn)
}

func GetSession(ctx context.Context) session.Reader {
	reader, valid := ctx.Value(sessionContext{}).(session.Reader)
	if !valid {
		return nil
	}
	return reader
}

// GetLogout returns the logout paired with the session override, nil when there is none
func GetLogout(ctx context.Context) session.LogoutFunc {
	logout, _ := ctx.Value(logoutContext{}).(session.LogoutFunc)
	return logout
}

// SetNotifier overrides where failure alerts go for calls made with the returned context
func SetNotifier(ctx context.Context, notifier notifications.Notifier) context.Context {
	return context.WithValue(ctx, notifierContext{}, notifier)
}

func GetNotifier(ctx context.Context) notifications.Notifier {
	notifier, valid := ctx.Value(notifierContext{}).(notifications.Notifier)
	if !valid {
		return nil
	}
	return notifier
}

// CreateAsyncContext detaches from ctx cancellation but keeps the session, logout and
// notifier overrides, the context logger and the trace id, for work that outlives the caller
func CreateAsyncContext(ctx context.Context) context.Context {
	asyncContext := plog.Ctx(ctx).WithContext(context.Background())
	if traceID := monitoring.TraceID(ctx); traceID != "" {
		asyncContext = monitoring.WithTraceID(asyncContext, traceID)
	}
	if reader := GetSession(ctx); reader != nil {
		asyncContext = SetSession(asyncContext, reader, GetLogout(ctx))
	}
	if notifier := GetNotifier(ctx); notifier != nil {
		asyncContext = SetNotifier(asyncContext, notifier)
	}
	return asyncContext
}
