package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNew(t *testing.T) {
	engine, err := New(WithTimeZone("Asia/Jakarta"))
	require.NoError(t, err)
	require.NotNil(t, engine)

	_, err = New(WithTimeZone("Nowhere/Invalid"))
	require.Error(t, err)
}

func TestRegisterScheduler(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	noop := func(context.Context) {}
	require.NoError(t, engine.RegisterScheduler("@every 1h", noop))
	require.Error(t, engine.RegisterScheduler("not a pattern", noop))
	require.Equal(t, 1, engine.handlerTotal)

	engine.Start()
	engine.Stop()
}

func TestEngine_RunsHandler(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	engine, err := New(WithTimeoutProcess(time.Second))
	require.NoError(t, err)

	ran := make(chan struct{}, 1)
	require.NoError(t, engine.RegisterScheduler("@every 1s", func(ctx context.Context) {
		_, hasDeadline := ctx.Deadline()
		if hasDeadline {
			select {
			case ran <- struct{}{}:
			default:
			}
		}
	}))

	engine.Start()
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not run")
	}
	engine.Stop()
}
