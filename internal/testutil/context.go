package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout возвращает context, который отменяется по таймауту
// или при завершении теста.
func ContextWithTimeout(tb testing.TB, d time.Duration) context.Context {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	tb.Cleanup(cancel)
	return ctx
}

// ContextWithCancel is ContextWithTimeout without the deadline. Tests cancel
// it to stop Run loops; Cleanup cancels it otherwise.
func ContextWithCancel(tb testing.TB) (context.Context, context.CancelFunc) {
	tb.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	tb.Cleanup(cancel)
	return ctx, cancel
}

// RunAsync starts run on its own goroutine and returns its result channel.
func RunAsync(ctx context.Context, run func(context.Context) error) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx) }()
	return errCh
}
