package concurrent

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// PanicError wraps a value recovered from a panicking action.
type PanicError struct {
	Value any
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("recovered panic: %v", p.Value)
}

// ForEach runs action for every item with at most limit goroutines in flight.
// A limit below one runs the items sequentially in the caller goroutine.
// The first error cancels the context handed to remaining actions and is
// returned once every started action has finished.
func ForEach[T any](ctx context.Context, items []T, limit int, action func(context.Context, T) error) error {
	if limit <= 1 {
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := action(ctx, item); err != nil {
				return err
			}
		}
		return nil
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			return action(gctx, item)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Safe wraps fn so that a panic is returned as a *PanicError instead of
// unwinding the goroutine.
func Safe[T any](fn func(context.Context, T) error) func(context.Context, T) error {
	return func(ctx context.Context, item T) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r}
			}
		}()
		return fn(ctx, item)
	}
}
