package engine

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// ErrTimeout is returned when a recipe runs past its deadline.
var ErrTimeout = errors.New("engine: evaluation timed out")

// evalResult carries an evaluation outcome back from its goroutine.
type evalResult struct {
	recipe *Recipe
	errors []EvalError
	err    error
}

// await returns the result sent on ch, or an error once ctx is done. ch
// must be buffered: an evaluation that finishes after the deadline still
// sends, and that result is dropped.
func await(ctx context.Context, ch <-chan evalResult) (*Recipe, []EvalError, error) {
	select {
	case res := <-ch:
		return res.recipe, res.errors, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, ErrTimeout
		}
		return nil, nil, fmt.Errorf("engine: %w", ctx.Err())
	}
}
