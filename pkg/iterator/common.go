package iterator

import (
	"context"

	"flexdb/pkg/tuple"
)

// drain feeds the tuples of iter to visit until visit returns false, the
// iterator runs dry, or ctx is done. Nil tuples are skipped.
func drain(ctx context.Context, iter TupleIterator, visit func(*tuple.Tuple) bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := iter.HasNext()
		if err != nil || !ok {
			return err
		}
		tup, err := iter.Next()
		if err != nil {
			return err
		}
		if tup != nil && !visit(tup) {
			return nil
		}
	}
}

// Skip discards up to n tuples and returns how many it discarded. Running out
// of tuples first is not an error.
func Skip(ctx context.Context, iter TupleIterator, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	skipped := 0
	err := drain(ctx, iter, func(*tuple.Tuple) bool {
		skipped++
		return skipped < n
	})
	return skipped, err
}

// Take returns up to n tuples. A non-positive n takes nothing.
func Take(ctx context.Context, iter TupleIterator, n int) ([]*tuple.Tuple, error) {
	if n <= 0 {
		return nil, nil
	}
	out := make([]*tuple.Tuple, 0, min(n, 1024))
	err := drain(ctx, iter, func(tup *tuple.Tuple) bool {
		out = append(out, tup)
		return len(out) < n
	})
	return out, err
}

// Collect returns every remaining tuple.
func Collect(ctx context.Context, iter TupleIterator) ([]*tuple.Tuple, error) {
	var out []*tuple.Tuple
	err := drain(ctx, iter, func(tup *tuple.Tuple) bool {
		out = append(out, tup)
		return true
	})
	return out, err
}
