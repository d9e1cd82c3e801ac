package movement

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FanOut ejecuta fn sobre items por tandas de chunk elementos: dentro de una tanda las
// llamadas corren en paralelo, las tandas van una tras otra. Devuelve el primer error.
func FanOut[T any](ctx context.Context, items []T, chunk int, fn func(ctx context.Context, i int, item T) error) error {
	if chunk <= 0 {
		chunk = 50
	}
	for start := 0; start < len(items); start += chunk {
		end := min(start+chunk, len(items))
		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				return fn(gctx, i, items[i])
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// Chunk parte items en tandas de hasta size elementos.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		out = append(out, items[start:min(start+size, len(items))])
	}
	return out
}
