// internal/app/system/fanout/fanout.go

// Package fanout resolves large foreign-key lists around the store's
// membership-query cardinality limit.
package fanout

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize matches the store's membership-query value limit.
const DefaultChunkSize = 10

// FetchFunc loads the entities for one chunk of ids. Result order is
// unspecified; missing ids are simply absent from the result.
type FetchFunc[T any] func(ctx context.Context, ids []string) ([]T, error)

// Resolve loads the entities for ids, issuing one membership query per chunk
// of at most chunkSize ids. Chunk queries run concurrently; the merged result
// is re-sorted to the order ids first appear in the input. Ids that resolve
// to nothing are omitted without error, so the output never exceeds the input
// in cardinality.
func Resolve[T any](ctx context.Context, ids []string, chunkSize int, fetch FetchFunc[T], key func(T) string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var (
		mu      sync.Mutex
		fetched = make(map[string]T, len(ids))
	)

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(ids); start += chunkSize {
		end := start + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]
		g.Go(func() error {
			rows, err := fetch(ctx, chunk)
			if err != nil {
				return err
			}
			mu.Lock()
			for _, row := range rows {
				fetched[key(row)] = row
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Restore caller order; duplicates in the input yield one entity at the
	// position of the first occurrence.
	out := make([]T, 0, len(fetched))
	seen := make(map[string]bool, len(fetched))
	for _, id := range ids {
		row, ok := fetched[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, row)
	}
	return out, nil
}
