/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package concurrent

import (
	"context"
	"sync"
	"time"
)

type outcome[T any] struct {
	value T
	err   error
}

// ForEach runs fn once per index concurrently, giving every invocation its
// own context bounded by timeout (in addition to any deadline already on
// ctx). It waits for every invocation to either finish or time out and
// returns the per-index results and errors; a slow index never blocks the
// others.
//
// A timed-out invocation is abandoned, and its result is discarded: fn hands
// its value back through a channel and only the selecting goroutine commits
// it, so an abandoned call can never write into the returned slices after
// ForEach has handed them to the caller. The slot of a timed-out index holds
// the zero value and its error is the context error.
func ForEach[T any](ctx context.Context, count int, timeout time.Duration, fn func(ctx context.Context, idx int) (T, error)) ([]T, []error) {
	if count <= 0 || fn == nil {
		return nil, nil
	}
	results := make([]T, count)
	errs := make([]error, count)
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func(idx int) {
			defer wg.Done()
			subCtx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				subCtx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			done := make(chan outcome[T], 1)
			go func() {
				var out outcome[T]
				out.value, out.err = fn(subCtx, idx)
				done <- out
			}()
			select {
			case out := <-done:
				results[idx], errs[idx] = out.value, out.err
			case <-subCtx.Done():
				// The in-flight call is abandoned, not awaited; whatever it
				// eventually produces stays in its own channel.
				errs[idx] = subCtx.Err()
			}
		}(i)
	}
	wg.Wait()
	return results, errs
}
