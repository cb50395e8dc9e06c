/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package concurrent

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gotest.tools/assert"
)

func TestForEach(t *testing.T) {
	t.Run("collects per-index results and errors", func(t *testing.T) {
		failed := errors.New("failed")
		results, errs := ForEach(context.Background(), 3, time.Second,
			func(_ context.Context, idx int) (int, error) {
				if idx == 1 {
					return 0, failed
				}
				return idx * 10, nil
			})
		assert.Equal(t, 3, len(errs))
		assert.NilError(t, errs[0])
		assert.ErrorContains(t, errs[1], "failed")
		assert.NilError(t, errs[2])
		assert.Equal(t, 0, results[0])
		assert.Equal(t, 20, results[2])
	})

	t.Run("slow index times out alone", func(t *testing.T) {
		start := time.Now()
		results, errs := ForEach(context.Background(), 3, 50*time.Millisecond,
			func(ctx context.Context, idx int) (string, error) {
				if idx == 2 {
					select {
					case <-time.After(time.Second):
					case <-ctx.Done():
					}
					return "late", ctx.Err()
				}
				return "ok", nil
			})
		assert.Equal(t, "ok", results[0])
		assert.Equal(t, "ok", results[1])
		assert.ErrorContains(t, errs[2], context.DeadlineExceeded.Error())
		// the slow index is abandoned at the timeout, not awaited
		assert.Equal(t, "", results[2])
		assert.Assert(t, time.Since(start) < 500*time.Millisecond)
	})

	t.Run("abandoned call never commits its result", func(t *testing.T) {
		released := make(chan struct{})
		var finished atomic.Bool
		results, errs := ForEach(context.Background(), 1, 20*time.Millisecond,
			func(_ context.Context, _ int) (int, error) {
				<-released
				finished.Store(true)
				return 42, nil
			})
		assert.ErrorContains(t, errs[0], context.DeadlineExceeded.Error())
		assert.Equal(t, 0, results[0])

		// Let the abandoned call complete; the committed slot must not move.
		close(released)
		for i := 0; i < 100 && !finished.Load(); i++ {
			time.Sleep(time.Millisecond)
		}
		assert.Assert(t, finished.Load())
		assert.Equal(t, 0, results[0])
	})

	t.Run("zero count", func(t *testing.T) {
		results, errs := ForEach[int](context.Background(), 0, time.Second, nil)
		assert.Equal(t, 0, len(results))
		assert.Equal(t, 0, len(errs))
	})

	t.Run("no timeout", func(t *testing.T) {
		_, errs := ForEach(context.Background(), 2, 0,
			func(_ context.Context, _ int) (struct{}, error) { return struct{}{}, nil })
		assert.NilError(t, errs[0])
		assert.NilError(t, errs[1])
	})
}
