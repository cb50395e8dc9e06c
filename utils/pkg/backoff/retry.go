/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package backoff

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryCount executes an operation at most attempts times with exponential
// backoff starting from baseInterval. Used on read paths where the retry
// budget is a fixed attempt count rather than an elapsed-time window.
// Mutations are deliberately not routed through here.
//
// Parameters:
//   - op: The operation function to execute, which should return an error
//   - attempts: Total number of attempts, including the first one
//   - baseInterval: Initial interval between attempts
//
// Returns:
//   - error: The last error returned by the operation, or nil if operation succeeded
func RetryCount(op backoff.Operation, attempts uint64, baseInterval time.Duration) error {
	if attempts == 0 {
		return nil
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = baseInterval
	return backoff.Retry(op, backoff.WithMaxRetries(b, attempts-1))
}
