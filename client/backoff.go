// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"math/rand"
	"time"

	"github.com/meridian-net/meridian-sdk-go/fault"
)

// RetryPolicy - submission retry parameters
//
// the delay before attempt N is a random value in
// (0, min(BaseDelay·2^N, MaxDelay)]; Timeout bounds the whole
// operation including polling
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Timeout     time.Duration
}

// DefaultRetryPolicy - settings suitable for public networks
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 10,
		BaseDelay:   250 * time.Millisecond,
		MaxDelay:    8 * time.Second,
		Timeout:     2 * time.Minute,
	}
}

// exponential backoff with full jitter
func backoffDelay(attempt int, policy RetryPolicy) time.Duration {
	base := policy.BaseDelay
	if base <= 0 {
		base = 250 * time.Millisecond
	}
	maximum := policy.MaxDelay
	if maximum <= 0 {
		maximum = 8 * time.Second
	}

	delay := base
	for i := 0; i < attempt && delay < maximum; i += 1 {
		delay <<= 1
	}
	if delay > maximum {
		delay = maximum
	}
	return time.Duration(rand.Int63n(int64(delay))) + 1
}

// sleep that honours cancellation
func sleepWithContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fault.ErrDeadlineExceeded
	case <-timer.C:
		return nil
	}
}
