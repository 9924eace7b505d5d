// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - atomic counters shared between concurrent
// submissions, used for per-node health scores
package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit unsigned integer with atomic update operations
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Set - store an absolute value, returns that value
func (ic *Counter) Set(value uint64) uint64 {
	atomic.StoreUint64((*uint64)(ic), value)
	return value
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// IsZero - check if zero
func (ic *Counter) IsZero() bool {
	return 0 == atomic.LoadUint64((*uint64)(ic))
}
