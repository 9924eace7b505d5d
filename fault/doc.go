// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
//
// Errors that carry context, such as a checksum failure naming its
// entity, are built directly from a class and matched with the
// IsErr… helpers
//
// The error classes mirror how failures are handled:
//
//	UsageError      caller misuse, never retried
//	ValidationError bad identifiers or checksums, never retried
//	TransientError  busy/unavailable network conditions, retried with backoff
//	RejectedError   definitive network rejection, never retried
//	DeadlineError   caller supplied timeout elapsed
package fault
