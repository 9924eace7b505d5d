// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - upper limit on encoded size of one Varint64
const Varint64MaximumBytes = 9

// ToVarint64 - encode a 64 bit unsigned integer as a Varint64
//
// seven value bits per byte, LSB first, high bit of each byte is the
// continuation flag; a ninth byte, if present, carries the top eight
// bits unflagged
func ToVarint64(value uint64) []byte {
	buffer := make([]byte, 0, Varint64MaximumBytes)
	if value < 0x80 {
		return append(buffer, byte(value))
	}

	for i := 0; i < Varint64MaximumBytes && value != 0; i += 1 {
		b := byte(value)
		if value >= 0x80 {
			b |= 0x80
		} else {
			b &= 0x7f
		}
		buffer = append(buffer, b)
		value >>= 7
	}
	return buffer
}

// FromVarint64 - decode a Varint64 from the start of a buffer
//
// returns the value and the number of bytes consumed
// a truncated or empty buffer decodes as (0, 0)
func FromVarint64(buffer []byte) (uint64, int) {
	value := uint64(0)
	shift := uint(0)

	for i, b := range buffer {
		if i+1 == Varint64MaximumBytes {
			value |= uint64(b) << shift
			return value, i + 1
		}
		value |= uint64(b&0x7f) << shift
		if 0 == b&0x80 {
			return value, i + 1
		}
		shift += 7
	}
	return 0, 0
}

// ClippedVarint64 - decode a Varint64 restricted to minimum..maximum
//
// any decode failure or out of range value returns (0, 0)
func ClippedVarint64(buffer []byte, minimum int, maximum int) (int, int) {
	if minimum < 0 || maximum < 0 || minimum >= maximum {
		return 0, 0
	}

	value, count := FromVarint64(buffer)
	if 0 == count {
		return 0, 0
	}
	n := int(value)
	if n < minimum || n > maximum {
		return 0, 0
	}
	return n, count
}
