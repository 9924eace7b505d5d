// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"strings"
)

// FormatBytes - dump a byte slice as Go source for regenerating
// expected data in codec tests
func FormatBytes(name string, data []byte) string {
	items := strings.Split(fmt.Sprintf("% #x", data), " ")
	s := name + " := []byte{"
	n := 8
	for _, item := range items {
		n += 1
		if n >= 8 {
			s += "\n\t"
			n = 0
		}
		s += item + ", "
	}
	return s + "\n}"
}
