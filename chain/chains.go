// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - names of the networks a client can be bound to
//
// entity checksums are derived from the chain name, so an identifier
// carrying a checksum is only valid on one chain
package chain

// names of all chains
const (
	Meridian = "meridian"
	Testing  = "testing"
	Local    = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Meridian, Testing, Local:
		return true
	default:
		return false
	}
}

// IsTesting - true for any chain except the main network
//
// keys and identifiers are tagged with this so that test items can
// never be replayed against the main network
func IsTesting(name string) bool {
	return Meridian != name
}
