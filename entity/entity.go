// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entity - numeric ledger entity identifiers
//
// every addressable item on the ledger (account, node, contract,
// token, topic) is identified by a shard.realm.number triple; the
// text form optionally carries a checksum suffix derived from the
// chain name, so an identifier pasted from the wrong network is
// rejected before anything is submitted
package entity

import (
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/meridian-net/meridian-sdk-go/chain"
	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/util"
)

const checksumLength = 4

// format a triple as "shard.realm.number"
func formatTriple(shard uint64, realm uint64, number uint64) string {
	return strconv.FormatUint(shard, 10) +
		"." + strconv.FormatUint(realm, 10) +
		"." + strconv.FormatUint(number, 10)
}

// parse "shard.realm.number" with an optional "-checksum" suffix
func parseTriple(s string) (uint64, uint64, uint64, string, error) {
	checksum := ""
	if i := strings.IndexByte(s, '-'); i >= 0 {
		checksum = s[i+1:]
		s = s[:i]
		if 0 == len(checksum) {
			return 0, 0, 0, "", fault.ErrInvalidEntity
		}
	}

	parts := strings.Split(s, ".")
	if 3 != len(parts) {
		return 0, 0, 0, "", fault.ErrInvalidEntity
	}

	numbers := make([]uint64, 3)
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if nil != err {
			return 0, 0, 0, "", fault.ErrInvalidEntity
		}
		numbers[i] = n
	}
	return numbers[0], numbers[1], numbers[2], checksum, nil
}

// pack a triple as three Varint64 fields
func packTriple(shard uint64, realm uint64, number uint64) []byte {
	buffer := util.ToVarint64(shard)
	buffer = append(buffer, util.ToVarint64(realm)...)
	buffer = append(buffer, util.ToVarint64(number)...)
	return buffer
}

// unpack three Varint64 fields, returns the byte count consumed
func unpackTriple(buffer []byte) (uint64, uint64, uint64, int, error) {
	n := 0
	numbers := [3]uint64{}
	for i := 0; i < 3; i += 1 {
		value, count := util.FromVarint64(buffer[n:])
		if 0 == count {
			return 0, 0, 0, 0, fault.ErrInvalidEntity
		}
		numbers[i] = value
		n += count
	}
	return numbers[0], numbers[1], numbers[2], n, nil
}

// checksumFor - compute the chain-bound checksum of a triple
//
// first 4 bytes of SHA3-256(chain ‖ NUL ‖ packed triple), Base58
func checksumFor(chainName string, shard uint64, realm uint64, number uint64) string {
	payload := append([]byte(chainName), 0x00)
	payload = append(payload, packTriple(shard, realm, number)...)
	digest := sha3.Sum256(payload)
	return base58.Encode(digest[:checksumLength])
}

// verify a parsed checksum for one chain; empty checksum passes
//
// a checksum computed for a different known chain is reported
// separately from plain corruption; the error names the offending
// identifier so a failure inside a multi-entity payload can be traced
func verifyChecksum(chainName string, shard uint64, realm uint64, number uint64, checksum string) error {
	if "" == checksum {
		return nil
	}
	if checksumFor(chainName, shard, realm, number) == checksum {
		return nil
	}
	for _, other := range []string{chain.Meridian, chain.Testing, chain.Local} {
		if other == chainName {
			continue
		}
		if checksumFor(other, shard, realm, number) == checksum {
			return fault.ValidationError("checksum is for a different chain on entity: " + formatTriple(shard, realm, number))
		}
	}
	return fault.ValidationError("checksum mismatch on entity: " + formatTriple(shard, realm, number))
}
