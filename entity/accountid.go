// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entity

// AccountId - identifies a ledger account
//
// Checksum is only populated when parsed from text carrying one; it
// is never part of the binary form and does not affect equality of
// the numeric triple
type AccountId struct {
	Shard    uint64
	Realm    uint64
	Number   uint64
	Checksum string
}

// AccountIdFromString - parse "shard.realm.number" with optional "-checksum"
func AccountIdFromString(s string) (AccountId, error) {
	shard, realm, number, checksum, err := parseTriple(s)
	if nil != err {
		return AccountId{}, err
	}
	return AccountId{Shard: shard, Realm: realm, Number: number, Checksum: checksum}, nil
}

// AccountIdFromBytes - decode the packed binary form
func AccountIdFromBytes(buffer []byte) (AccountId, int, error) {
	shard, realm, number, n, err := unpackTriple(buffer)
	if nil != err {
		return AccountId{}, 0, err
	}
	return AccountId{Shard: shard, Realm: realm, Number: number}, n, nil
}

// Bytes - packed binary form, checksum excluded
func (id AccountId) Bytes() []byte {
	return packTriple(id.Shard, id.Realm, id.Number)
}

// String - "shard.realm.number"
func (id AccountId) String() string {
	return formatTriple(id.Shard, id.Realm, id.Number)
}

// StringWithChecksum - text form with the checksum for one chain
func (id AccountId) StringWithChecksum(chainName string) string {
	return id.String() + "-" + checksumFor(chainName, id.Shard, id.Realm, id.Number)
}

// ValidateChecksum - verify a parsed checksum against a chain
//
// an identifier without a checksum always passes
func (id AccountId) ValidateChecksum(chainName string) error {
	return verifyChecksum(chainName, id.Shard, id.Realm, id.Number, id.Checksum)
}

// IsZero - true for the zero identifier
func (id AccountId) IsZero() bool {
	return 0 == id.Shard && 0 == id.Realm && 0 == id.Number
}

// MarshalText - text form for JSON
func (id AccountId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - parse the text form for JSON
func (id *AccountId) UnmarshalText(s []byte) error {
	parsed, err := AccountIdFromString(string(s))
	if nil != err {
		return err
	}
	*id = parsed
	return nil
}

// NodeAccountId - the account of a network node, the address one
// signed envelope is bound to
type NodeAccountId AccountId

// NodeAccountIdFromString - parse "shard.realm.number" with optional "-checksum"
func NodeAccountIdFromString(s string) (NodeAccountId, error) {
	id, err := AccountIdFromString(s)
	return NodeAccountId(id), err
}

// Bytes - packed binary form, checksum excluded
func (id NodeAccountId) Bytes() []byte {
	return packTriple(id.Shard, id.Realm, id.Number)
}

// String - "shard.realm.number"
func (id NodeAccountId) String() string {
	return formatTriple(id.Shard, id.Realm, id.Number)
}

// Normalized - the identifier with any parsed checksum stripped
//
// used wherever a node id is a map key so that "0.0.3" and
// "0.0.3-xxxx" select the same node
func (id NodeAccountId) Normalized() NodeAccountId {
	id.Checksum = ""
	return id
}

// ValidateChecksum - verify a parsed checksum against a chain
func (id NodeAccountId) ValidateChecksum(chainName string) error {
	return verifyChecksum(chainName, id.Shard, id.Realm, id.Number, id.Checksum)
}

// MarshalText - text form for JSON
func (id NodeAccountId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - parse the text form for JSON
func (id *NodeAccountId) UnmarshalText(s []byte) error {
	parsed, err := AccountIdFromString(string(s))
	if nil != err {
		return err
	}
	*id = NodeAccountId(parsed)
	return nil
}
