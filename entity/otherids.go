// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entity

// ContractId - identifies a deployed contract
type ContractId struct {
	Shard    uint64
	Realm    uint64
	Number   uint64
	Checksum string
}

// ContractIdFromString - parse "shard.realm.number" with optional "-checksum"
func ContractIdFromString(s string) (ContractId, error) {
	shard, realm, number, checksum, err := parseTriple(s)
	if nil != err {
		return ContractId{}, err
	}
	return ContractId{Shard: shard, Realm: realm, Number: number, Checksum: checksum}, nil
}

// ContractIdFromBytes - decode the packed binary form
func ContractIdFromBytes(buffer []byte) (ContractId, int, error) {
	shard, realm, number, n, err := unpackTriple(buffer)
	if nil != err {
		return ContractId{}, 0, err
	}
	return ContractId{Shard: shard, Realm: realm, Number: number}, n, nil
}

// Bytes - packed binary form, checksum excluded
func (id ContractId) Bytes() []byte {
	return packTriple(id.Shard, id.Realm, id.Number)
}

// String - "shard.realm.number"
func (id ContractId) String() string {
	return formatTriple(id.Shard, id.Realm, id.Number)
}

// ValidateChecksum - verify a parsed checksum against a chain
func (id ContractId) ValidateChecksum(chainName string) error {
	return verifyChecksum(chainName, id.Shard, id.Realm, id.Number, id.Checksum)
}

// IsZero - true for the zero identifier
func (id ContractId) IsZero() bool {
	return 0 == id.Shard && 0 == id.Realm && 0 == id.Number
}

// MarshalText - text form for JSON
func (id ContractId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - parse the text form for JSON
func (id *ContractId) UnmarshalText(s []byte) error {
	parsed, err := ContractIdFromString(string(s))
	if nil != err {
		return err
	}
	*id = parsed
	return nil
}

// TokenId - identifies a token class
type TokenId struct {
	Shard    uint64
	Realm    uint64
	Number   uint64
	Checksum string
}

// TokenIdFromString - parse "shard.realm.number" with optional "-checksum"
func TokenIdFromString(s string) (TokenId, error) {
	shard, realm, number, checksum, err := parseTriple(s)
	if nil != err {
		return TokenId{}, err
	}
	return TokenId{Shard: shard, Realm: realm, Number: number, Checksum: checksum}, nil
}

// TokenIdFromBytes - decode the packed binary form
func TokenIdFromBytes(buffer []byte) (TokenId, int, error) {
	shard, realm, number, n, err := unpackTriple(buffer)
	if nil != err {
		return TokenId{}, 0, err
	}
	return TokenId{Shard: shard, Realm: realm, Number: number}, n, nil
}

// Bytes - packed binary form, checksum excluded
func (id TokenId) Bytes() []byte {
	return packTriple(id.Shard, id.Realm, id.Number)
}

// String - "shard.realm.number"
func (id TokenId) String() string {
	return formatTriple(id.Shard, id.Realm, id.Number)
}

// ValidateChecksum - verify a parsed checksum against a chain
func (id TokenId) ValidateChecksum(chainName string) error {
	return verifyChecksum(chainName, id.Shard, id.Realm, id.Number, id.Checksum)
}

// MarshalText - text form for JSON
func (id TokenId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - parse the text form for JSON
func (id *TokenId) UnmarshalText(s []byte) error {
	parsed, err := TokenIdFromString(string(s))
	if nil != err {
		return err
	}
	*id = parsed
	return nil
}

// TopicId - identifies a message topic
type TopicId struct {
	Shard    uint64
	Realm    uint64
	Number   uint64
	Checksum string
}

// TopicIdFromString - parse "shard.realm.number" with optional "-checksum"
func TopicIdFromString(s string) (TopicId, error) {
	shard, realm, number, checksum, err := parseTriple(s)
	if nil != err {
		return TopicId{}, err
	}
	return TopicId{Shard: shard, Realm: realm, Number: number, Checksum: checksum}, nil
}

// TopicIdFromBytes - decode the packed binary form
func TopicIdFromBytes(buffer []byte) (TopicId, int, error) {
	shard, realm, number, n, err := unpackTriple(buffer)
	if nil != err {
		return TopicId{}, 0, err
	}
	return TopicId{Shard: shard, Realm: realm, Number: number}, n, nil
}

// Bytes - packed binary form, checksum excluded
func (id TopicId) Bytes() []byte {
	return packTriple(id.Shard, id.Realm, id.Number)
}

// String - "shard.realm.number"
func (id TopicId) String() string {
	return formatTriple(id.Shard, id.Realm, id.Number)
}

// ValidateChecksum - verify a parsed checksum against a chain
func (id TopicId) ValidateChecksum(chainName string) error {
	return verifyChecksum(chainName, id.Shard, id.Realm, id.Number, id.Checksum)
}

// IsZero - true for the zero identifier
func (id TopicId) IsZero() bool {
	return 0 == id.Shard && 0 == id.Realm && 0 == id.Number
}

// MarshalText - text form for JSON
func (id TopicId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - parse the text form for JSON
func (id *TopicId) UnmarshalText(s []byte) error {
	parsed, err := TopicIdFromString(string(s))
	if nil != err {
		return err
	}
	*id = parsed
	return nil
}
