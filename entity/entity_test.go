// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entity_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/meridian-net/meridian-sdk-go/chain"
	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/fault"
)

// test string round-trip of an account id
func TestAccountIdString(t *testing.T) {

	stringTests := []struct {
		text string
		id   entity.AccountId
	}{
		{"0.0.3", entity.AccountId{Shard: 0, Realm: 0, Number: 3}},
		{"0.0.98", entity.AccountId{Shard: 0, Realm: 0, Number: 98}},
		{"1.2.3", entity.AccountId{Shard: 1, Realm: 2, Number: 3}},
		{"0.7.123456789", entity.AccountId{Shard: 0, Realm: 7, Number: 123456789}},
	}

	for i, item := range stringTests {
		id, err := entity.AccountIdFromString(item.text)
		if nil != err {
			t.Errorf("%d: parse error: %s", i, err)
			continue
		}
		if id != item.id {
			t.Errorf("%d: parsed: %#v  expected: %#v", i, id, item.id)
		}
		if s := id.String(); s != item.text {
			t.Errorf("%d: string: %q  expected: %q", i, s, item.text)
		}
	}
}

// malformed identifiers must fail with a validation error
func TestAccountIdInvalid(t *testing.T) {

	invalidTests := []string{
		"",
		"0.0",
		"0.0.3.4",
		"a.b.c",
		"0.0.-5",
		"0.0.3-",
		"0..3",
	}

	for i, item := range invalidTests {
		_, err := entity.AccountIdFromString(item)
		if fault.ErrInvalidEntity != err {
			t.Errorf("%d: AccountIdFromString(%q) error: %v  expected: %v", i, item, err, fault.ErrInvalidEntity)
		}
	}
}

// test binary round-trip of identifiers
func TestAccountIdBytes(t *testing.T) {

	id := entity.AccountId{Shard: 1, Realm: 150, Number: 16384}

	packed := id.Bytes()
	expected := []byte{0x01, 0x96, 0x01, 0x80, 0x80, 0x01}
	if !bytes.Equal(packed, expected) {
		t.Fatalf("packed: %x  expected: %x", packed, expected)
	}

	unpacked, n, err := entity.AccountIdFromBytes(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if n != len(packed) {
		t.Errorf("unpack used %d bytes  expected: %d", n, len(packed))
	}
	if unpacked != id {
		t.Errorf("unpacked: %#v  expected: %#v", unpacked, id)
	}
}

// a checksum is only valid on the chain that generated it
func TestChecksumIsChainBound(t *testing.T) {

	id := entity.AccountId{Shard: 0, Realm: 0, Number: 1024}

	withChecksum := id.StringWithChecksum(chain.Testing)
	parsed, err := entity.AccountIdFromString(withChecksum)
	if nil != err {
		t.Fatalf("parse error: %s", err)
	}
	if "" == parsed.Checksum {
		t.Fatal("parsed id lost its checksum")
	}

	if err := parsed.ValidateChecksum(chain.Testing); nil != err {
		t.Errorf("checksum rejected on its own chain: %s", err)
	}
	err = parsed.ValidateChecksum(chain.Meridian)
	if !fault.IsErrValidation(err) {
		t.Errorf("wrong chain error: %v  expected a validation error", err)
	}
	if !strings.Contains(err.Error(), "different chain") {
		t.Errorf("wrong chain error: %v  expected a chain mismatch", err)
	}
	if !strings.Contains(err.Error(), "0.0.1024") {
		t.Errorf("wrong chain error: %v  does not name the entity", err)
	}

	// a corrupted checksum is plain corruption, not a chain mismatch
	corrupted := parsed
	corrupted.Checksum = "zzzzz"
	err = corrupted.ValidateChecksum(chain.Testing)
	if !fault.IsErrValidation(err) || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Errorf("corrupt checksum error: %v  expected a checksum mismatch", err)
	}
	if !strings.Contains(err.Error(), "0.0.1024") {
		t.Errorf("corrupt checksum error: %v  does not name the entity", err)
	}

	// an id without a checksum passes on every chain
	bare := entity.AccountId{Shard: 0, Realm: 0, Number: 1024}
	if err := bare.ValidateChecksum(chain.Meridian); nil != err {
		t.Errorf("bare id rejected: %s", err)
	}
}

// node ids parsed with a checksum must normalize for map keys
func TestNodeAccountIdNormalized(t *testing.T) {

	plain, err := entity.NodeAccountIdFromString("0.0.3")
	if nil != err {
		t.Fatalf("parse error: %s", err)
	}

	withChecksum, err := entity.NodeAccountIdFromString(
		entity.AccountId{Number: 3}.StringWithChecksum(chain.Testing))
	if nil != err {
		t.Fatalf("parse error: %s", err)
	}

	if withChecksum == plain {
		t.Fatal("checksum was not captured by parsing")
	}
	if withChecksum.Normalized() != plain {
		t.Errorf("normalized: %#v  expected: %#v", withChecksum.Normalized(), plain)
	}
}

// contract, token and topic ids share the same text format
func TestOtherIdentifierKinds(t *testing.T) {

	contractId, err := entity.ContractIdFromString("0.0.5005")
	if nil != err {
		t.Fatalf("contract parse error: %s", err)
	}
	if "0.0.5005" != contractId.String() {
		t.Errorf("contract: %q  expected: %q", contractId.String(), "0.0.5005")
	}

	tokenId, err := entity.TokenIdFromString("0.0.7777")
	if nil != err {
		t.Fatalf("token parse error: %s", err)
	}
	unpackedToken, _, err := entity.TokenIdFromBytes(tokenId.Bytes())
	if nil != err {
		t.Fatalf("token unpack error: %s", err)
	}
	if unpackedToken != tokenId {
		t.Errorf("token round-trip: %#v  expected: %#v", unpackedToken, tokenId)
	}

	topicId, err := entity.TopicIdFromString("0.0.31415")
	if nil != err {
		t.Fatalf("topic parse error: %s", err)
	}
	if topicId.IsZero() {
		t.Error("topic id is unexpectedly zero")
	}
}
