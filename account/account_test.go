// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/meridian-net/meridian-sdk-go/account"
	"github.com/meridian-net/meridian-sdk-go/fault"
)

// generate a fresh testnet key pair for the tests below
func makePrivateKey(t *testing.T) *account.PrivateKey {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		t.Fatalf("key generation error: %s", err)
	}
	_ = pub

	return &account.PrivateKey{
		Test:      true,
		Algorithm: account.ED25519,
		Key:       []byte(priv),
	}
}

// test base58 round-trip of a public key
func TestPublicKeyBase58(t *testing.T) {

	privateKey := makePrivateKey(t)
	publicKey := privateKey.PublicKey()

	encoded := publicKey.String()

	decoded, err := account.PublicKeyFromBase58(encoded)
	if nil != err {
		t.Fatalf("decode error: %s", err)
	}

	if !bytes.Equal(publicKey.Key, decoded.Key) {
		t.Errorf("key: %x  expected: %x", decoded.Key, publicKey.Key)
	}
	if decoded.Test != publicKey.Test {
		t.Errorf("test flag: %v  expected: %v", decoded.Test, publicKey.Test)
	}
	if decoded.String() != encoded {
		t.Errorf("re-encode: %q  expected: %q", decoded.String(), encoded)
	}
}

// a corrupted checksum must be detected
func TestPublicKeyChecksum(t *testing.T) {

	privateKey := makePrivateKey(t)
	encoded := privateKey.PublicKey().String()

	// flip the last character of the base58 text
	last := encoded[len(encoded)-1]
	replacement := byte('2')
	if last == replacement {
		replacement = '3'
	}
	corrupted := encoded[:len(encoded)-1] + string(replacement)

	_, err := account.PublicKeyFromBase58(corrupted)
	if nil == err {
		t.Fatal("corrupted key unexpectedly accepted")
	}
	if !fault.IsErrValidation(err) {
		t.Errorf("error: %v  expected a validation error", err)
	}
}

// test signing and verification
func TestSignature(t *testing.T) {

	privateKey := makePrivateKey(t)
	publicKey := privateKey.PublicKey()

	message := []byte("transaction body bytes")
	signature := privateKey.Sign(message)

	if err := publicKey.CheckSignature(message, signature); nil != err {
		t.Errorf("check signature error: %s", err)
	}

	// altered message must fail
	altered := append([]byte{}, message...)
	altered[0] ^= 0xff
	if err := publicKey.CheckSignature(altered, signature); fault.ErrInvalidSignature != err {
		t.Errorf("altered message error: %v  expected: %v", err, fault.ErrInvalidSignature)
	}

	// truncated signature must fail
	if err := publicKey.CheckSignature(message, signature[:16]); fault.ErrInvalidSignature != err {
		t.Errorf("truncated signature error: %v  expected: %v", err, fault.ErrInvalidSignature)
	}
}

// a private key must never decode as a public key
func TestPrivateKeyIsNotPublicKey(t *testing.T) {

	privateKey := makePrivateKey(t)

	_, err := account.PublicKeyFromBytes(privateKey.Bytes())
	if fault.ErrNotPublicKey != err {
		t.Errorf("error: %v  expected: %v", err, fault.ErrNotPublicKey)
	}
}

// test binary round-trip of a private key
func TestPrivateKeyBytes(t *testing.T) {

	privateKey := makePrivateKey(t)

	decoded, err := account.PrivateKeyFromBytes(privateKey.Bytes())
	if nil != err {
		t.Fatalf("decode error: %s", err)
	}
	if !bytes.Equal(privateKey.Key, decoded.Key) {
		t.Errorf("key: %x  expected: %x", decoded.Key, privateKey.Key)
	}
	if !decoded.IsTesting() {
		t.Error("test flag lost in round-trip")
	}
}
