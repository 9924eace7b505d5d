// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/meridian-net/meridian-sdk-go/account"
	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/util"
)

// SignaturePair - one signature over a body together with the
// public key that produced it
type SignaturePair struct {
	PublicKey *account.PublicKey `json:"publicKey"` // base58
	Signature account.Signature  `json:"signature"` // hex
}

// SignedEnvelope - a packed body plus all collected signatures
// this is the unit actually submitted to a node
type SignedEnvelope struct {
	TransactionId TransactionId        `json:"transactionId"`
	NodeId        entity.NodeAccountId `json:"nodeId"`
	Body          Packed               `json:"body"`
	Signatures    []SignaturePair      `json:"signatures"`
}

// pack SignedEnvelope
//
// length prefixed body followed by Varint64(count) and the
// signature pairs, each as length prefixed key and signature
// pairs are already sorted by public key bytes
func (envelope *SignedEnvelope) Pack() (Packed, error) {
	if 0 == len(envelope.Body) {
		return nil, fault.ErrNotEnvelopePack
	}
	message := appendBytes(Packed{}, envelope.Body)
	message = appendUint64(message, uint64(len(envelope.Signatures)))
	for _, pair := range envelope.Signatures {
		if nil == pair.PublicKey {
			return nil, fault.ErrNotPublicKey
		}
		if len(pair.Signature) > maxSignatureLength {
			return nil, fault.ErrSignatureTooLong
		}
		message = appendBytes(message, pair.PublicKey.Bytes())
		message = appendBytes(message, pair.Signature)
	}
	return message, nil
}

// turn a byte slice back into a signed envelope
func (record Packed) UnpackEnvelope() (envelope *SignedEnvelope, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			envelope = nil
			n = 0
			e = fault.ErrNotEnvelopePack
		}
	}()

	bodyLength, bodyOffset := util.ClippedVarint64(record, 1, 65535)
	if 0 == bodyOffset {
		return nil, 0, fault.ErrNotEnvelopePack
	}
	n = bodyOffset
	body := make(Packed, bodyLength)
	copy(body, record[n:n+bodyLength])
	n += bodyLength

	unpackedBody, _, err := body.UnpackBody()
	if nil != err {
		return nil, 0, err
	}

	count, countLength := util.FromVarint64(record[n:])
	if 0 == countLength {
		return nil, 0, fault.ErrNotEnvelopePack
	}
	n += countLength

	signatures := make([]SignaturePair, count)
	for i := uint64(0); i < count; i += 1 {
		keyLength, keyOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == keyOffset {
			return nil, 0, fault.ErrNotEnvelopePack
		}
		n += keyOffset
		publicKey, err := account.PublicKeyFromBytes(record[n : n+keyLength])
		if nil != err {
			return nil, 0, err
		}
		n += keyLength

		signatureLength, signatureOffset := util.ClippedVarint64(record[n:], 1, maxSignatureLength)
		if 0 == signatureOffset {
			return nil, 0, fault.ErrNotEnvelopePack
		}
		n += signatureOffset
		signature := make(account.Signature, signatureLength)
		copy(signature, record[n:n+signatureLength])
		n += signatureLength

		signatures[i] = SignaturePair{
			PublicKey: publicKey,
			Signature: signature,
		}
	}

	return &SignedEnvelope{
		TransactionId: unpackedBody.TransactionId,
		NodeId:        unpackedBody.NodeId,
		Body:          body,
		Signatures:    signatures,
	}, n, nil
}

// Verify - check every signature pair against the packed body
func (envelope *SignedEnvelope) Verify() error {
	if 0 == len(envelope.Signatures) {
		return fault.ErrTransactionNotSigned
	}
	for _, pair := range envelope.Signatures {
		if nil == pair.PublicKey {
			return fault.ErrNotPublicKey
		}
		if err := pair.PublicKey.CheckSignature(envelope.Body, pair.Signature); nil != err {
			return err
		}
	}
	return nil
}
