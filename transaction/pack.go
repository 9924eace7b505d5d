// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/util"
)

// pack Transfer payload fields
//
// Varint64(count) followed by: packed account triple, ZigZag(amount)
func (transfer *Transfer) PackPayload(buffer Packed) (Packed, error) {
	message := appendUint64(buffer, uint64(len(transfer.Transfers)))
	for _, t := range transfer.Transfers {
		message = append(message, t.Account.Bytes()...)
		message = appendInt64(message, t.Amount)
	}
	return message, nil
}

// pack ContractCall payload fields
//
// packed contract triple, Varint64(gas), Varint64(amount), parameters
func (call *ContractCall) PackPayload(buffer Packed) (Packed, error) {
	if len(call.Parameters) > maxParametersLength {
		return nil, fault.ErrNotTransactionPack
	}

	message := append(buffer, call.Contract.Bytes()...)
	message = appendUint64(message, call.Gas)
	message = appendUint64(message, call.Amount)
	return appendBytes(message, call.Parameters), nil
}

// pack TopicMessage payload fields
//
// packed topic triple followed by the message bytes
// chunking has already happened so the message fits one record
func (message *TopicMessage) PackPayload(buffer Packed) (Packed, error) {
	packed := append(buffer, message.Topic.Bytes()...)
	return appendBytes(packed, message.Message), nil
}

// pack TokenAssociate payload fields
//
// packed account triple, Varint64(count), packed token triples
func (associate *TokenAssociate) PackPayload(buffer Packed) (Packed, error) {
	message := append(buffer, associate.Account.Bytes()...)
	message = appendUint64(message, uint64(len(associate.Tokens)))
	for _, token := range associate.Tokens {
		message = append(message, token.Bytes()...)
	}
	return message, nil
}

// append a length prefixed string
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append a length prefixed byte slice
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	return append(buffer, data...)
}

// append a Varint64
func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	return append(buffer, valueBytes...)
}

// append a signed value as ZigZag encoded Varint64
func appendInt64(buffer Packed, value int64) Packed {
	return appendUint64(buffer, uint64(value<<1)^uint64(value>>63))
}

// decode a ZigZag encoded value
func zigZagDecode(value uint64) int64 {
	return int64(value>>1) ^ -int64(value&1)
}
