// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"unicode/utf8"

	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/util"
)

// Body - the signable unit of a transaction
// one body exists per (chunk, node) pair so a signature binds the
// payload to a specific transaction id and target node
type Body struct {
	TransactionId TransactionId        `json:"transactionId"`
	NodeId        entity.NodeAccountId `json:"nodeId"`
	MaxFee        uint64               `json:"maxFee,string"`
	Memo          string               `json:"memo"`
	Payload       Record               `json:"payload"`
}

// pack Body
//
// Pack Varint64(tag) followed by transaction id, node id,
// Varint64(maxFee), memo and the payload fields
func (body *Body) Pack() (Packed, error) {
	if nil == body.Payload {
		return nil, fault.ErrMissingPayload
	}
	if utf8.RuneCountInString(body.Memo) > maxMemoLength {
		return nil, fault.ErrMemoTooLong
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(body.Payload.Tag()))
	message = append(message, body.TransactionId.Bytes()...)
	message = append(message, body.NodeId.Bytes()...)
	message = appendUint64(message, body.MaxFee)
	message = appendString(message, body.Memo)
	return body.Payload.PackPayload(message)
}

// turn a byte slice back into a body
//
// Note: the unpacker will access the underlying array of the packed
//       record so out of range offsets are caught by the recover
//       and reported as a pack error
func (record Packed) UnpackBody() (body *Body, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			body = nil
			n = 0
			e = fault.ErrNotTransactionPack
		}
	}()

	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return nil, 0, fault.ErrNotTransactionPack
	}
	unpack, err := unpackerFor(TagType(recordType))
	if nil != err {
		return nil, 0, err
	}

	transactionId, idLength, err := TransactionIdFromBytes(record[n:])
	if nil != err {
		return nil, 0, err
	}
	n += idLength

	nodeAccount, nodeLength, err := entity.AccountIdFromBytes(record[n:])
	if nil != err {
		return nil, 0, err
	}
	n += nodeLength

	maxFee, feeLength := util.FromVarint64(record[n:])
	if 0 == feeLength {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += feeLength

	memoLength, memoOffset := util.ClippedVarint64(record[n:], 0, 4*maxMemoLength)
	if 0 == memoOffset {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += memoOffset
	memo := string(record[n : n+memoLength])
	n += memoLength

	payload, payloadLength, err := unpack(Packed(record[n:]))
	if nil != err {
		return nil, 0, err
	}
	n += payloadLength

	return &Body{
		TransactionId: transactionId,
		NodeId:        entity.NodeAccountId(nodeAccount),
		MaxFee:        maxFee,
		Memo:          memo,
		Payload:       payload,
	}, n, nil
}
