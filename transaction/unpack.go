// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/util"
)

// attach the built in payload decoders
func init() {
	builtin := map[TagType]UnpackFunc{
		TransferTag:       unpackTransfer,
		ContractCallTag:   unpackContractCall,
		TopicMessageTag:   unpackTopicMessage,
		TokenAssociateTag: unpackTokenAssociate,
	}
	for tag, unpack := range builtin {
		if err := RegisterRecord(tag, unpack); nil != err {
			panic(err)
		}
	}
}

// decode Transfer payload fields
func unpackTransfer(buffer Packed) (Record, int, error) {
	count, countLength := util.ClippedVarint64(buffer, 1, 8192)
	if 0 == countLength {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n := countLength

	transfers := make([]AccountAmount, count)
	for i := 0; i < count; i += 1 {
		account, accountLength, err := entity.AccountIdFromBytes(buffer[n:])
		if nil != err {
			return nil, 0, err
		}
		n += accountLength

		amount, amountLength := util.FromVarint64(buffer[n:])
		if 0 == amountLength {
			return nil, 0, fault.ErrNotTransactionPack
		}
		n += amountLength

		transfers[i] = AccountAmount{
			Account: account,
			Amount:  zigZagDecode(amount),
		}
	}

	return &Transfer{Transfers: transfers}, n, nil
}

// decode ContractCall payload fields
func unpackContractCall(buffer Packed) (Record, int, error) {
	contract, n, err := entity.ContractIdFromBytes(buffer)
	if nil != err {
		return nil, 0, err
	}

	gas, gasLength := util.FromVarint64(buffer[n:])
	if 0 == gasLength {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += gasLength

	amount, amountLength := util.FromVarint64(buffer[n:])
	if 0 == amountLength {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += amountLength

	parametersLength, parametersOffset := util.ClippedVarint64(buffer[n:], 0, maxParametersLength)
	if 0 == parametersOffset {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += parametersOffset
	parameters := make([]byte, parametersLength)
	copy(parameters, buffer[n:n+parametersLength])
	n += parametersLength

	return &ContractCall{
		Contract:   contract,
		Gas:        gas,
		Amount:     amount,
		Parameters: parameters,
	}, n, nil
}

// decode TopicMessage payload fields
func unpackTopicMessage(buffer Packed) (Record, int, error) {
	topic, n, err := entity.TopicIdFromBytes(buffer)
	if nil != err {
		return nil, 0, err
	}

	messageLength, messageOffset := util.ClippedVarint64(buffer[n:], 1, messageChunkSize)
	if 0 == messageOffset {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += messageOffset
	message := make([]byte, messageLength)
	copy(message, buffer[n:n+messageLength])
	n += messageLength

	return &TopicMessage{
		Topic:   topic,
		Message: message,
	}, n, nil
}

// decode TokenAssociate payload fields
func unpackTokenAssociate(buffer Packed) (Record, int, error) {
	account, n, err := entity.AccountIdFromBytes(buffer)
	if nil != err {
		return nil, 0, err
	}

	count, countLength := util.ClippedVarint64(buffer[n:], 1, 8192)
	if 0 == countLength {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += countLength

	tokens := make([]entity.TokenId, count)
	for i := 0; i < count; i += 1 {
		token, tokenLength, err := entity.TokenIdFromBytes(buffer[n:])
		if nil != err {
			return nil, 0, err
		}
		n += tokenLength
		tokens[i] = token
	}

	return &TokenAssociate{
		Account: account,
		Tokens:  tokens,
	}, n, nil
}
