// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/fault"
)

// AccountAmount - one leg of a transfer, debit when negative
type AccountAmount struct {
	Account entity.AccountId `json:"account"`
	Amount  int64            `json:"amount,string"`
}

// Transfer - move balances between accounts
// the amounts must sum to zero
type Transfer struct {
	Transfers []AccountAmount `json:"transfers"`
}

// Tag - the type code for this payload
func (transfer *Transfer) Tag() TagType {
	return TransferTag
}

// CheckValid - pre-flight field validation
func (transfer *Transfer) CheckValid() error {
	if 0 == len(transfer.Transfers) {
		return fault.ErrMissingPayload
	}
	sum := int64(0)
	for _, t := range transfer.Transfers {
		if t.Account.IsZero() {
			return fault.ErrMissingAccountId
		}
		sum += t.Amount
	}
	if 0 != sum {
		return fault.ErrUnbalancedTransfer
	}
	return nil
}

// ValidateChecksums - verify any entity checksums against a chain
func (transfer *Transfer) ValidateChecksums(chainName string) error {
	for _, t := range transfer.Transfers {
		if err := t.Account.ValidateChecksum(chainName); nil != err {
			return err
		}
	}
	return nil
}

// ContractCall - invoke a smart contract function
type ContractCall struct {
	Contract   entity.ContractId `json:"contract"`
	Gas        uint64            `json:"gas"`
	Amount     uint64            `json:"amount,string"`
	Parameters []byte            `json:"parameters"` // hex
}

// Tag - the type code for this payload
func (call *ContractCall) Tag() TagType {
	return ContractCallTag
}

// CheckValid - pre-flight field validation
func (call *ContractCall) CheckValid() error {
	if call.Contract.IsZero() {
		return fault.ErrMissingContractId
	}
	return nil
}

// ValidateChecksums - verify any entity checksums against a chain
func (call *ContractCall) ValidateChecksums(chainName string) error {
	return call.Contract.ValidateChecksum(chainName)
}

// TopicMessage - submit a message to a consensus topic
// long messages are split into ordered chunks at freeze time
type TopicMessage struct {
	Topic   entity.TopicId `json:"topic"`
	Message []byte         `json:"message"`
}

// Tag - the type code for this payload
func (message *TopicMessage) Tag() TagType {
	return TopicMessageTag
}

// CheckValid - pre-flight field validation
func (message *TopicMessage) CheckValid() error {
	if message.Topic.IsZero() {
		return fault.ErrMissingTopicId
	}
	if 0 == len(message.Message) {
		return fault.ErrMissingPayload
	}
	return nil
}

// ValidateChecksums - verify any entity checksums against a chain
func (message *TopicMessage) ValidateChecksums(chainName string) error {
	return message.Topic.ValidateChecksum(chainName)
}

// break the message into ordered parts of at most chunkSize bytes
func (message *TopicMessage) split(chunkSize int) []Record {
	data := message.Message
	count := (len(data) + chunkSize - 1) / chunkSize
	if count <= 1 {
		return []Record{message}
	}

	parts := make([]Record, count)
	for i := 0; i < count; i += 1 {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		parts[i] = &TopicMessage{
			Topic:   message.Topic,
			Message: data[start:end],
		}
	}
	return parts
}

// reassemble a message from its ordered parts
func (message *TopicMessage) join(parts []Record) (Record, error) {
	joined := &TopicMessage{}
	for i, part := range parts {
		chunk, ok := part.(*TopicMessage)
		if !ok {
			return nil, fault.ErrNotTransactionPack
		}
		if 0 == i {
			joined.Topic = chunk.Topic
		} else if joined.Topic != chunk.Topic {
			return nil, fault.ErrNotTransactionPack
		}
		joined.Message = append(joined.Message, chunk.Message...)
	}
	return joined, nil
}

// TokenAssociate - associate tokens with an account
type TokenAssociate struct {
	Account entity.AccountId `json:"account"`
	Tokens  []entity.TokenId `json:"tokens"`
}

// Tag - the type code for this payload
func (associate *TokenAssociate) Tag() TagType {
	return TokenAssociateTag
}

// CheckValid - pre-flight field validation
func (associate *TokenAssociate) CheckValid() error {
	if associate.Account.IsZero() {
		return fault.ErrMissingAccountId
	}
	if 0 == len(associate.Tokens) {
		return fault.ErrMissingTokenId
	}
	return nil
}

// ValidateChecksums - verify any entity checksums against a chain
func (associate *TokenAssociate) ValidateChecksums(chainName string) error {
	if err := associate.Account.ValidateChecksum(chainName); nil != err {
		return err
	}
	for _, token := range associate.Tokens {
		if err := token.ValidateChecksum(chainName); nil != err {
			return err
		}
	}
	return nil
}
