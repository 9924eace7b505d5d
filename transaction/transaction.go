// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"bytes"
	"sort"
	"sync"

	"github.com/meridian-net/meridian-sdk-go/account"
	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/fault"
)

// Transaction - the mutable aggregate around one payload
//
// lifecycle: Mutable -> Frozen -> Signed
// all field setters fail once the transaction is frozen and
// Freeze either completes fully or leaves the state untouched
type Transaction struct {
	sync.RWMutex

	// mutable until frozen
	payload       Record
	maxFee        uint64
	memo          string
	transactionId TransactionId
	nodeIds       []entity.NodeAccountId

	// set atomically by Freeze
	frozen         bool
	transactionIds []TransactionId
	bodies         [][]Packed // [chunk][node]

	// accumulated by Sign
	signers    map[string]*account.PublicKey
	signatures map[string][][]account.Signature // key -> [chunk][node]
}

// New - create a transaction around a payload
func New(payload Record) *Transaction {
	return &Transaction{
		payload:    payload,
		signers:    make(map[string]*account.PublicKey),
		signatures: make(map[string][][]account.Signature),
	}
}

// SetPayload - replace the payload
func (tx *Transaction) SetPayload(payload Record) error {
	tx.Lock()
	defer tx.Unlock()

	if tx.frozen {
		return fault.ErrTransactionIsFrozen
	}
	tx.payload = payload
	return nil
}

// SetMaxFee - set the maximum fee the payer will accept
func (tx *Transaction) SetMaxFee(maxFee uint64) error {
	tx.Lock()
	defer tx.Unlock()

	if tx.frozen {
		return fault.ErrTransactionIsFrozen
	}
	tx.maxFee = maxFee
	return nil
}

// SetMemo - set the transaction memo
func (tx *Transaction) SetMemo(memo string) error {
	tx.Lock()
	defer tx.Unlock()

	if tx.frozen {
		return fault.ErrTransactionIsFrozen
	}
	tx.memo = memo
	return nil
}

// SetTransactionId - set an explicit transaction id
// chunk ids are derived from this one at freeze time
func (tx *Transaction) SetTransactionId(id TransactionId) error {
	tx.Lock()
	defer tx.Unlock()

	if tx.frozen {
		return fault.ErrTransactionIsFrozen
	}
	tx.transactionId = id
	return nil
}

// SetNodeAccountIds - set the candidate nodes for submission
func (tx *Transaction) SetNodeAccountIds(nodeIds []entity.NodeAccountId) error {
	tx.Lock()
	defer tx.Unlock()

	if tx.frozen {
		return fault.ErrTransactionIsFrozen
	}
	tx.nodeIds = append([]entity.NodeAccountId{}, nodeIds...)
	return nil
}

// TransactionId - the base id, zero until set
func (tx *Transaction) TransactionId() TransactionId {
	tx.RLock()
	defer tx.RUnlock()
	return tx.transactionId
}

// Payload - the current payload
func (tx *Transaction) Payload() Record {
	tx.RLock()
	defer tx.RUnlock()
	return tx.payload
}

// MaxFee - the configured maximum fee
func (tx *Transaction) MaxFee() uint64 {
	tx.RLock()
	defer tx.RUnlock()
	return tx.maxFee
}

// Memo - the configured memo
func (tx *Transaction) Memo() string {
	tx.RLock()
	defer tx.RUnlock()
	return tx.memo
}

// IsFrozen - true after a successful Freeze
func (tx *Transaction) IsFrozen() bool {
	tx.RLock()
	defer tx.RUnlock()
	return tx.frozen
}

// NodeAccountIds - copy of the candidate node list
func (tx *Transaction) NodeAccountIds() []entity.NodeAccountId {
	tx.RLock()
	defer tx.RUnlock()
	return append([]entity.NodeAccountId{}, tx.nodeIds...)
}

// TransactionIds - copy of the per chunk transaction ids
// empty until frozen
func (tx *Transaction) TransactionIds() []TransactionId {
	tx.RLock()
	defer tx.RUnlock()
	return append([]TransactionId{}, tx.transactionIds...)
}

// Bodies - copies of the packed bodies, chunk major
// empty until frozen
func (tx *Transaction) Bodies() []Packed {
	tx.RLock()
	defer tx.RUnlock()

	all := make([]Packed, 0, len(tx.bodies)*len(tx.nodeIds))
	for _, chunk := range tx.bodies {
		for _, body := range chunk {
			copied := make(Packed, len(body))
			copy(copied, body)
			all = append(all, copied)
		}
	}
	return all
}

// Signers - the public keys that have signed, in canonical order
func (tx *Transaction) Signers() []*account.PublicKey {
	tx.RLock()
	defer tx.RUnlock()

	keys := make([]string, 0, len(tx.signers))
	for key := range tx.signers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	signers := make([]*account.PublicKey, len(keys))
	for i, key := range keys {
		signers[i] = tx.signers[key]
	}
	return signers
}

// ValidateChecksums - verify every entity checksum carried by the
// transaction against one chain
func (tx *Transaction) ValidateChecksums(chainName string) error {
	tx.RLock()
	defer tx.RUnlock()

	if err := tx.transactionId.Account.ValidateChecksum(chainName); nil != err {
		return err
	}
	for _, nodeId := range tx.nodeIds {
		if err := nodeId.ValidateChecksum(chainName); nil != err {
			return err
		}
	}
	if nil == tx.payload {
		return fault.ErrMissingPayload
	}
	return tx.payload.ValidateChecksums(chainName)
}

// Freeze - pack one body per (chunk, node) pair and lock the
// transaction against further modification
//
// on any error the transaction is left fully mutable
func (tx *Transaction) Freeze() error {
	tx.Lock()
	defer tx.Unlock()

	if tx.frozen {
		return fault.ErrAlreadyFrozen
	}
	if nil == tx.payload {
		return fault.ErrMissingPayload
	}
	if err := tx.payload.CheckValid(); nil != err {
		return err
	}
	if 0 == len(tx.nodeIds) {
		return fault.ErrNoNodeIdsAvailable
	}
	if tx.transactionId.IsZero() {
		return fault.ErrInvalidTransactionId
	}

	chunks := []Record{tx.payload}
	if c, ok := tx.payload.(chunkable); ok {
		chunks = c.split(messageChunkSize)
	}

	transactionIds := make([]TransactionId, len(chunks))
	bodies := make([][]Packed, len(chunks))
	for i, chunk := range chunks {
		transactionIds[i] = tx.transactionId.Next(i)
		bodies[i] = make([]Packed, len(tx.nodeIds))
		for j, nodeId := range tx.nodeIds {
			body := Body{
				TransactionId: transactionIds[i],
				NodeId:        nodeId,
				MaxFee:        tx.maxFee,
				Memo:          tx.memo,
				Payload:       chunk,
			}
			packed, err := body.Pack()
			if nil != err {
				return err
			}
			bodies[i][j] = packed
		}
	}

	// all bodies packed, commit the frozen state
	tx.transactionIds = transactionIds
	tx.bodies = bodies
	tx.frozen = true
	return nil
}

// SignWith - sign every body using an external signing function
//
// signing twice with the same public key replaces the earlier
// signatures, it never duplicates the pair
func (tx *Transaction) SignWith(publicKey *account.PublicKey, sign func(message []byte) (account.Signature, error)) error {
	if nil == publicKey {
		return fault.ErrNotPublicKey
	}

	tx.Lock()
	defer tx.Unlock()

	if !tx.frozen {
		return fault.ErrTransactionNotFrozen
	}

	key := string(publicKey.Bytes())

	signatures := make([][]account.Signature, len(tx.bodies))
	for i, chunk := range tx.bodies {
		signatures[i] = make([]account.Signature, len(chunk))
		for j, body := range chunk {
			signature, err := sign(body)
			if nil != err {
				return err
			}
			if err := publicKey.CheckSignature(body, signature); nil != err {
				return err
			}
			signatures[i][j] = signature
		}
	}

	tx.signers[key] = publicKey
	tx.signatures[key] = signatures
	return nil
}

// Sign - sign every body with a private key
func (tx *Transaction) Sign(privateKey *account.PrivateKey) error {
	if nil == privateKey {
		return fault.ErrNotPublicKey
	}
	return tx.SignWith(privateKey.PublicKey(), func(message []byte) (account.Signature, error) {
		return privateKey.Sign(message), nil
	})
}

// Envelopes - the submission units in canonical order
//
// chunk major, nodes in the order given to SetNodeAccountIds,
// signature pairs sorted by public key bytes; the result is
// byte for byte deterministic for a given signed transaction
func (tx *Transaction) Envelopes() ([]*SignedEnvelope, error) {
	tx.RLock()
	defer tx.RUnlock()

	if !tx.frozen {
		return nil, fault.ErrTransactionNotFrozen
	}
	if 0 == len(tx.signers) {
		return nil, fault.ErrTransactionNotSigned
	}

	keys := make([]string, 0, len(tx.signers))
	for key := range tx.signers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	envelopes := make([]*SignedEnvelope, 0, len(tx.bodies)*len(tx.nodeIds))
	for i, chunk := range tx.bodies {
		for j, body := range chunk {
			pairs := make([]SignaturePair, len(keys))
			for k, key := range keys {
				pairs[k] = SignaturePair{
					PublicKey: tx.signers[key],
					Signature: tx.signatures[key][i][j],
				}
			}
			envelopes = append(envelopes, &SignedEnvelope{
				TransactionId: tx.transactionIds[i],
				NodeId:        tx.nodeIds[j],
				Body:          body,
				Signatures:    pairs,
			})
		}
	}
	return envelopes, nil
}

// Digest - content digest of the first packed body
// only available once frozen
func (tx *Transaction) Digest() (Digest, error) {
	tx.RLock()
	defer tx.RUnlock()

	if !tx.frozen {
		return Digest{}, fault.ErrTransactionNotFrozen
	}
	return tx.bodies[0][0].MakeDigest(), nil
}

// UnpackTransaction - rebuild a frozen transaction from its packed
// bodies in canonical chunk major order
//
// repacking the result reproduces the input byte for byte, any
// inconsistency between the bodies is a pack error
func UnpackTransaction(packedBodies []Packed) (*Transaction, error) {
	if 0 == len(packedBodies) {
		return nil, fault.ErrNotTransactionPack
	}

	unpacked := make([]*Body, len(packedBodies))
	for i, packed := range packedBodies {
		body, n, err := packed.UnpackBody()
		if nil != err {
			return nil, err
		}
		if n != len(packed) {
			return nil, fault.ErrNotTransactionPack
		}
		unpacked[i] = body
	}

	first := unpacked[0]

	// nodes repeat within each chunk, chunks repeat the node list
	nodeIds := []entity.NodeAccountId{}
	for _, body := range unpacked {
		if body.TransactionId != first.TransactionId {
			break
		}
		nodeIds = append(nodeIds, body.NodeId)
	}
	if 0 == len(nodeIds) || 0 != len(packedBodies)%len(nodeIds) {
		return nil, fault.ErrNotTransactionPack
	}
	chunkCount := len(packedBodies) / len(nodeIds)

	chunks := make([]Record, chunkCount)
	for i := 0; i < chunkCount; i += 1 {
		chunks[i] = unpacked[i*len(nodeIds)].Payload
	}

	payload := chunks[0]
	if chunkCount > 1 {
		c, ok := payload.(chunkable)
		if !ok {
			return nil, fault.ErrNotTransactionPack
		}
		joined, err := c.join(chunks)
		if nil != err {
			return nil, err
		}
		payload = joined
	}

	tx := New(payload)
	tx.maxFee = first.MaxFee
	tx.memo = first.Memo
	tx.transactionId = first.TransactionId
	tx.nodeIds = nodeIds
	if err := tx.Freeze(); nil != err {
		return nil, err
	}

	// the round trip law: repacking must reproduce the input
	repacked := tx.Bodies()
	if len(repacked) != len(packedBodies) {
		return nil, fault.ErrNotTransactionPack
	}
	for i, body := range repacked {
		if !bytes.Equal(body, packedBodies[i]) {
			return nil, fault.ErrNotTransactionPack
		}
	}
	return tx, nil
}
