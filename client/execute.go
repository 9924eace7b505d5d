// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"context"

	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/transaction"
)

// Response - the result of an accepted submission
type Response struct {
	TransactionId transaction.TransactionId `json:"transactionId"`
	NodeId        entity.NodeAccountId      `json:"nodeId"`
	Digest        transaction.Digest        `json:"digest"`
}

// Execute - submit a transaction to the network
//
// an unfrozen transaction is completed with the client defaults and
// the operator id, then frozen; an unsigned one is signed with the
// operator key; every chunk is driven through node selection and
// retry until a node accepts it
//
// permanent precheck rejections return immediately, transient ones
// retry with backoff up to the policy attempt limit
func (client *Client) Execute(ctx context.Context, tx *transaction.Transaction) (*Response, error) {
	policy := client.retryPolicy()
	ctx, cancel := withPolicyTimeout(ctx, policy)
	defer cancel()

	if err := client.prepare(tx); nil != err {
		return nil, err
	}
	if client.checksumsEnabled() {
		if err := tx.ValidateChecksums(client.chainName); nil != err {
			return nil, err
		}
	}

	envelopes, err := tx.Envelopes()
	if nil != err {
		return nil, err
	}

	nodeCount := len(tx.NodeAccountIds())
	chunkCount := len(envelopes) / nodeCount

	var response *Response
	for chunk := 0; chunk < chunkCount; chunk += 1 {
		candidates := envelopes[chunk*nodeCount : (chunk+1)*nodeCount]
		r, err := client.submitChunk(ctx, policy, candidates)
		if nil != err {
			return nil, err
		}
		if 0 == chunk {
			response = r
		}
	}
	return response, nil
}

// ExecuteSigned - submit envelopes that were frozen and signed
// elsewhere, e.g. by an offline signer
//
// every envelope must verify against its own signatures before
// anything is sent
func (client *Client) ExecuteSigned(ctx context.Context, envelopes []*transaction.SignedEnvelope) (*Response, error) {
	if 0 == len(envelopes) {
		return nil, fault.ErrMissingPayload
	}
	for _, envelope := range envelopes {
		if err := envelope.Verify(); nil != err {
			return nil, err
		}
	}

	policy := client.retryPolicy()
	ctx, cancel := withPolicyTimeout(ctx, policy)
	defer cancel()

	var response *Response
	i := 0
	for i < len(envelopes) {
		// consecutive envelopes with one transaction id form a chunk
		j := i
		for j < len(envelopes) && envelopes[j].TransactionId == envelopes[i].TransactionId {
			j += 1
		}
		r, err := client.submitChunk(ctx, policy, envelopes[i:j])
		if nil != err {
			return nil, err
		}
		if 0 == i {
			response = r
		}
		i = j
	}
	return response, nil
}

// complete an unfrozen transaction and ensure it is signed
func (client *Client) prepare(tx *transaction.Transaction) error {
	client.RLock()
	operatorId := client.operatorId
	operatorKey := client.operatorKey
	maxFee := client.defaultMaxFee
	client.RUnlock()

	if !tx.IsFrozen() {
		if 0 == len(tx.NodeAccountIds()) {
			if err := tx.SetNodeAccountIds(client.NodeAccountIds()); nil != err {
				return err
			}
		}
		if 0 == tx.MaxFee() {
			if err := tx.SetMaxFee(maxFee); nil != err {
				return err
			}
		}
		if tx.TransactionId().IsZero() {
			if operatorId.IsZero() {
				return fault.ErrInvalidTransactionId
			}
			if err := tx.SetTransactionId(transaction.NewTransactionId(operatorId)); nil != err {
				return err
			}
		}
		if err := tx.Freeze(); nil != err {
			return err
		}
	}

	if 0 == len(tx.Signers()) {
		if nil == operatorKey {
			return fault.ErrTransactionNotSigned
		}
		if err := tx.Sign(operatorKey); nil != err {
			return err
		}
	}
	return nil
}

// drive one chunk through selection, submission and retry
func (client *Client) submitChunk(ctx context.Context, policy RetryPolicy, candidates []*transaction.SignedEnvelope) (*Response, error) {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error

attempt_loop:
	for attempt := 0; attempt < attempts; attempt += 1 {
		if attempt > 0 {
			if err := sleepWithContext(ctx, backoffDelay(attempt-1, policy)); nil != err {
				return nil, err
			}
		}
		if nil != ctx.Err() {
			return nil, fault.ErrDeadlineExceeded
		}

		envelope := client.nextHealthy(candidates)
		if nil == envelope {
			return nil, fault.ErrNoHealthyNodes
		}
		nodeId := envelope.NodeId
		endpoint := client.endpointFor(nodeId)

		packed, err := envelope.Pack()
		if nil != err {
			return nil, err
		}

		channel, err := client.channelFor(endpoint)
		if nil != err {
			client.health.markFailure(nodeId)
			client.executeLog.Warnf("dial: %s error: %s", endpoint, err)
			lastErr = err
			continue attempt_loop
		}

		code, err := channel.Submit(packed)
		if nil != err {
			client.health.markFailure(nodeId)
			client.dropChannel(endpoint)
			client.executeLog.Warnf("submit: %s error: %s", nodeId, err)
			lastErr = err
			continue attempt_loop
		}

		precheck := code.PrecheckError()
		if nil == precheck {
			client.health.markSuccess(nodeId)
			client.executeLog.Debugf("transaction: %s accepted by: %s", envelope.TransactionId, nodeId)
			return &Response{
				TransactionId: envelope.TransactionId,
				NodeId:        nodeId,
				Digest:        envelope.Body.MakeDigest(),
			}, nil
		}
		if !fault.IsErrTransient(precheck) {
			client.executeLog.Errorf("transaction: %s rejected: %s", envelope.TransactionId, code)
			return nil, precheck
		}

		client.health.markFailure(nodeId)
		client.executeLog.Infof("node: %s busy: %s", nodeId, code)
		lastErr = precheck
	}

	client.executeLog.Errorf("gave up after %d attempts, last error: %s", attempts, lastErr)
	return nil, maxAttemptsError(lastErr)
}

// attach the last node level error to the attempt limit fault so the
// caller can see what kept failing
func maxAttemptsError(lastErr error) error {
	if nil == lastErr {
		return fault.ErrMaxAttemptsExceeded
	}
	return fault.TransientError(string(fault.ErrMaxAttemptsExceeded) + ": " + lastErr.Error())
}

// round-robin over the candidate envelopes skipping nodes that are
// cooling down or missing from the network map
func (client *Client) nextHealthy(candidates []*transaction.SignedEnvelope) *transaction.SignedEnvelope {
	n := len(candidates)
	if 0 == n {
		return nil
	}

	start := int((client.rotation.Increment() - 1) % uint64(n))
	for k := 0; k < n; k += 1 {
		envelope := candidates[(start+k)%n]
		if "" == client.endpointFor(envelope.NodeId) {
			continue
		}
		if client.health.isHealthy(envelope.NodeId) {
			return envelope
		}
	}
	return nil
}

func (client *Client) checksumsEnabled() bool {
	client.RLock()
	defer client.RUnlock()
	return client.checksums
}

func withPolicyTimeout(ctx context.Context, policy RetryPolicy) (context.Context, context.CancelFunc) {
	if policy.Timeout > 0 {
		return context.WithTimeout(ctx, policy.Timeout)
	}
	return context.WithCancel(ctx)
}
