// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"context"

	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/status"
	"github.com/meridian-net/meridian-sdk-go/transaction"
)

// Receipt - the terminal outcome of a transaction
type Receipt struct {
	TransactionId transaction.TransactionId `json:"transactionId"`
	Status        status.Code               `json:"status"`
	NodeId        entity.NodeAccountId      `json:"nodeId"`
}

// GetReceipt - poll the network until the transaction reaches a
// terminal status
//
// pending and not-yet-known receipts poll again with backoff; a
// terminal failure returns the receipt together with a rejection
// error so the caller can inspect the status; running out of time
// is a receipt timeout
func (client *Client) GetReceipt(ctx context.Context, id transaction.TransactionId) (*Receipt, error) {
	policy := client.retryPolicy()
	ctx, cancel := withPolicyTimeout(ctx, policy)
	defer cancel()

	nodes := client.NodeAccountIds()
	if 0 == len(nodes) {
		return nil, fault.ErrNoNodeIdsAvailable
	}

	failures := 0
	maxFailures := policy.MaxAttempts
	if maxFailures < 1 {
		maxFailures = 1
	}

	for poll := 0; ; poll += 1 {
		if poll > 0 {
			if err := sleepWithContext(ctx, backoffDelay(poll-1, policy)); nil != err {
				return nil, fault.ErrReceiptTimeout
			}
		}
		if nil != ctx.Err() {
			return nil, fault.ErrReceiptTimeout
		}

		nodeId, ok := client.nextHealthyNode(nodes)
		if !ok {
			return nil, fault.ErrNoHealthyNodes
		}
		endpoint := client.endpointFor(nodeId)

		channel, err := client.channelFor(endpoint)
		if nil != err {
			client.health.markFailure(nodeId)
			client.receiptLog.Warnf("dial: %s error: %s", endpoint, err)
			failures += 1
			if failures >= maxFailures {
				return nil, maxAttemptsError(err)
			}
			continue
		}

		receipt, err := channel.QueryReceipt(id)
		if nil != err {
			if fault.IsErrNotFound(err) {
				// receipt not available yet, keep polling
				client.receiptLog.Debugf("transaction: %s receipt not ready", id)
				continue
			}
			client.health.markFailure(nodeId)
			client.dropChannel(endpoint)
			client.receiptLog.Warnf("query: %s error: %s", nodeId, err)
			failures += 1
			if failures >= maxFailures {
				return nil, maxAttemptsError(err)
			}
			continue
		}

		client.health.markSuccess(nodeId)
		receipt.NodeId = nodeId

		if !receipt.Status.IsTerminal() {
			client.receiptLog.Debugf("transaction: %s still %s", id, receipt.Status)
			continue
		}
		if receipt.Status.IsSuccess() {
			client.receiptLog.Infof("transaction: %s reached %s", id, receipt.Status)
			return receipt, nil
		}
		client.receiptLog.Errorf("transaction: %s failed with %s", id, receipt.Status)
		return receipt, fault.ErrTransactionRejected
	}
}

// round-robin over the network nodes skipping cooldowns
func (client *Client) nextHealthyNode(nodes []entity.NodeAccountId) (entity.NodeAccountId, bool) {
	n := len(nodes)
	start := int((client.rotation.Increment() - 1) % uint64(n))
	for k := 0; k < n; k += 1 {
		nodeId := nodes[(start+k)%n]
		if client.health.isHealthy(nodeId) {
			return nodeId, true
		}
	}
	return entity.NodeAccountId{}, false
}
