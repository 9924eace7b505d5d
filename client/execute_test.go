// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/meridian-net/meridian-sdk-go/chain"
	"github.com/meridian-net/meridian-sdk-go/client"
	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/status"
	"github.com/meridian-net/meridian-sdk-go/transaction"
)

var oneNode = map[string]string{"0.0.3": "node3.test:2130"}

// a clean submission succeeds on the first attempt
func TestExecuteSuccess(t *testing.T) {

	node := &scriptedChannel{submits: []submitStep{{status.OK, nil}}}
	c := newTestClient(t, oneNode, map[string]client.Channel{"node3.test:2130": node})
	defer c.Close()

	response, err := c.Execute(context.Background(), testTransfer())
	if nil != err {
		t.Fatalf("execute error: %s", err)
	}
	if 1 != node.submitted() {
		t.Errorf("submit count: %d  expected: 1", node.submitted())
	}
	if response.NodeId.Number != 3 {
		t.Errorf("node: %s  expected: 0.0.3", response.NodeId)
	}
	if response.TransactionId.Account.Number != 2 {
		t.Errorf("payer: %s  expected operator account", response.TransactionId.Account)
	}
}

// busy twice then accepted: success on the third attempt
func TestExecuteRetriesTransient(t *testing.T) {

	node := &scriptedChannel{submits: []submitStep{
		{status.Busy, nil},
		{status.Busy, nil},
		{status.OK, nil},
	}}
	c := newTestClient(t, oneNode, map[string]client.Channel{"node3.test:2130": node})
	defer c.Close()

	_, err := c.Execute(context.Background(), testTransfer())
	if nil != err {
		t.Fatalf("execute error: %s", err)
	}
	if 3 != node.submitted() {
		t.Errorf("submit count: %d  expected: 3", node.submitted())
	}
}

// a permanent rejection must not be retried
func TestExecutePermanentRejection(t *testing.T) {

	node := &scriptedChannel{submits: []submitStep{{status.InvalidSignature, nil}}}
	c := newTestClient(t, oneNode, map[string]client.Channel{"node3.test:2130": node})
	defer c.Close()

	_, err := c.Execute(context.Background(), testTransfer())
	if !fault.IsErrRejected(err) {
		t.Fatalf("execute error: %v  expected a rejection", err)
	}
	if 1 != node.submitted() {
		t.Errorf("submit count: %d  expected: 1", node.submitted())
	}
}

// persistent transient failure exhausts the attempt budget
func TestExecuteMaxAttempts(t *testing.T) {

	node := &scriptedChannel{submits: []submitStep{{status.Busy, nil}}}
	c := newTestClient(t, oneNode, map[string]client.Channel{"node3.test:2130": node})
	defer c.Close()

	policy := testPolicy()
	policy.MaxAttempts = 3
	c.SetRetryPolicy(policy)

	_, err := c.Execute(context.Background(), testTransfer())
	if !fault.IsErrTransient(err) {
		t.Fatalf("execute error: %v  expected a transient error", err)
	}
	if !strings.Contains(err.Error(), "maximum submission attempts") {
		t.Fatalf("execute error: %v  expected an attempt limit error", err)
	}
	// the last node level failure is carried in the message
	if !strings.Contains(err.Error(), "precheck Busy") {
		t.Errorf("execute error: %v  does not carry the last failure", err)
	}
	if 3 != node.submitted() {
		t.Errorf("submit count: %d  expected: 3", node.submitted())
	}
}

// a failing node is skipped in favour of a healthy one
func TestExecuteFailover(t *testing.T) {

	network := map[string]string{
		"0.0.3": "node3.test:2130",
		"0.0.4": "node4.test:2130",
	}
	bad := &scriptedChannel{} // no scripted submits: every call errors
	good := &scriptedChannel{submits: []submitStep{{status.OK, nil}}}
	c := newTestClient(t, network, map[string]client.Channel{
		"node3.test:2130": bad,
		"node4.test:2130": good,
	})
	defer c.Close()

	response, err := c.Execute(context.Background(), testTransfer())
	if nil != err {
		t.Fatalf("execute error: %s", err)
	}
	if response.NodeId.Number != 4 {
		t.Errorf("node: %s  expected: 0.0.4", response.NodeId)
	}
	if 1 != good.submitted() {
		t.Errorf("good submit count: %d  expected: 1", good.submitted())
	}
}

// once every node is cooling down the engine reports it
func TestExecuteNoHealthyNodes(t *testing.T) {

	node := &scriptedChannel{} // transport error on every submit
	c := newTestClient(t, oneNode, map[string]client.Channel{"node3.test:2130": node})
	defer c.Close()

	policy := testPolicy()
	policy.MaxAttempts = 10
	c.SetRetryPolicy(policy)

	_, err := c.Execute(context.Background(), testTransfer())
	if fault.ErrNoHealthyNodes != err {
		t.Fatalf("execute error: %v  expected: %v", err, fault.ErrNoHealthyNodes)
	}
	// three failures trip the cooldown, the fourth attempt cannot
	// find a node
	if 3 != node.submitted() {
		t.Errorf("submit count: %d  expected: 3", node.submitted())
	}
}

// a cancelled context stops before any network call
func TestExecuteCancelled(t *testing.T) {

	node := &scriptedChannel{submits: []submitStep{{status.OK, nil}}}
	c := newTestClient(t, oneNode, map[string]client.Channel{"node3.test:2130": node})
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Execute(ctx, testTransfer())
	if fault.ErrDeadlineExceeded != err {
		t.Fatalf("execute error: %v  expected: %v", err, fault.ErrDeadlineExceeded)
	}
	if 0 != node.submitted() {
		t.Errorf("submit count: %d  expected: 0", node.submitted())
	}
}

// without an operator an unsigned transaction cannot be executed
func TestExecuteUnsignedNoOperator(t *testing.T) {

	node := &scriptedChannel{submits: []submitStep{{status.OK, nil}}}
	c, err := client.New(chain.Testing, oneNode)
	if nil != err {
		t.Fatalf("new client error: %s", err)
	}
	c.SetDialer(dialerFor(map[string]client.Channel{"node3.test:2130": node}))
	c.SetRetryPolicy(testPolicy())
	defer c.Close()

	tx := testTransfer()
	tx.SetNodeAccountIds(c.NodeAccountIds())
	tx.SetTransactionId(transaction.NewTransactionId(entity.AccountId{Number: 2}))
	if err := tx.Freeze(); nil != err {
		t.Fatalf("freeze error: %s", err)
	}

	_, err = c.Execute(context.Background(), tx)
	if fault.ErrTransactionNotSigned != err {
		t.Fatalf("execute error: %v  expected: %v", err, fault.ErrTransactionNotSigned)
	}
	if 0 != node.submitted() {
		t.Errorf("submit count: %d  expected: 0", node.submitted())
	}
}

// a test network key is refused as operator on the main network
func TestSetOperatorWrongNetwork(t *testing.T) {

	c, err := client.New(chain.Meridian, oneNode)
	if nil != err {
		t.Fatalf("new client error: %s", err)
	}
	defer c.Close()

	err = c.SetOperator(entity.AccountId{Number: 2}, operatorKey(t))
	if fault.ErrWrongNetworkForPublicKey != err {
		t.Fatalf("set operator error: %v  expected: %v", err, fault.ErrWrongNetworkForPublicKey)
	}
}

// invalid payload fields fail before anything is sent
func TestExecutePreflight(t *testing.T) {

	node := &scriptedChannel{submits: []submitStep{{status.OK, nil}}}
	c := newTestClient(t, oneNode, map[string]client.Channel{"node3.test:2130": node})
	defer c.Close()

	tx := transaction.New(&transaction.ContractCall{})
	_, err := c.Execute(context.Background(), tx)
	if fault.ErrMissingContractId != err {
		t.Fatalf("execute error: %v  expected: %v", err, fault.ErrMissingContractId)
	}
	if 0 != node.submitted() {
		t.Errorf("submit count: %d  expected: 0", node.submitted())
	}
}

// an id pasted from another chain fails the checksum gate
func TestExecuteChecksumGate(t *testing.T) {

	node := &scriptedChannel{submits: []submitStep{{status.OK, nil}}}
	c := newTestClient(t, oneNode, map[string]client.Channel{"node3.test:2130": node})
	defer c.Close()

	foreign, err := entity.AccountIdFromString(
		entity.AccountId{Number: 9}.StringWithChecksum(chain.Meridian))
	if nil != err {
		t.Fatalf("parse error: %s", err)
	}

	tx := transaction.New(&transaction.Transfer{
		Transfers: []transaction.AccountAmount{
			{Account: entity.AccountId{Number: 2}, Amount: -50},
			{Account: foreign, Amount: 50},
		},
	})

	_, err = c.Execute(context.Background(), tx)
	if !fault.IsErrValidation(err) {
		t.Fatalf("execute error: %v  expected a validation error", err)
	}
	// the error names the foreign id so it can be found in the payload
	if !strings.Contains(err.Error(), "0.0.9") {
		t.Errorf("execute error: %v  does not name the entity", err)
	}
	if 0 != node.submitted() {
		t.Errorf("submit count: %d  expected: 0", node.submitted())
	}
}

// every chunk of a long message is submitted in order
func TestExecuteChunked(t *testing.T) {

	node := &scriptedChannel{submits: []submitStep{{status.OK, nil}}}
	c := newTestClient(t, oneNode, map[string]client.Channel{"node3.test:2130": node})
	defer c.Close()

	message := make([]byte, 2500)
	for i := range message {
		message[i] = byte(i)
	}
	tx := transaction.New(&transaction.TopicMessage{
		Topic:   entity.TopicId{Number: 42},
		Message: message,
	})

	response, err := c.Execute(context.Background(), tx)
	if nil != err {
		t.Fatalf("execute error: %s", err)
	}
	if 3 != node.submitted() {
		t.Errorf("submit count: %d  expected: 3", node.submitted())
	}
	// the response carries the base transaction id
	if response.TransactionId != tx.TransactionIds()[0] {
		t.Errorf("response id: %s  expected: %s", response.TransactionId, tx.TransactionIds()[0])
	}
}

// pre-signed envelopes can be submitted without the signing key
func TestExecuteSigned(t *testing.T) {

	node := &scriptedChannel{submits: []submitStep{{status.OK, nil}}}
	c := newTestClient(t, oneNode, map[string]client.Channel{"node3.test:2130": node})
	defer c.Close()

	// freeze and sign offline
	tx := testTransfer()
	tx.SetNodeAccountIds(c.NodeAccountIds())
	tx.SetTransactionId(transaction.NewTransactionId(entity.AccountId{Number: 2}))
	tx.SetMaxFee(10)
	if err := tx.Freeze(); nil != err {
		t.Fatalf("freeze error: %s", err)
	}
	if err := tx.Sign(operatorKey(t)); nil != err {
		t.Fatalf("sign error: %s", err)
	}
	envelopes, err := tx.Envelopes()
	if nil != err {
		t.Fatalf("envelopes error: %s", err)
	}

	response, err := c.ExecuteSigned(context.Background(), envelopes)
	if nil != err {
		t.Fatalf("execute error: %s", err)
	}
	if 1 != node.submitted() {
		t.Errorf("submit count: %d  expected: 1", node.submitted())
	}
	if response.TransactionId != envelopes[0].TransactionId {
		t.Errorf("response id: %s  expected: %s", response.TransactionId, envelopes[0].TransactionId)
	}

	// a tampered envelope is rejected before submission
	envelopes[0].Body[len(envelopes[0].Body)-1] ^= 0x01
	_, err = c.ExecuteSigned(context.Background(), envelopes)
	if fault.ErrInvalidSignature != err {
		t.Errorf("execute error: %v  expected: %v", err, fault.ErrInvalidSignature)
	}
}

// concurrent submissions share one client safely
func TestExecuteConcurrent(t *testing.T) {

	node := &scriptedChannel{submits: []submitStep{{status.OK, nil}}}
	c := newTestClient(t, oneNode, map[string]client.Channel{"node3.test:2130": node})
	defer c.Close()

	const workers = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Execute(context.Background(), testTransfer())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if nil != err {
			t.Errorf("execute error: %s", err)
		}
	}
	if workers != node.submitted() {
		t.Errorf("submit count: %d  expected: %d", node.submitted(), workers)
	}
}
