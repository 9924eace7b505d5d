// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client_test

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/ed25519"

	"github.com/meridian-net/meridian-sdk-go/account"
	"github.com/meridian-net/meridian-sdk-go/chain"
	"github.com/meridian-net/meridian-sdk-go/client"
	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/status"
	"github.com/meridian-net/meridian-sdk-go/transaction"
)

const testingDirName = "testing"

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	removeFiles()
	os.Exit(rc)
}

// one scripted answer to a submit call
type submitStep struct {
	code status.Code
	err  error
}

// one scripted answer to a receipt query
type receiptStep struct {
	status status.Code
	err    error
}

// scripted node channel, the last step repeats once the script is
// exhausted
type scriptedChannel struct {
	sync.Mutex
	submits      []submitStep
	receipts     []receiptStep
	submitCount  int
	receiptCount int
	closed       bool
}

func (channel *scriptedChannel) Submit(envelope transaction.Packed) (status.Code, error) {
	channel.Lock()
	defer channel.Unlock()

	i := channel.submitCount
	channel.submitCount += 1
	if i >= len(channel.submits) {
		i = len(channel.submits) - 1
	}
	if i < 0 {
		return status.Unknown, errors.New("no scripted submits")
	}
	return channel.submits[i].code, channel.submits[i].err
}

func (channel *scriptedChannel) QueryReceipt(id transaction.TransactionId) (*client.Receipt, error) {
	channel.Lock()
	defer channel.Unlock()

	i := channel.receiptCount
	channel.receiptCount += 1
	if i >= len(channel.receipts) {
		i = len(channel.receipts) - 1
	}
	if i < 0 {
		return nil, errors.New("no scripted receipts")
	}
	step := channel.receipts[i]
	if nil != step.err {
		return nil, step.err
	}
	return &client.Receipt{
		TransactionId: id,
		Status:        step.status,
	}, nil
}

func (channel *scriptedChannel) Close() error {
	channel.Lock()
	defer channel.Unlock()
	channel.closed = true
	return nil
}

func (channel *scriptedChannel) submitted() int {
	channel.Lock()
	defer channel.Unlock()
	return channel.submitCount
}

func (channel *scriptedChannel) queried() int {
	channel.Lock()
	defer channel.Unlock()
	return channel.receiptCount
}

// dialer backed by a fixed endpoint table
func dialerFor(channels map[string]client.Channel) client.Dialer {
	return func(endpoint string) (client.Channel, error) {
		channel, ok := channels[endpoint]
		if !ok {
			return nil, errors.New("endpoint unreachable: " + endpoint)
		}
		return channel, nil
	}
}

// deterministic operator key
func operatorKey(t *testing.T) *account.PrivateKey {
	t.Helper()

	seed := bytes.Repeat([]byte{0x42}, ed25519.SeedSize)
	_, priv, err := ed25519.GenerateKey(bytes.NewBuffer(seed))
	if nil != err {
		t.Fatalf("generate key error: %s", err)
	}
	return &account.PrivateKey{
		Test:      true,
		Algorithm: account.ED25519,
		Key:       []byte(priv),
	}
}

// a short fused retry policy for tests
func testPolicy() client.RetryPolicy {
	return client.RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
		Timeout:     5 * time.Second,
	}
}

// client over scripted channels with the operator configured
func newTestClient(t *testing.T, network map[string]string, channels map[string]client.Channel) *client.Client {
	t.Helper()

	c, err := client.New(chain.Testing, network)
	if nil != err {
		t.Fatalf("new client error: %s", err)
	}
	c.SetDialer(dialerFor(channels))
	c.SetRetryPolicy(testPolicy())
	if err := c.SetOperator(entity.AccountId{Number: 2}, operatorKey(t)); nil != err {
		t.Fatalf("set operator error: %s", err)
	}
	return c
}

func testTransfer() *transaction.Transaction {
	return transaction.New(&transaction.Transfer{
		Transfers: []transaction.AccountAmount{
			{Account: entity.AccountId{Number: 2}, Amount: -50},
			{Account: entity.AccountId{Number: 9}, Amount: 50},
		},
	})
}
