// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/status"
	"github.com/meridian-net/meridian-sdk-go/transaction"
)

// Channel - transport to a single network node
type Channel interface {
	Submit(envelope transaction.Packed) (status.Code, error)
	QueryReceipt(id transaction.TransactionId) (*Receipt, error)
	Close() error
}

// Dialer - opens a channel to an endpoint
type Dialer func(endpoint string) (Channel, error)

// SubmitArguments - RPC parameters for transaction submission
type SubmitArguments struct {
	Envelope []byte `json:"envelope"`
}

// SubmitReply - RPC result of transaction submission
// the status is the node precheck outcome
type SubmitReply struct {
	Status uint64 `json:"status"`
}

// ReceiptArguments - RPC parameters for a receipt query
type ReceiptArguments struct {
	TransactionId string `json:"transactionId"`
}

// ReceiptReply - RPC result of a receipt query
type ReceiptReply struct {
	TransactionId string `json:"transactionId"`
	Status        uint64 `json:"status"`
	Found         bool   `json:"found"`
}

// to hold RPC connection streams
type rpcChannel struct {
	conn   net.Conn
	client *rpc.Client
}

// DialNode - create a JSON RPC connection to a node
//
// nodes use self-signed certificates so verification is skipped
func DialNode(endpoint string) (Channel, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", endpoint, tlsConfig)
	if nil != err {
		return nil, err
	}

	return &rpcChannel{
		conn:   conn,
		client: jsonrpc.NewClient(conn),
	}, nil
}

// Submit - send a packed signed envelope, returns the precheck status
func (channel *rpcChannel) Submit(envelope transaction.Packed) (status.Code, error) {

	args := SubmitArguments{
		Envelope: envelope,
	}
	var reply SubmitReply
	if err := channel.client.Call("Transaction.Submit", &args, &reply); nil != err {
		return status.Unknown, err
	}
	return status.FromUint64(reply.Status)
}

// QueryReceipt - fetch the receipt for a transaction id
func (channel *rpcChannel) QueryReceipt(id transaction.TransactionId) (*Receipt, error) {

	args := ReceiptArguments{
		TransactionId: id.String(),
	}
	var reply ReceiptReply
	if err := channel.client.Call("Transaction.Receipt", &args, &reply); nil != err {
		return nil, err
	}
	if !reply.Found {
		return nil, fault.ErrReceiptNotFound
	}

	code, err := status.FromUint64(reply.Status)
	if nil != err {
		return nil, err
	}
	receiptId, err := transaction.TransactionIdFromString(reply.TransactionId)
	if nil != err {
		return nil, err
	}
	return &Receipt{
		TransactionId: receiptId,
		Status:        code,
	}, nil
}

// Close - shut down the node connection
func (channel *rpcChannel) Close() error {
	if err := channel.client.Close(); nil != err {
		_ = channel.conn.Close()
		return err
	}
	return channel.conn.Close()
}
