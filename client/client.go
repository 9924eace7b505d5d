// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package client - submission side of the SDK
//
// a Client owns the network map, the per node health state and the
// retry policy; Execute drives a frozen signed transaction through
// node selection, submission and backoff until the network accepts
// it or the policy gives up
package client

import (
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/meridian-net/meridian-sdk-go/account"
	"github.com/meridian-net/meridian-sdk-go/chain"
	"github.com/meridian-net/meridian-sdk-go/counter"
	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/fault"
)

// default settings
const (
	defaultMaxFee   = 100000000
	defaultCooldown = 30 * time.Second
)

// one entry of the network map
type nodeEntry struct {
	id       entity.NodeAccountId
	endpoint string
}

// Client - connection to one Meridian network
type Client struct {
	sync.RWMutex

	chainName     string
	nodes         []nodeEntry
	dial          Dialer
	channels      map[string]Channel
	rotation      counter.Counter
	policy        RetryPolicy
	health        *healthRegistry
	operatorId    entity.AccountId
	operatorKey   *account.PrivateKey
	defaultMaxFee uint64
	checksums     bool

	log        *logger.L
	executeLog *logger.L
	receiptLog *logger.L
}

// New - create a client for one chain
//
// the network map is keyed by node account id in text form, values
// are host:port endpoints
func New(chainName string, network map[string]string) (*Client, error) {
	if !chain.Valid(chainName) {
		return nil, fault.ErrInvalidChain
	}
	if 0 == len(network) {
		return nil, fault.ErrNoNodeIdsAvailable
	}

	nodes := make([]nodeEntry, 0, len(network))
	for id, endpoint := range network {
		nodeId, err := entity.NodeAccountIdFromString(id)
		if nil != err {
			return nil, err
		}
		nodes = append(nodes, nodeEntry{
			id:       nodeId.Normalized(),
			endpoint: endpoint,
		})
	}

	// deterministic rotation order
	sort.Slice(nodes, func(i, j int) bool {
		a := nodes[i].id
		b := nodes[j].id
		if a.Shard != b.Shard {
			return a.Shard < b.Shard
		}
		if a.Realm != b.Realm {
			return a.Realm < b.Realm
		}
		return a.Number < b.Number
	})

	log := logger.New("client")

	return &Client{
		chainName:     chainName,
		nodes:         nodes,
		dial:          DialNode,
		channels:      make(map[string]Channel),
		policy:        DefaultRetryPolicy(),
		health:        newHealthRegistry(defaultCooldown, log),
		defaultMaxFee: defaultMaxFee,
		checksums:     true,
		log:           log,
		executeLog:    logger.New("execute"),
		receiptLog:    logger.New("receipt"),
	}, nil
}

// Chain - the chain this client submits to
func (client *Client) Chain() string {
	return client.chainName
}

// NodeAccountIds - the network nodes in rotation order
func (client *Client) NodeAccountIds() []entity.NodeAccountId {
	ids := make([]entity.NodeAccountId, len(client.nodes))
	for i, node := range client.nodes {
		ids[i] = node.id
	}
	return ids
}

// SetOperator - the account that pays for and signs transactions
// the client freezes and signs on behalf of this account when given
// an unfrozen transaction
//
// the key must belong to this chain: a test key cannot sign for the
// main network nor a live key for a test network
func (client *Client) SetOperator(id entity.AccountId, key *account.PrivateKey) error {
	if nil != key && key.IsTesting() != chain.IsTesting(client.chainName) {
		return fault.ErrWrongNetworkForPublicKey
	}
	client.Lock()
	defer client.Unlock()
	client.operatorId = id
	client.operatorKey = key
	return nil
}

// SetRetryPolicy - replace the retry policy
func (client *Client) SetRetryPolicy(policy RetryPolicy) {
	client.Lock()
	defer client.Unlock()
	client.policy = policy
}

// SetDefaultMaxFee - fee applied to transactions frozen by the client
func (client *Client) SetDefaultMaxFee(maxFee uint64) {
	client.Lock()
	defer client.Unlock()
	client.defaultMaxFee = maxFee
}

// SetChecksumValidation - enable or disable entity checksum checks
// before submission
func (client *Client) SetChecksumValidation(enabled bool) {
	client.Lock()
	defer client.Unlock()
	client.checksums = enabled
}

// SetDialer - replace the channel factory
func (client *Client) SetDialer(dial Dialer) {
	client.Lock()
	defer client.Unlock()
	client.dial = dial
}

// Close - shut down all open channels
func (client *Client) Close() {
	client.Lock()
	defer client.Unlock()

	for endpoint, channel := range client.channels {
		if err := channel.Close(); nil != err {
			client.log.Warnf("close %s error: %s", endpoint, err)
		}
		delete(client.channels, endpoint)
	}
}

// endpoint for a node id, empty if unknown
func (client *Client) endpointFor(nodeId entity.NodeAccountId) string {
	normalized := nodeId.Normalized()
	for _, node := range client.nodes {
		if node.id == normalized {
			return node.endpoint
		}
	}
	return ""
}

// fetch or open the channel for an endpoint
func (client *Client) channelFor(endpoint string) (Channel, error) {
	client.Lock()
	defer client.Unlock()

	if channel, ok := client.channels[endpoint]; ok {
		return channel, nil
	}
	channel, err := client.dial(endpoint)
	if nil != err {
		return nil, err
	}
	client.channels[endpoint] = channel
	return channel, nil
}

// drop a cached channel after a transport failure so the next
// attempt reconnects
func (client *Client) dropChannel(endpoint string) {
	client.Lock()
	defer client.Unlock()

	if channel, ok := client.channels[endpoint]; ok {
		_ = channel.Close()
		delete(client.channels, endpoint)
	}
}

func (client *Client) retryPolicy() RetryPolicy {
	client.RLock()
	defer client.RUnlock()
	return client.policy
}
