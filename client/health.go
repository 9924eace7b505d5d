// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package client

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"

	"github.com/meridian-net/meridian-sdk-go/counter"
	"github.com/meridian-net/meridian-sdk-go/entity"
)

// consecutive failures before a node is excluded from rotation
const failureLimit = 3

// per node health tracking
//
// failures accumulate until the limit, then the node enters a
// cooldown window; the cooldown entry expires on its own so a dead
// node re-enters rotation without explicit recovery handling
type healthRegistry struct {
	sync.Mutex
	failures map[entity.NodeAccountId]*counter.Counter
	cooldown *cache.Cache
	log      *logger.L
}

func newHealthRegistry(cooldownInterval time.Duration, log *logger.L) *healthRegistry {
	return &healthRegistry{
		failures: make(map[entity.NodeAccountId]*counter.Counter),
		cooldown: cache.New(cooldownInterval, 2*cooldownInterval),
		log:      log,
	}
}

func (registry *healthRegistry) counterFor(nodeId entity.NodeAccountId) *counter.Counter {
	registry.Lock()
	defer registry.Unlock()

	key := nodeId.Normalized()
	c, ok := registry.failures[key]
	if !ok {
		c = new(counter.Counter)
		registry.failures[key] = c
	}
	return c
}

// record a failed submission or transport error
func (registry *healthRegistry) markFailure(nodeId entity.NodeAccountId) {
	failures := registry.counterFor(nodeId).Increment()
	if failures >= failureLimit {
		registry.cooldown.SetDefault(nodeId.Normalized().String(), time.Now())
		registry.log.Warnf("node: %s cooling down after %d failures", nodeId, failures)
	}
}

// record a successful round trip, the node is healthy again
func (registry *healthRegistry) markSuccess(nodeId entity.NodeAccountId) {
	registry.counterFor(nodeId).Set(0)
	registry.cooldown.Delete(nodeId.Normalized().String())
}

// a node is healthy unless it is inside a cooldown window
func (registry *healthRegistry) isHealthy(nodeId entity.NodeAccountId) bool {
	_, coolingDown := registry.cooldown.Get(nodeId.Normalized().String())
	return !coolingDown
}
