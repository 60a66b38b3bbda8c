// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/binary"
	"log/slog"

	"github.com/cybrota/avlindex/tree"
	"github.com/willf/bloom"
)

// KeyIndex wraps a tree with a bloom filter of every key ever inserted,
// so lookups and deletes of keys never seen skip the descent. Deleted keys
// stay in the filter and fall through to the tree.
type KeyIndex struct {
	tree    tree.Tree[int64, string]
	filter  *bloom.BloomFilter
	metrics *Metrics
	logger  *slog.Logger
}

// NewKeyIndex builds the tree described by cfg. kind overrides
// cfg.Tree.Kind when non-empty.
func NewKeyIndex(cfg *Config, kind string, metrics *Metrics, logger *slog.Logger) (*KeyIndex, error) {
	t, err := cfg.newTree(kind, metrics)
	if err != nil {
		return nil, err
	}
	return &KeyIndex{
		tree:    t,
		filter:  bloom.New(cfg.Filter.BloomBits, cfg.Filter.BloomHashes),
		metrics: metrics,
		logger:  logger,
	}, nil
}

func keyBytes(key int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(key))
	return b[:]
}

func (ix *KeyIndex) Insert(key int64, data string) (tree.NodeID, bool) {
	ix.filter.Add(keyBytes(key))
	id, created := ix.tree.Insert(key, data)
	ix.metrics.observe("insert", created)
	ix.metrics.nodes.Set(float64(ix.tree.Len()))
	ix.logger.Debug("insert", "key", key, "created", created, "height", ix.tree.Height())
	return id, created
}

func (ix *KeyIndex) Delete(key int64) bool {
	if !ix.filter.Test(keyBytes(key)) {
		ix.metrics.filtered.Inc()
		ix.metrics.observe("delete", false)
		return false
	}
	removed := ix.tree.Delete(key)
	ix.metrics.observe("delete", removed)
	ix.metrics.nodes.Set(float64(ix.tree.Len()))
	ix.logger.Debug("delete", "key", key, "removed", removed, "height", ix.tree.Height())
	return removed
}

func (ix *KeyIndex) Lookup(key int64) (tree.NodeID, bool) {
	if !ix.filter.Test(keyBytes(key)) {
		ix.metrics.filtered.Inc()
		ix.metrics.observe("lookup", false)
		return tree.Nil, false
	}
	id, ok := ix.tree.Lookup(key)
	ix.metrics.observe("lookup", ok)
	return id, ok
}

// Clear empties the tree and forgets every key.
func (ix *KeyIndex) Clear() {
	ix.tree.Clear()
	ix.filter.ClearAll()
	ix.metrics.nodes.Set(0)
	ix.logger.Debug("clear")
}

func (ix *KeyIndex) Tree() tree.Tree[int64, string] {
	return ix.tree
}
