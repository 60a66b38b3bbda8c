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

package tree

import "cmp"

// BalancedTree is an AVL tree: a SearchTree whose Insert and Delete
// restore |height(left) - height(right)| <= 1 at every ancestor of the
// change. Lookup, traversals and diagnostics are inherited unchanged.
type BalancedTree[K cmp.Ordered, V any] struct {
	SearchTree[K, V]
}

// NewBalancedTree creates an empty AVL tree. Inserting an existing key
// overwrites its data unless WithDuplicates(DuplicatesReject) is given.
// DuplicatesRight is refused: a rotation could move an equal key to the
// left of its twin.
func NewBalancedTree[K cmp.Ordered, V any](opts ...Option) *BalancedTree[K, V] {
	o := buildOptions(DuplicatesOverwrite, opts)
	mustf(o.duplicates != DuplicatesRight, "balanced tree cannot route duplicate keys right")
	return &BalancedTree[K, V]{
		SearchTree: SearchTree[K, V]{
			nodes:    newArena[K, V](),
			id:       lastTreeID.Add(1),
			policy:   o.duplicates,
			observer: o.observer,
		},
	}
}

// Insert adds key with data and rebalances from the new node's parent up
// to the root. The returned handle is what SearchTree.Insert would return.
func (t *BalancedTree[K, V]) Insert(key K, data V) (NodeID, bool) {
	id, path, created := t.insert(key, data)
	if created {
		t.rebalancePath(path)
	}
	return id, created
}

// Delete removes the first node carrying key and rebalances every
// ancestor of the spliced node, including after successor splices.
func (t *BalancedTree[K, V]) Delete(key K) bool {
	path, removed := t.delete(key)
	if removed {
		t.rebalancePath(path)
	}
	return removed
}

// Verify also checks the AVL condition on every node.
func (t *BalancedTree[K, V]) Verify() error {
	if err := t.SearchTree.Verify(); err != nil {
		return err
	}
	return t.verifyBalance()
}
