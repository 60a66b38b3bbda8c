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

import (
	"errors"
	"fmt"
)

// ErrInvariant wraps every violation reported by Verify.
var ErrInvariant = errors.New("tree invariant violated")

// Verify checks the ordering rule, the cached heights and the node count
// and returns the first violation found.
func (t *SearchTree[K, V]) Verify() error {
	if bad, ok := t.firstDisorder(t.root, bound[K]{}, bound[K]{}); !ok {
		return fmt.Errorf("%w: node %v key %v is out of order", ErrInvariant, bad, t.nodes.at(bad).key)
	}
	if _, err := t.checkHeights(t.root); err != nil {
		return err
	}
	if count := t.NodeCount(); count != t.nodes.used {
		return fmt.Errorf("%w: %d nodes reachable but %d allocated", ErrInvariant, count, t.nodes.used)
	}
	return nil
}

// checkHeights compares every cached height with the recomputed one.
func (t *SearchTree[K, V]) checkHeights(id NodeID) (int, error) {
	if id == Nil {
		return 0, nil
	}
	n := t.nodes.at(id)
	left, err := t.checkHeights(n.left)
	if err != nil {
		return 0, err
	}
	right, err := t.checkHeights(n.right)
	if err != nil {
		return 0, err
	}
	actual := 1 + max(left, right)
	if n.height != actual {
		return 0, fmt.Errorf("%w: node %v key %v caches height %d, actual %d", ErrInvariant, id, n.key, n.height, actual)
	}
	return actual, nil
}

func (t *SearchTree[K, V]) verifyBalance() error {
	for id := range t.PreOrder() {
		if bf := t.BalanceFactor(id); bf > 1 || bf < -1 {
			return fmt.Errorf("%w: node %v key %v has balance factor %+d", ErrInvariant, id, t.nodes.at(id).key, bf)
		}
	}
	return nil
}
