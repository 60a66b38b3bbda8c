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
	"cmp"
	"sync/atomic"
)

// lastTreeID hands out tree identities.
var lastTreeID atomic.Uint64

// SearchTree is an unbalanced binary search tree. Keys smaller than a
// node go left, everything else goes right.
type SearchTree[K cmp.Ordered, V any] struct {
	nodes    arena[K, V]
	root     NodeID
	id       uint64
	version  uint64
	policy   DuplicatePolicy
	observer Observer
}

// NewSearchTree creates an empty tree. Duplicates route right unless
// WithDuplicates says otherwise.
func NewSearchTree[K cmp.Ordered, V any](opts ...Option) *SearchTree[K, V] {
	o := buildOptions(DuplicatesRight, opts)
	return &SearchTree[K, V]{
		nodes:    newArena[K, V](),
		id:       lastTreeID.Add(1),
		policy:   o.duplicates,
		observer: o.observer,
	}
}

// Root returns the root handle, Nil for an empty tree.
func (t *SearchTree[K, V]) Root() NodeID {
	return t.root
}

// IsEmpty reports whether the tree holds no nodes.
func (t *SearchTree[K, V]) IsEmpty() bool {
	return t.root == Nil
}

// Len returns the number of nodes, O(1).
func (t *SearchTree[K, V]) Len() int {
	return t.nodes.used
}

// Height returns the cached height of the root, O(1).
func (t *SearchTree[K, V]) Height() int {
	return t.nodes.height(t.root)
}

// ID is unique among the trees of a process. Two trees may share a
// version, never an ID.
func (t *SearchTree[K, V]) ID() uint64 {
	return t.id
}

// Version changes on every mutation. An insert that leaves the tree as it
// was does not count.
func (t *SearchTree[K, V]) Version() uint64 {
	return t.version
}

// Policy returns the duplicate key policy in force.
func (t *SearchTree[K, V]) Policy() DuplicatePolicy {
	return t.policy
}

// Node returns a copy of the node behind id.
func (t *SearchTree[K, V]) Node(id NodeID) (Node[K, V], bool) {
	n, ok := t.nodes.resolve(id)
	if !ok {
		return Node[K, V]{}, false
	}
	return *n, true
}

// Key returns the key of a live node, the zero key otherwise.
func (t *SearchTree[K, V]) Key(id NodeID) K {
	n, _ := t.Node(id)
	return n.key
}

// Contains reports whether id is a live node of this tree.
func (t *SearchTree[K, V]) Contains(id NodeID) bool {
	_, ok := t.nodes.resolve(id)
	return ok
}

// Insert adds key with data. It returns the node holding the key and
// whether a new node was created. No rebalancing takes place.
func (t *SearchTree[K, V]) Insert(key K, data V) (NodeID, bool) {
	id, path, created := t.insert(key, data)
	if created {
		t.refreshHeights(path)
	}
	return id, created
}

// Lookup returns the first node carrying key, searching top-down.
func (t *SearchTree[K, V]) Lookup(key K) (NodeID, bool) {
	cur := t.root
	for cur != Nil {
		n := t.nodes.at(cur)
		switch {
		case key == n.key:
			return cur, true
		case key < n.key:
			cur = n.left
		default:
			cur = n.right
		}
	}
	return Nil, false
}

// Delete removes the first node carrying key. Deleting an absent key is a
// no-op and returns false.
func (t *SearchTree[K, V]) Delete(key K) bool {
	path, removed := t.delete(key)
	if removed {
		t.refreshHeights(path)
	}
	return removed
}

// Clear removes every node. Handles issued before the call become stale.
func (t *SearchTree[K, V]) Clear() {
	t.nodes.reset()
	t.root = Nil
	t.version++
}

// MinNode follows left links from the root to exhaustion.
func (t *SearchTree[K, V]) MinNode() (NodeID, bool) {
	if t.root == Nil {
		return Nil, false
	}
	cur := t.root
	for left := t.nodes.at(cur).left; left != Nil; left = t.nodes.at(cur).left {
		cur = left
	}
	return cur, true
}

// MaxNode follows right links from the root to exhaustion.
func (t *SearchTree[K, V]) MaxNode() (NodeID, bool) {
	if t.root == Nil {
		return Nil, false
	}
	cur := t.root
	for right := t.nodes.at(cur).right; right != Nil; right = t.nodes.at(cur).right {
		cur = right
	}
	return cur, true
}

// insert is the raw insert shared with BalancedTree. path runs from the
// root to the parent of the returned node; it is only meaningful when a
// node was created.
func (t *SearchTree[K, V]) insert(key K, data V) (NodeID, []NodeID, bool) {
	if t.root == Nil {
		t.version++
		t.root = t.nodes.malloc(key, data)
		return t.root, nil, true
	}

	path := make([]NodeID, 0, t.Height()+1)
	cur := t.root
	goLeft := false
	for cur != Nil {
		n := t.nodes.at(cur)
		if key == n.key && t.policy != DuplicatesRight {
			if t.policy == DuplicatesOverwrite {
				t.version++
				n.data = data
			}
			return cur, nil, false
		}
		path = append(path, cur)
		goLeft = key < n.key
		if goLeft {
			cur = n.left
		} else {
			cur = n.right
		}
	}

	t.version++
	id := t.nodes.malloc(key, data)
	parent := t.nodes.at(path[len(path)-1])
	if goLeft {
		parent.left = id
	} else {
		parent.right = id
	}
	return id, path, true
}

// delete is the raw three-case delete shared with BalancedTree. The
// returned path runs from the root to the parent of the spliced node.
func (t *SearchTree[K, V]) delete(key K) ([]NodeID, bool) {
	path := make([]NodeID, 0, t.Height())
	cur := t.root
	for cur != Nil {
		n := t.nodes.at(cur)
		if key == n.key {
			break
		}
		path = append(path, cur)
		if key < n.key {
			cur = n.left
		} else {
			cur = n.right
		}
	}
	if cur == Nil {
		return nil, false
	}
	t.version++

	target := t.nodes.at(cur)
	if target.left != Nil && target.right != Nil {
		// Two children: the successor takes the target's place by value
		// and is spliced out instead.
		path = append(path, cur)
		successor, successorParent := t.minFrom(target.right, cur, &path)
		s := t.nodes.at(successor)
		target.key = s.key
		target.data = s.data
		mustf(s.left == Nil, "delete: successor %v has a left child", successor)
		t.replaceChild(successorParent, successor, s.right)
		t.nodes.free(successor)
		return path, true
	}

	child := target.left
	if child == Nil {
		child = target.right
	}
	parent := Nil
	if len(path) > 0 {
		parent = path[len(path)-1]
	}
	t.replaceChild(parent, cur, child)
	t.nodes.free(cur)
	return path, true
}

// minFrom finds the leftmost node under start, tracking its immediate
// parent. Every node passed on the way except the result is appended to
// path.
func (t *SearchTree[K, V]) minFrom(start, parent NodeID, path *[]NodeID) (NodeID, NodeID) {
	mustf(start != Nil, "successor search on an empty subtree")
	cur := start
	for {
		left := t.nodes.at(cur).left
		if left == Nil {
			return cur, parent
		}
		*path = append(*path, cur)
		parent = cur
		cur = left
	}
}

// replaceChild points whichever slot of parent held old at repl. A Nil
// parent means old is the root.
func (t *SearchTree[K, V]) replaceChild(parent, old, repl NodeID) {
	if parent == Nil {
		mustf(t.root == old, "replace: %v is not the root", old)
		t.root = repl
		return
	}
	p := t.nodes.at(parent)
	switch old {
	case p.left:
		p.left = repl
	case p.right:
		p.right = repl
	default:
		mustf(false, "replace: %v is not a child of %v", old, parent)
	}
}

func (t *SearchTree[K, V]) updateHeight(id NodeID) {
	n := t.nodes.at(id)
	n.height = 1 + max(t.nodes.height(n.left), t.nodes.height(n.right))
}

// refreshHeights recomputes cached heights bottom-up along path.
func (t *SearchTree[K, V]) refreshHeights(path []NodeID) {
	for i := len(path) - 1; i >= 0; i-- {
		t.updateHeight(path[i])
	}
}
