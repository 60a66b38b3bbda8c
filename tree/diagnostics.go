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

// NoDiameter is what MaxDiameter reports for an empty tree.
const NoDiameter = -1

// NodeCount walks the tree and counts its nodes.
func (t *SearchTree[K, V]) NodeCount() int {
	return t.count(t.root)
}

func (t *SearchTree[K, V]) count(id NodeID) int {
	if id == Nil {
		return 0
	}
	n := t.nodes.at(id)
	return 1 + t.count(n.left) + t.count(n.right)
}

// LeafCount counts nodes without children.
func (t *SearchTree[K, V]) LeafCount() int {
	return t.leaves(t.root)
}

func (t *SearchTree[K, V]) leaves(id NodeID) int {
	if id == Nil {
		return 0
	}
	n := t.nodes.at(id)
	if n.IsLeaf() {
		return 1
	}
	return t.leaves(n.left) + t.leaves(n.right)
}

// CountAtLevel counts the nodes on level k, the root being level 1.
func (t *SearchTree[K, V]) CountAtLevel(k int) int {
	return t.countAtLevel(t.root, k)
}

func (t *SearchTree[K, V]) countAtLevel(id NodeID, k int) int {
	if id == Nil || k < 1 {
		return 0
	}
	if k == 1 {
		return 1
	}
	n := t.nodes.at(id)
	return t.countAtLevel(n.left, k-1) + t.countAtLevel(n.right, k-1)
}

// MaxDepth is the number of nodes on the longest root-to-leaf path,
// computed by a full walk rather than from cached heights.
func (t *SearchTree[K, V]) MaxDepth() int {
	return t.depth(t.root)
}

func (t *SearchTree[K, V]) depth(id NodeID) int {
	if id == Nil {
		return 0
	}
	n := t.nodes.at(id)
	return 1 + max(t.depth(n.left), t.depth(n.right))
}

type bound[K any] struct {
	key K
	set bool
}

// IsValid checks the ordering rule tree wide: left subtrees hold smaller
// keys, right subtrees hold keys greater than or equal to their parent.
func (t *SearchTree[K, V]) IsValid() bool {
	_, ok := t.firstDisorder(t.root, bound[K]{}, bound[K]{})
	return ok
}

// firstDisorder checks id against the inherited window [lo, hi) and
// returns the first node falling outside it.
func (t *SearchTree[K, V]) firstDisorder(id NodeID, lo, hi bound[K]) (NodeID, bool) {
	if id == Nil {
		return Nil, true
	}
	n := t.nodes.at(id)
	if (lo.set && n.key < lo.key) || (hi.set && n.key >= hi.key) {
		return id, false
	}
	if bad, ok := t.firstDisorder(n.left, lo, bound[K]{key: n.key, set: true}); !ok {
		return bad, false
	}
	return t.firstDisorder(n.right, bound[K]{key: n.key, set: true}, hi)
}

// IsBalanced reports whether every node's subtree depths differ by at
// most one. It ignores cached heights so it can audit them.
func (t *SearchTree[K, V]) IsBalanced() bool {
	_, ok := t.balancedDepth(t.root)
	return ok
}

func (t *SearchTree[K, V]) balancedDepth(id NodeID) (int, bool) {
	if id == Nil {
		return 0, true
	}
	n := t.nodes.at(id)
	left, ok := t.balancedDepth(n.left)
	if !ok {
		return 0, false
	}
	right, ok := t.balancedDepth(n.right)
	if !ok {
		return 0, false
	}
	if left-right > 1 || right-left > 1 {
		return 0, false
	}
	return 1 + max(left, right), true
}

// IsComplete scans breadth first. Once a missing child has been seen no
// later node may have any child.
func (t *SearchTree[K, V]) IsComplete() bool {
	if t.root == Nil {
		return true
	}
	gap := false
	queue := []NodeID{t.root}
	for head := 0; head < len(queue); head++ {
		n := t.nodes.at(queue[head])
		for _, child := range [2]NodeID{n.left, n.right} {
			if child == Nil {
				gap = true
				continue
			}
			if gap {
				return false
			}
			queue = append(queue, child)
		}
	}
	return true
}

// IsFull reports whether every node has zero or two children.
func (t *SearchTree[K, V]) IsFull() bool {
	return t.full(t.root)
}

func (t *SearchTree[K, V]) full(id NodeID) bool {
	if id == Nil {
		return true
	}
	n := t.nodes.at(id)
	if n.IsLeaf() {
		return true
	}
	if n.left == Nil || n.right == Nil {
		return false
	}
	return t.full(n.left) && t.full(n.right)
}

// IsPerfect reports whether the node count equals 2^depth - 1.
func (t *SearchTree[K, V]) IsPerfect() bool {
	d := t.MaxDepth()
	if d >= 63 {
		return false
	}
	return t.NodeCount() == 1<<d-1
}

// MaxDiameter is the length in edges of the longest path through the
// root, NoDiameter for an empty tree.
func (t *SearchTree[K, V]) MaxDiameter() int {
	if t.root == Nil {
		return NoDiameter
	}
	n := t.nodes.at(t.root)
	return t.depth(n.left) + t.depth(n.right)
}

// BalanceFactor is height(left) - height(right) from cached heights,
// 0 for a stale handle.
func (t *SearchTree[K, V]) BalanceFactor(id NodeID) int {
	n, ok := t.nodes.resolve(id)
	if !ok {
		return 0
	}
	return t.nodes.height(n.left) - t.nodes.height(n.right)
}
