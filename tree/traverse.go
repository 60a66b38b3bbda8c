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
	"fmt"
	"iter"
)

// Order selects a traversal.
type Order int

const (
	InOrder Order = iota
	PreOrder
	PostOrder
	LevelOrder
)

var orderNames = map[Order]string{
	InOrder:    "inorder",
	PreOrder:   "preorder",
	PostOrder:  "postorder",
	LevelOrder: "levelorder",
}

func (o Order) String() string {
	if name, ok := orderNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder maps a traversal name back to its Order.
func ParseOrder(name string) (Order, bool) {
	for order, n := range orderNames {
		if n == name {
			return order, true
		}
	}
	return 0, false
}

// Traverse returns the sequence for the given order.
func (t *SearchTree[K, V]) Traverse(order Order) iter.Seq[NodeID] {
	switch order {
	case PreOrder:
		return t.PreOrder()
	case PostOrder:
		return t.PostOrder()
	case LevelOrder:
		return t.LevelOrder()
	default:
		return t.InOrder()
	}
}

// InOrder yields nodes in ascending key order.
func (t *SearchTree[K, V]) InOrder() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		version := t.version
		var stack []NodeID
		cur := t.root
		for cur != Nil || len(stack) > 0 {
			for cur != Nil {
				stack = append(stack, cur)
				cur = t.nodes.at(cur).left
			}
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(cur) {
				return
			}
			t.checkVersion(version)
			cur = t.nodes.at(cur).right
		}
	}
}

// PreOrder yields each node before its subtrees, left first.
func (t *SearchTree[K, V]) PreOrder() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if t.root == Nil {
			return
		}
		version := t.version
		stack := []NodeID{t.root}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(cur) {
				return
			}
			t.checkVersion(version)
			n := t.nodes.at(cur)
			if n.right != Nil {
				stack = append(stack, n.right)
			}
			if n.left != Nil {
				stack = append(stack, n.left)
			}
		}
	}
}

// PostOrder yields each node after both of its subtrees.
func (t *SearchTree[K, V]) PostOrder() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		version := t.version
		var walk func(id NodeID) bool
		walk = func(id NodeID) bool {
			if id == Nil {
				return true
			}
			n := t.nodes.at(id)
			left, right := n.left, n.right
			if !walk(left) || !walk(right) {
				return false
			}
			if !yield(id) {
				return false
			}
			t.checkVersion(version)
			return true
		}
		walk(t.root)
	}
}

// LevelOrder yields nodes breadth first from a FIFO queue seeded with the root.
func (t *SearchTree[K, V]) LevelOrder() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if t.root == Nil {
			return
		}
		version := t.version
		queue := []NodeID{t.root}
		for head := 0; head < len(queue); head++ {
			cur := queue[head]
			if !yield(cur) {
				return
			}
			t.checkVersion(version)
			n := t.nodes.at(cur)
			if n.left != Nil {
				queue = append(queue, n.left)
			}
			if n.right != Nil {
				queue = append(queue, n.right)
			}
		}
	}
}

// Keys collects the keys of a node sequence.
func (t *SearchTree[K, V]) Keys(seq iter.Seq[NodeID]) []K {
	var keys []K
	for id := range seq {
		keys = append(keys, t.nodes.at(id).key)
	}
	return keys
}

func (t *SearchTree[K, V]) checkVersion(version uint64) {
	mustf(t.version == version, "tree modified during traversal")
}
