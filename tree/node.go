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

import "fmt"

// NodeID is a handle to a node stored in a tree's arena.
// The low 32 bits hold the slot index, the high 32 bits its generation.
type NodeID uint64

// Nil is the handle of no node.
const Nil NodeID = 0

func makeNodeID(index, gen uint32) NodeID {
	return NodeID(uint64(gen)<<32 | uint64(index))
}

func (id NodeID) index() uint32 {
	return uint32(id)
}

func (id NodeID) generation() uint32 {
	return uint32(id >> 32)
}

// String renders the handle as slot@generation.
func (id NodeID) String() string {
	if id == Nil {
		return "nil"
	}
	return fmt.Sprintf("%d@%d", id.index(), id.generation())
}

// Node is the storage unit of a tree. Callers receive copies through
// Tree.Node, so holding one never aliases tree state.
type Node[K any, V any] struct {
	key    K
	data   V
	left   NodeID
	right  NodeID
	height int // 1 for a leaf
}

// Key returns the ordering key.
func (n Node[K, V]) Key() K { return n.key }

// Data returns the payload stored with the key.
func (n Node[K, V]) Data() V { return n.data }

// Left returns the left child handle, Nil if none.
func (n Node[K, V]) Left() NodeID { return n.left }

// Right returns the right child handle, Nil if none.
func (n Node[K, V]) Right() NodeID { return n.right }

// Height returns the cached height of the subtree rooted at this node.
func (n Node[K, V]) Height() int { return n.height }

// IsLeaf reports whether the node has no children.
func (n Node[K, V]) IsLeaf() bool {
	return n.left == Nil && n.right == Nil
}

func (n Node[K, V]) String() string {
	return fmt.Sprintf("(%v, %v)", n.key, n.data)
}
