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
	"io"
	"iter"
)

// Tree is the surface shared by SearchTree and BalancedTree.
type Tree[K cmp.Ordered, V any] interface {
	Insert(key K, data V) (NodeID, bool)
	Delete(key K) bool
	Lookup(key K) (NodeID, bool)
	Clear()

	Root() NodeID
	Node(id NodeID) (Node[K, V], bool)
	Key(id NodeID) K
	Contains(id NodeID) bool
	IsEmpty() bool
	Len() int
	Height() int
	ID() uint64
	Version() uint64
	Policy() DuplicatePolicy

	Traverse(order Order) iter.Seq[NodeID]
	InOrder() iter.Seq[NodeID]
	PreOrder() iter.Seq[NodeID]
	PostOrder() iter.Seq[NodeID]
	LevelOrder() iter.Seq[NodeID]
	Keys(seq iter.Seq[NodeID]) []K

	NodeCount() int
	LeafCount() int
	CountAtLevel(k int) int
	MaxDepth() int
	MaxDiameter() int
	IsValid() bool
	IsBalanced() bool
	IsComplete() bool
	IsFull() bool
	IsPerfect() bool
	BalanceFactor(id NodeID) int
	MinNode() (NodeID, bool)
	MaxNode() (NodeID, bool)

	NodePath(target NodeID) []NodeID
	ParentOf(id NodeID) (NodeID, bool)
	NearestCommonAncestor(a, b NodeID) (NodeID, bool)
	Distance(a, b NodeID) (int, bool)

	Verify() error
	Print(w io.Writer, printData bool) (int, error)
}

var (
	_ Tree[int, string] = (*SearchTree[int, string])(nil)
	_ Tree[int, string] = (*BalancedTree[int, string])(nil)
)
