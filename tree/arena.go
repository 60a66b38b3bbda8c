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
	"math"
)

type slot[K any, V any] struct {
	node Node[K, V]
	gen  uint32
	live bool
}

// arena owns every node of one tree. Slot 0 is reserved so that the
// zero NodeID never resolves.
type arena[K any, V any] struct {
	storage []slot[K, V]
	gaps    []uint32 // freed slot indexes, reused LIFO
	used    int
}

func newArena[K any, V any]() arena[K, V] {
	return arena[K, V]{
		storage: make([]slot[K, V], 1),
	}
}

// malloc returns the handle of a fresh empty node. Any *Node obtained
// from at() before the call may be invalidated by storage growth.
func (a *arena[K, V]) malloc(key K, data V) NodeID {
	var index uint32
	if n := len(a.gaps); n > 0 {
		index = a.gaps[n-1]
		a.gaps = a.gaps[:n-1]
	} else {
		mustf(len(a.storage) < math.MaxUint32, "arena: slot space exhausted")
		index = uint32(len(a.storage))
		a.storage = append(a.storage, slot[K, V]{})
	}
	s := &a.storage[index]
	s.node = Node[K, V]{key: key, data: data, height: 1}
	s.live = true
	a.used++
	return makeNodeID(index, s.gen)
}

// free releases the node and bumps its slot generation so that every
// outstanding handle to it becomes stale.
func (a *arena[K, V]) free(id NodeID) {
	s := a.slotOf(id)
	mustf(s != nil, "arena: free of stale node %v", id)
	s.node = Node[K, V]{}
	s.live = false
	s.gen++
	a.gaps = append(a.gaps, id.index())
	a.used--
}

func (a *arena[K, V]) slotOf(id NodeID) *slot[K, V] {
	index := id.index()
	if index == 0 || int(index) >= len(a.storage) {
		return nil
	}
	s := &a.storage[index]
	if !s.live || s.gen != id.generation() {
		return nil
	}
	return s
}

// resolve returns the node for a live handle.
func (a *arena[K, V]) resolve(id NodeID) (*Node[K, V], bool) {
	s := a.slotOf(id)
	if s == nil {
		return nil, false
	}
	return &s.node, true
}

// at is resolve for handles the tree itself holds; a miss means the
// structure is corrupt.
func (a *arena[K, V]) at(id NodeID) *Node[K, V] {
	n, ok := a.resolve(id)
	mustf(ok, "arena: dangling node handle %v", id)
	return n
}

func (a *arena[K, V]) height(id NodeID) int {
	if id == Nil {
		return 0
	}
	return a.at(id).height
}

// reset frees every live node. Generations survive so old handles stay stale.
func (a *arena[K, V]) reset() {
	for index := len(a.storage) - 1; index > 0; index-- {
		s := &a.storage[index]
		if s.live {
			a.free(makeNodeID(uint32(index), s.gen))
		}
	}
}

func mustf(condition bool, format string, args ...any) {
	if !condition {
		panic(fmt.Sprintf("tree: "+format, args...))
	}
}
