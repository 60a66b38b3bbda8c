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

// NodePath returns the nodes from the root down to target, both
// included. The result is empty when target is stale or not reachable
// from the root.
func (t *SearchTree[K, V]) NodePath(target NodeID) []NodeID {
	tn, ok := t.nodes.resolve(target)
	if !ok {
		return nil
	}
	key := tn.key

	// The ordering rule tells which side target must be on: strictly
	// smaller keys live left, equal keys can only be further right.
	var path []NodeID
	cur := t.root
	for cur != Nil {
		path = append(path, cur)
		if cur == target {
			return path
		}
		n := t.nodes.at(cur)
		if key < n.key {
			cur = n.left
		} else {
			cur = n.right
		}
	}
	return nil
}

// ParentOf returns the parent of id. The root, stale handles and
// unreachable nodes have none.
func (t *SearchTree[K, V]) ParentOf(id NodeID) (NodeID, bool) {
	path := t.NodePath(id)
	if len(path) < 2 {
		return Nil, false
	}
	return path[len(path)-2], true
}

// commonPrefix walks both paths in lockstep and returns how many leading
// entries are the same node.
func commonPrefix(a, b []NodeID) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

// NearestCommonAncestor returns the deepest node lying on both root
// paths. A node counts as its own ancestor.
func (t *SearchTree[K, V]) NearestCommonAncestor(a, b NodeID) (NodeID, bool) {
	pa := t.NodePath(a)
	if len(pa) == 0 {
		return Nil, false
	}
	pb := t.NodePath(b)
	if len(pb) == 0 {
		return Nil, false
	}
	i := commonPrefix(pa, pb)
	if i == 0 {
		return Nil, false
	}
	return pa[i-1], true
}

// Distance returns the number of edges between a and b.
func (t *SearchTree[K, V]) Distance(a, b NodeID) (int, bool) {
	pa := t.NodePath(a)
	if len(pa) == 0 {
		return 0, false
	}
	pb := t.NodePath(b)
	if len(pb) == 0 {
		return 0, false
	}
	i := commonPrefix(pa, pb)
	return len(pa) - i + len(pb) - i, true
}
