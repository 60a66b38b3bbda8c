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

// checkOwner panics unless parent (or the root slot, for Nil) holds pivot.
func (t *SearchTree[K, V]) checkOwner(parent, pivot NodeID) {
	if parent == Nil {
		mustf(t.root == pivot, "rotate: %v is not the root", pivot)
		return
	}
	p := t.nodes.at(parent)
	mustf(p.left == pivot || p.right == pivot, "rotate: %v is not a child of %v", pivot, parent)
}

// rotateRight lifts pivot's left child into pivot's place:
//
//	    pivot            l
//	    /   \          /   \
//	   l     c   =>   a   pivot
//	  / \                 /   \
//	 a   b               b     c
//
// All preconditions are checked before the first write.
func (t *SearchTree[K, V]) rotateRight(parent, pivot NodeID) NodeID {
	p, ok := t.nodes.resolve(pivot)
	mustf(ok, "rotate right: stale pivot %v", pivot)
	mustf(p.left != Nil, "rotate right: pivot %v has no left child", pivot)
	t.checkOwner(parent, pivot)

	newRoot := p.left
	l := t.nodes.at(newRoot)
	p.left = l.right
	l.right = pivot
	t.updateHeight(pivot)
	t.updateHeight(newRoot)
	t.replaceChild(parent, pivot, newRoot)
	t.notify(Right)
	return newRoot
}

// rotateLeft is the mirror of rotateRight.
func (t *SearchTree[K, V]) rotateLeft(parent, pivot NodeID) NodeID {
	p, ok := t.nodes.resolve(pivot)
	mustf(ok, "rotate left: stale pivot %v", pivot)
	mustf(p.right != Nil, "rotate left: pivot %v has no right child", pivot)
	t.checkOwner(parent, pivot)

	newRoot := p.right
	r := t.nodes.at(newRoot)
	p.right = r.left
	r.left = pivot
	t.updateHeight(pivot)
	t.updateHeight(newRoot)
	t.replaceChild(parent, pivot, newRoot)
	t.notify(Left)
	return newRoot
}

// rebalance restores the AVL condition at id, whose parent is parent,
// and returns the node now occupying id's slot. Heights below id must be
// current.
func (t *SearchTree[K, V]) rebalance(parent, id NodeID) NodeID {
	n := t.nodes.at(id)
	switch bf := t.BalanceFactor(id); {
	case bf > 1:
		if t.BalanceFactor(n.left) < 0 {
			t.rotateLeft(id, n.left)
		}
		return t.rotateRight(parent, id)
	case bf < -1:
		if t.BalanceFactor(n.right) > 0 {
			t.rotateRight(id, n.right)
		}
		return t.rotateLeft(parent, id)
	}
	return id
}

// rebalancePath refreshes and rebalances every node of path, deepest
// first, so the walk always ends at the root.
func (t *SearchTree[K, V]) rebalancePath(path []NodeID) {
	for i := len(path) - 1; i >= 0; i-- {
		parent := Nil
		if i > 0 {
			parent = path[i-1]
		}
		t.updateHeight(path[i])
		t.rebalance(parent, path[i])
	}
}

func (t *SearchTree[K, V]) notify(dir Direction) {
	if t.observer != nil {
		t.observer.Rotated(dir)
	}
}
