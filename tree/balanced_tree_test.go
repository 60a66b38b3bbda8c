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
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type BalancedTestCase struct {
	Name          string
	InitialKeys   []string
	KeysToInsert  []string
	KeysToDelete  []string
	ExpectedOrder []string // In-order traversal expectation after operations
}

func TestBalancedTreeOperations(t *testing.T) {
	t.Parallel()

	testCases := []BalancedTestCase{
		{
			Name:          "Simple Insertion",
			KeysToInsert:  []string{"apple", "banana", "cherry"},
			ExpectedOrder: []string{"apple", "banana", "cherry"},
		},
		{
			Name:          "Insertion with Balancing (Right-Heavy)",
			InitialKeys:   []string{"apple"},
			KeysToInsert:  []string{"banana", "cherry"},
			ExpectedOrder: []string{"apple", "banana", "cherry"},
		},
		{
			Name:          "Deletion with Balancing (Left-Heavy)",
			InitialKeys:   []string{"cherry", "banana", "apple"},
			KeysToDelete:  []string{"cherry"},
			ExpectedOrder: []string{"apple", "banana"},
		},
		{
			Name:          "Mixed Operations",
			InitialKeys:   []string{"dog", "cat"},
			KeysToInsert:  []string{"elephant", "bird"},
			KeysToDelete:  []string{"cat"},
			ExpectedOrder: []string{"bird", "dog", "elephant"},
		},
		{
			Name:          "Delete Absent Key",
			InitialKeys:   []string{"dog"},
			KeysToDelete:  []string{"zebra"},
			ExpectedOrder: []string{"dog"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tr := NewBalancedTree[string, struct{}]()
			for _, key := range tc.InitialKeys {
				tr.Insert(key, struct{}{})
			}
			for _, key := range tc.KeysToInsert {
				tr.Insert(key, struct{}{})
			}
			for _, key := range tc.KeysToDelete {
				tr.Delete(key)
			}
			assert.Equal(t, tc.ExpectedOrder, tr.Keys(tr.InOrder()))
			assert.NoError(t, tr.Verify())
		})
	}
}

func TestScenarioA(t *testing.T) {
	t.Parallel()

	tr := NewBalancedTree[int, string]()
	for _, k := range []int{1, 2, 3, 4, 5, 20} {
		tr.Insert(k, "")
	}

	limit := int(math.Ceil(math.Log2(7))) + 1
	assert.LessOrEqual(t, tr.MaxDepth(), limit)
	assert.True(t, tr.IsValid())
	assert.True(t, tr.IsBalanced())
	require.NoError(t, tr.Verify())

	assert.Equal(t, []int{4, 2, 1, 3, 5, 20}, tr.Keys(tr.PreOrder()))
	assert.Equal(t, []int{4, 2, 5, 1, 3, 20}, tr.Keys(tr.LevelOrder()))

	target, ok := tr.Lookup(20)
	require.True(t, ok)
	_, ok = tr.Lookup(21)
	assert.False(t, ok)

	assert.Equal(t, []int{4, 5, 20}, pathKeys(tr, tr.NodePath(target)))
	d, _ := tr.Distance(tr.Root(), target)
	assert.Equal(t, 2, d)
	assert.Equal(t, 4, tr.MaxDiameter())
	assert.Equal(t, 3, tr.LeafCount())
	assert.Equal(t, 0, tr.CountAtLevel(4))
	assert.False(t, tr.IsComplete())
	assert.False(t, tr.IsFull())
}

func TestRotationShapes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		Name        string
		Keys        []int
		Left, Right int
	}{
		{Name: "LL", Keys: []int{3, 2, 1}, Right: 1},
		{Name: "RR", Keys: []int{1, 2, 3}, Left: 1},
		{Name: "LR", Keys: []int{3, 1, 2}, Left: 1, Right: 1},
		{Name: "RL", Keys: []int{1, 3, 2}, Left: 1, Right: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			counter := &rotationCounter{}
			tr := NewBalancedTree[int, string](WithObserver(counter))
			for _, k := range tc.Keys {
				tr.Insert(k, "")
			}
			assert.Equal(t, []int{2, 1, 3}, tr.Keys(tr.PreOrder()))
			assert.Equal(t, tc.Left, counter.left, "left rotations")
			assert.Equal(t, tc.Right, counter.right, "right rotations")
			assert.NoError(t, tr.Verify())
		})
	}
}

// fibonacciShape builds, without any rotation,
//
//	       5
//	     /   \
//	    3     7
//	   / \   /
//	  2   4 6
//	 /
//	1
func fibonacciShape(tb testing.TB) (*BalancedTree[int, string], *rotationCounter) {
	tb.Helper()
	counter := &rotationCounter{}
	tr := NewBalancedTree[int, string](WithObserver(counter))
	for _, k := range []int{5, 3, 7, 2, 4, 6, 1} {
		tr.Insert(k, "")
	}
	require.Equal(tb, []int{5, 3, 2, 1, 4, 7, 6}, tr.Keys(tr.PreOrder()))
	require.Zero(tb, counter.left+counter.right)
	return tr, counter
}

func TestDeleteRebalancesAboveTheSplicedParent(t *testing.T) {
	t.Parallel()

	// Removing 6 leaves 7 balanced; the imbalance shows up at the root.
	tr, counter := fibonacciShape(t)
	require.True(t, tr.Delete(6))
	assert.Equal(t, []int{3, 2, 1, 5, 4, 7}, tr.Keys(tr.PreOrder()))
	assert.Equal(t, 1, counter.right)
	assert.NoError(t, tr.Verify())
}

func TestDeleteWithSuccessorRebalancesToTheRoot(t *testing.T) {
	t.Parallel()

	tr, _ := fibonacciShape(t)
	require.True(t, tr.Delete(5))
	assert.Equal(t, []int{3, 2, 1, 6, 4, 7}, tr.Keys(tr.PreOrder()))
	assert.NoError(t, tr.Verify())
}

func TestBalancedTreeDuplicates(t *testing.T) {
	t.Parallel()

	tr := NewBalancedTree[int, string]()
	id, _ := tr.Insert(1, "a")
	again, created := tr.Insert(1, "b")
	assert.False(t, created)
	assert.Equal(t, id, again)
	n, _ := tr.Node(id)
	assert.Equal(t, "b", n.Data())
	assert.Equal(t, DuplicatesOverwrite, tr.Policy())

	rejecting := NewBalancedTree[int, string](WithDuplicates(DuplicatesReject))
	rejecting.Insert(1, "a")
	rejecting.Insert(1, "b")
	found, _ := rejecting.Lookup(1)
	n, _ = rejecting.Node(found)
	assert.Equal(t, "a", n.Data())

	assert.Panics(t, func() {
		NewBalancedTree[int, string](WithDuplicates(DuplicatesRight))
	})
}

func TestRotationPreconditionsLeaveTreeUntouched(t *testing.T) {
	t.Parallel()

	tr := NewBalancedTree[int, string]()
	for _, k := range []int{2, 1, 3} {
		tr.Insert(k, "")
	}
	before := tr.Keys(tr.PreOrder())
	root := tr.Root()
	leaf := mustLookup(t, tr, 3)

	assert.Panics(t, func() { tr.rotateRight(tr.Root(), leaf) }, "leaf has no left child")
	assert.Panics(t, func() { tr.rotateLeft(Nil, leaf) }, "leaf is not the root")
	assert.Panics(t, func() { tr.rotateRight(leaf, root) }, "leaf does not own the root")
	assert.Panics(t, func() { tr.rotateLeft(Nil, Nil) }, "stale pivot")

	assert.Equal(t, before, tr.Keys(tr.PreOrder()))
	assert.Equal(t, root, tr.Root())
	assert.NoError(t, tr.Verify())
}

func TestRotateRelinksParent(t *testing.T) {
	t.Parallel()

	tr := NewSearchTree[int, string]()
	for _, k := range []int{10, 5, 3, 7} {
		tr.Insert(k, "")
	}
	n5 := mustLookup(t, tr, 5)
	newRoot := tr.rotateRight(tr.Root(), n5)
	assert.Equal(t, 3, tr.Key(newRoot))
	assert.Equal(t, []int{10, 3, 5, 7}, tr.Keys(tr.PreOrder()))

	n10 := tr.Root()
	top := tr.rotateRight(Nil, n10)
	assert.Equal(t, top, tr.Root())
	assert.Equal(t, []int{3, 10, 5, 7}, tr.Keys(tr.PreOrder()))
	assert.NoError(t, tr.Verify())
}

func TestBalancedTreeRandomWorkload(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	counter := &rotationCounter{}
	tr := NewBalancedTree[int, int](WithObserver(counter))
	ref := map[int]int{}

	for i := range 4000 {
		k := rng.Intn(500)
		if rng.Intn(5) < 2 {
			removed := tr.Delete(k)
			_, present := ref[k]
			require.Equal(t, present, removed, "delete %d", k)
			delete(ref, k)
		} else {
			tr.Insert(k, i)
			ref[k] = i
		}
		if i%50 == 0 {
			require.NoError(t, tr.Verify(), "after step %d", i)
			require.True(t, tr.IsBalanced())
		}
	}
	require.NoError(t, tr.Verify())
	assert.Equal(t, len(ref), tr.Len())
	assert.Positive(t, counter.left)
	assert.Positive(t, counter.right)

	want := make([]int, 0, len(ref))
	for k := range ref {
		want = append(want, k)
	}
	slices.Sort(want)
	assert.Equal(t, want, tr.Keys(tr.InOrder()))

	for k, v := range ref {
		id := mustLookupInt(t, tr, k)
		n, _ := tr.Node(id)
		assert.Equal(t, v, n.Data())
	}

	// AVL height bound: h < 1.45 log2(n + 2).
	bound := 1.45 * math.Log2(float64(tr.Len()+2))
	assert.Less(t, float64(tr.Height()), bound)
}

func TestBalancedTreeSequentialInsertStaysShallow(t *testing.T) {
	t.Parallel()

	tr := NewBalancedTree[int, string]()
	for k := range 1023 {
		tr.Insert(k, "")
	}
	assert.Equal(t, 10, tr.Height())
	assert.True(t, tr.IsPerfect())
	require.NoError(t, tr.Verify())

	for k := range 1023 {
		require.True(t, tr.Delete(k))
		if k%97 == 0 {
			require.NoError(t, tr.Verify())
		}
	}
	assert.True(t, tr.IsEmpty())
}

func mustLookupInt(tb testing.TB, tr *BalancedTree[int, int], key int) NodeID {
	tb.Helper()
	id, ok := tr.Lookup(key)
	require.True(tb, ok, "key %d not found", key)
	return id
}
