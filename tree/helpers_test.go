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
	"testing"

	"github.com/stretchr/testify/require"
)

// scenarioB is the seven node tree used throughout the tests:
//
//	      50
//	    /    \
//	  30      70
//	 /  \    /  \
//	20  40  60  80
func scenarioB(tb testing.TB) *SearchTree[int, string] {
	tb.Helper()
	t := NewSearchTree[int, string]()
	for _, k := range []int{50, 30, 20, 40, 70, 60, 80} {
		_, created := t.Insert(k, "")
		require.True(tb, created)
	}
	return t
}

func mustLookup(tb testing.TB, t Tree[int, string], key int) NodeID {
	tb.Helper()
	id, ok := t.Lookup(key)
	require.True(tb, ok, "key %v not found", key)
	return id
}

func pathKeys(t Tree[int, string], path []NodeID) []int {
	keys := make([]int, 0, len(path))
	for _, id := range path {
		keys = append(keys, t.Key(id))
	}
	return keys
}

type rotationCounter struct {
	left, right int
}

func (c *rotationCounter) Rotated(dir Direction) {
	if dir == Left {
		c.left++
	} else {
		c.right++
	}
}
