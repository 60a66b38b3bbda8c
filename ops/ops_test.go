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

package ops

import (
	"testing"

	"github.com/cybrota/avlindex/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryOperations(t *testing.T) {
	r := NewRegistry()
	ix := newSearchIndex(t, 50, 30, 20, 40, 70, 60, 80)

	testCases := []struct {
		Line     string
		Expected string
	}{
		{"inorder", "(20) (30) (40) (50) (60) (70) (80)"},
		{"preorder", "(50) (30) (20) (40) (70) (60) (80)"},
		{"postorder", "(20) (40) (30) (60) (80) (70) (50)"},
		{"levelorder", "(50) (30) (70) (20) (40) (60) (80)"},
		{"lookup 40", "(40)"},
		{"path 40", "50 -> 30 -> 40"},
		{"parent 20", "(30)"},
		{"parent 50", "50 is the root"},
		{"lca 20 60", "(50)"},
		{"lca 30 40", "(30)"},
		{"distance 20 60", "4"},
		{"distance 40 40", "0"},
		{"level 3", "4"},
		{"level 0", "0"},
		{"min", "(20)"},
		{"max", "(80)"},
		{"height", "3"},
	}

	for _, tc := range testCases {
		t.Run(tc.Line, func(t *testing.T) {
			out, err := r.Execute(ix, tc.Line)
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, out)
		})
	}
}

func TestOperationErrors(t *testing.T) {
	r := NewRegistry()
	ix := newSearchIndex(t, 50, 30)

	testCases := []struct {
		Line     string
		Expected error
	}{
		{"lookup 99", ErrKeyNotFound},
		{"lookup", ErrUsage},
		{"lookup fifty", ErrUsage},
		{"path 99", ErrKeyNotFound},
		{"lca 50", ErrUsage},
		{"lca 50 99", ErrKeyNotFound},
		{"distance 99 50", ErrKeyNotFound},
		{"level x", ErrUsage},
		{"inorder 1", ErrUsage},
		{"insert", ErrUsage},
		{"insert five", ErrUsage},
		{"delete", ErrUsage},
		{"delete 1 x", ErrUsage},
		{"show everything", ErrUsage},
		{"clear now", ErrUsage},
	}

	for _, tc := range testCases {
		t.Run(tc.Line, func(t *testing.T) {
			_, err := r.Execute(ix, tc.Line)
			assert.ErrorIs(t, err, tc.Expected)
		})
	}

	_, err := r.Execute(ix, "lookup 99")
	assert.EqualError(t, err, "99 not found")
}

func TestInsertForms(t *testing.T) {
	r := NewRegistry()
	ix := newSearchIndex(t)

	out, err := r.Execute(ix, "insert 5 7 9")
	require.NoError(t, err)
	assert.Equal(t, "inserted (5)\ninserted (7)\ninserted (9)", out)

	out, err = r.Execute(ix, `insert 6 "hello world"`)
	require.NoError(t, err)
	assert.Equal(t, "inserted (6, hello world)", out)

	out, err = r.Execute(ix, "insert 8 eight and more")
	require.NoError(t, err)
	assert.Equal(t, "inserted (8, eight and more)", out)

	out, err = r.Execute(ix, "inorder")
	require.NoError(t, err)
	assert.Equal(t, "(5) (6, hello world) (7) (8, eight and more) (9)", out)
}

func TestInsertExistingKey(t *testing.T) {
	r := NewRegistry()

	overwrite := &treeIndex{t: tree.NewBalancedTree[int64, string]()}
	_, err := r.Execute(overwrite, "insert 1 old")
	require.NoError(t, err)
	out, err := r.Execute(overwrite, "insert 1 new")
	require.NoError(t, err)
	assert.Equal(t, "updated (1, new)", out)

	reject := &treeIndex{t: tree.NewBalancedTree[int64, string](tree.WithDuplicates(tree.DuplicatesReject))}
	_, err = r.Execute(reject, "insert 1 old")
	require.NoError(t, err)
	out, err = r.Execute(reject, "insert 1 new")
	require.NoError(t, err)
	assert.Equal(t, "kept (1, old)", out)

	right := newSearchIndex(t, 1)
	out, err = r.Execute(right, "insert 1 again")
	require.NoError(t, err)
	assert.Equal(t, "inserted (1, again)", out)
	assert.Equal(t, 2, right.Tree().Len())
}

func TestDeleteAndClear(t *testing.T) {
	r := NewRegistry()
	ix := newSearchIndex(t, 50, 30, 20, 40, 70, 60, 80)

	out, err := r.Execute(ix, "delete 20 99")
	require.NoError(t, err)
	assert.Equal(t, "deleted 20\n99 not found", out)

	out, err = r.Execute(ix, "clear")
	require.NoError(t, err)
	assert.Equal(t, "cleared 6 nodes", out)

	for _, line := range []string{"inorder", "min", "max"} {
		out, err = r.Execute(ix, line)
		require.NoError(t, err)
		assert.Equal(t, "empty", out, line)
	}
}

func TestShow(t *testing.T) {
	r := NewRegistry()
	ix := &treeIndex{t: tree.NewBalancedTree[int64, string]()}
	_, err := r.Execute(ix, "insert 1 2 3")
	require.NoError(t, err)

	out, err := r.Execute(ix, "show")
	require.NoError(t, err)
	assert.Equal(t, "       /------+ 3\n|------+ 2\n       \\------+ 1", out)

	out, err = r.Execute(ix, "show data")
	require.NoError(t, err)
	assert.Contains(t, out, "|------+ 2 →  +0/h2")

	out, err = r.Execute(newSearchIndex(t), "show")
	require.NoError(t, err)
	assert.Equal(t, "(empty)", out)
}
