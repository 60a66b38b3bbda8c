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

package main

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIndexFiltersUnseenKeys(t *testing.T) {
	ix, m := newTestIndex(t, "avl")
	ix.Insert(10, "ten")
	ix.Insert(20, "twenty")

	_, ok := ix.Lookup(10)
	assert.True(t, ok)
	_, ok = ix.Lookup(999)
	assert.False(t, ok)
	assert.False(t, ix.Delete(999))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.filtered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("lookup", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("lookup", "miss")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("insert", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.nodes))
}

func TestKeyIndexDeletedKeysFallThrough(t *testing.T) {
	ix, m := newTestIndex(t, "bst")
	ix.Insert(10, "")
	require.True(t, ix.Delete(10))

	// The filter still remembers 10, so the tree answers.
	_, ok := ix.Lookup(10)
	assert.False(t, ok)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.filtered))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.nodes))
}

func TestKeyIndexCountsRotations(t *testing.T) {
	ix, m := newTestIndex(t, "avl")
	for _, k := range []int64{1, 2, 3, 6, 5} {
		ix.Insert(k, "")
	}
	// 1 2 3 rotates left once; 6 then 5 needs a right-left double rotation.
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rotations.WithLabelValues("left")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rotations.WithLabelValues("right")))
	assert.NoError(t, ix.Tree().Verify())
}

func TestKeyIndexClearForgetsKeys(t *testing.T) {
	ix, m := newTestIndex(t, "avl")
	ix.Insert(1, "")
	ix.Clear()

	assert.True(t, ix.Tree().IsEmpty())
	_, ok := ix.Lookup(1)
	assert.False(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.filtered))
}

func TestMetricsSnapshotIsSorted(t *testing.T) {
	ix, m := newTestIndex(t, "avl")
	for _, k := range []int64{1, 2, 3} {
		ix.Insert(k, "")
	}
	ix.Lookup(42)

	samples, err := m.Snapshot()
	require.NoError(t, err)
	require.NotEmpty(t, samples)

	names := make([]string, 0, len(samples))
	for i, s := range samples {
		names = append(names, s.Name)
		if i > 0 {
			assert.LessOrEqual(t, samples[i-1].Name, s.Name)
		}
	}
	assert.Contains(t, names, "avlindex_rotations_total")
	assert.Contains(t, names, "avlindex_filtered_lookups_total")
	assert.Contains(t, names, "avlindex_nodes")
	assert.Contains(t, renderMetrics(samples), "direction=left")
}
