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
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheReportAndGetReport(t *testing.T) {
	rc := NewReportCache(0)
	key := reportKey("report", 1, 3)
	txt := "rendered report"

	// Initially, GetReport should return an empty string for a missing key.
	assert.Equal(t, "", GetReport(rc, key))

	CacheReport(rc, key, txt)
	assert.Equal(t, txt, GetReport(rc, key))
	assert.Equal(t, "", GetReport(rc, reportKey("report", 1, 4)), "another version misses")
	assert.Equal(t, "", GetReport(rc, reportKey("report", 2, 3)), "another tree misses")
}

func TestCacheExpiration(t *testing.T) {
	// Create a cache with a very short expiration time to test expiry behavior.
	rc := NewReportCache(100 * time.Millisecond)
	key := reportKey("show", 1, 1)
	CacheReport(rc, key, "This drawing should expire soon.")

	assert.NotEmpty(t, GetReport(rc, key))

	// Wait longer than the expiration duration.
	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, GetReport(rc, key))
}

func TestGetOrRenderRendersOncePerVersion(t *testing.T) {
	rc := NewReportCache(time.Minute)
	calls := 0
	render := func() string {
		calls++
		return "drawing"
	}

	assert.Equal(t, "drawing", rc.GetOrRender("show", 7, 1, render))
	assert.Equal(t, "drawing", rc.GetOrRender("show", 7, 1, render))
	assert.Equal(t, 1, calls)

	rc.GetOrRender("show", 7, 2, render)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, rc.Len())
}
