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
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// Used when the configuration leaves shell.report_ttl unset
	reportCacheExpiration = 30 * time.Second
	// Clean up expired entries every minute
	reportCacheCleanup = time.Minute
)

// ReportCache keeps rendered reports keyed by name, tree ID and tree
// version, so a report is rebuilt only after the tree changes or the entry
// expires. Trees sharing a cache never see each other's entries.
type ReportCache struct {
	c   *cache.Cache
	ttl time.Duration
}

// NewReportCache creates a cache whose entries live for ttl.
func NewReportCache(ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = reportCacheExpiration
	}
	return &ReportCache{
		c:   cache.New(ttl, reportCacheCleanup),
		ttl: ttl,
	}
}

func reportKey(name string, treeID, version uint64) string {
	return fmt.Sprintf("%s#%d@%d", name, treeID, version)
}

func CacheReport(rc *ReportCache, key string, txt string) {
	// Set rather than Add so a re-render replaces the entry
	rc.c.Set(key, txt, rc.ttl)
}

func GetReport(rc *ReportCache, key string) string {
	val, ok := rc.c.Get(key)
	if !ok {
		return ""
	}
	return val.(string)
}

// GetOrRender returns the cached report for the given tree and version,
// rendering and caching it on a miss.
func (rc *ReportCache) GetOrRender(name string, treeID, version uint64, render func() string) string {
	key := reportKey(name, treeID, version)
	if txt := GetReport(rc, key); txt != "" {
		return txt
	}
	txt := render()
	CacheReport(rc, key, txt)
	return txt
}

// Len reports how many entries are cached, expired ones included until
// the janitor runs.
func (rc *ReportCache) Len() int {
	return rc.c.ItemCount()
}
