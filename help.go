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
	"runtime"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/cybrota/avlindex/ops"
)

// helpMarkdown is the usage guide source, shared by `usage` and the shell.
func helpMarkdown(r *ops.Registry) string {
	var verbs strings.Builder
	for _, line := range r.Usage() {
		fmt.Fprintf(&verbs, "* `%s`\n", line)
	}

	return fmt.Sprintf(`
 **avlindex %s**

An in-memory ordered index on a binary search tree, with optional AVL
balancing. Insert, delete and inspect keys interactively or from scripts.

Built with Go %s

# 1. Commands
* avlindex shell: interactive shell (default)
* avlindex demo [bst|avl]: replay the built-in walkthroughs
* avlindex script FILE: run a YAML script of operations
* avlindex load [FILE] [--random N]: bulk load, then open the shell
* avlindex stats [FILE] [--random N]: bulk load, print attributes and counters
* avlindex config: show settings, create ~/.avlindex.yaml when missing

# 2. Operations
%s
Keys are 64-bit integers. Lines starting with # are ignored.

# 3. Shell keys
* enter: run the line
* up/down: previous and next line
* f1: toggle this guide
* ctrl+y: copy the in-order keys
* esc: quit

# License
Licensed under the Apache License, Version 2.0
Copyright © 2025 Naren Yellavula

`, version, runtime.Version(), verbs.String())
}

func getHelpMessage(r *ops.Registry) string {
	result := markdown.Render(helpMarkdown(r), 80, 3)
	return string(result)
}
