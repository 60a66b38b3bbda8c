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
	"fmt"
	"strings"

	"github.com/cybrota/avlindex/tree"
)

// insertOp adds keys. "insert 5 7 9" inserts three bare keys; when any
// argument after the first is not an integer the rest of the line is the
// data of a single key, as in "insert 5 five".
type insertOp struct{}

func (insertOp) Verbs() []string { return []string{"insert", "add"} }
func (insertOp) Usage() string   { return "insert KEY [DATA...] | insert KEY KEY..." }
func (insertOp) Mutates() bool   { return true }

func (insertOp) Run(ix Index, cmd *Command) (string, error) {
	if len(cmd.Args) == 0 {
		return "", fmt.Errorf("%w: insert needs at least one key", ErrUsage)
	}

	if cmd.allKeys() {
		keys, err := cmd.Keys()
		if err != nil {
			return "", err
		}
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, insertOne(ix, k, ""))
		}
		return strings.Join(lines, "\n"), nil
	}

	k, err := cmd.Key(0)
	if err != nil {
		return "", err
	}
	return insertOne(ix, k, strings.Join(cmd.Args[1:], " ")), nil
}

func insertOne(ix Index, key int64, data string) string {
	id, created := ix.Insert(key, data)
	t := ix.Tree()
	switch {
	case created:
		return "inserted " + formatNode(t, id)
	case t.Policy() == tree.DuplicatesOverwrite:
		return "updated " + formatNode(t, id)
	default:
		return "kept " + formatNode(t, id)
	}
}

type deleteOp struct{}

func (deleteOp) Verbs() []string { return []string{"delete", "remove"} }
func (deleteOp) Usage() string   { return "delete KEY..." }
func (deleteOp) Mutates() bool   { return true }

func (deleteOp) Run(ix Index, cmd *Command) (string, error) {
	if len(cmd.Args) == 0 {
		return "", fmt.Errorf("%w: delete needs at least one key", ErrUsage)
	}
	keys, err := cmd.Keys()
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		if ix.Delete(k) {
			lines = append(lines, fmt.Sprintf("deleted %d", k))
		} else {
			lines = append(lines, fmt.Sprintf("%d %v", k, ErrKeyNotFound))
		}
	}
	return strings.Join(lines, "\n"), nil
}

type clearOp struct{}

func (clearOp) Verbs() []string { return []string{"clear"} }
func (clearOp) Usage() string   { return "clear" }
func (clearOp) Mutates() bool   { return true }

func (clearOp) Run(ix Index, cmd *Command) (string, error) {
	if err := cmd.expectArgs(0, "clear"); err != nil {
		return "", err
	}
	n := ix.Tree().Len()
	ix.Clear()
	return fmt.Sprintf("cleared %d nodes", n), nil
}
