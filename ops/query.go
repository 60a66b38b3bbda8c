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
	"iter"
	"strconv"
	"strings"

	"github.com/cybrota/avlindex/tree"
)

// formatNode renders a node as "(key, data)", or "(key)" without data.
func formatNode(t tree.Tree[int64, string], id tree.NodeID) string {
	n, ok := t.Node(id)
	if !ok {
		return "nil"
	}
	if n.Data() == "" {
		return fmt.Sprintf("(%d)", n.Key())
	}
	return n.String()
}

// FormatSeq renders every node of seq separated by spaces, or "empty".
func FormatSeq(t tree.Tree[int64, string], seq iter.Seq[tree.NodeID]) string {
	var parts []string
	for id := range seq {
		parts = append(parts, formatNode(t, id))
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}

// findKey resolves the nth argument to a node.
func findKey(ix Index, cmd *Command, n int) (tree.NodeID, error) {
	k, err := cmd.Key(n)
	if err != nil {
		return tree.Nil, err
	}
	id, ok := ix.Lookup(k)
	if !ok {
		return tree.Nil, fmt.Errorf("%d %w", k, ErrKeyNotFound)
	}
	return id, nil
}

type lookupOp struct{}

func (lookupOp) Verbs() []string { return []string{"lookup", "find"} }
func (lookupOp) Usage() string   { return "lookup KEY" }
func (lookupOp) Mutates() bool   { return false }

func (lookupOp) Run(ix Index, cmd *Command) (string, error) {
	if err := cmd.expectArgs(1, "lookup KEY"); err != nil {
		return "", err
	}
	id, err := findKey(ix, cmd, 0)
	if err != nil {
		return "", err
	}
	return formatNode(ix.Tree(), id), nil
}

type traverseOp struct {
	order tree.Order
}

func (o traverseOp) Verbs() []string { return []string{o.order.String()} }
func (o traverseOp) Usage() string   { return o.order.String() }
func (traverseOp) Mutates() bool     { return false }

func (o traverseOp) Run(ix Index, cmd *Command) (string, error) {
	if err := cmd.expectArgs(0, o.order.String()); err != nil {
		return "", err
	}
	t := ix.Tree()
	return FormatSeq(t, t.Traverse(o.order)), nil
}

type pathOp struct{}

func (pathOp) Verbs() []string { return []string{"path"} }
func (pathOp) Usage() string   { return "path KEY" }
func (pathOp) Mutates() bool   { return false }

func (pathOp) Run(ix Index, cmd *Command) (string, error) {
	if err := cmd.expectArgs(1, "path KEY"); err != nil {
		return "", err
	}
	id, err := findKey(ix, cmd, 0)
	if err != nil {
		return "", err
	}

	t := ix.Tree()
	path := t.NodePath(id)
	keys := make([]string, 0, len(path))
	for _, step := range path {
		keys = append(keys, strconv.FormatInt(t.Key(step), 10))
	}
	return strings.Join(keys, " -> "), nil
}

type parentOp struct{}

func (parentOp) Verbs() []string { return []string{"parent"} }
func (parentOp) Usage() string   { return "parent KEY" }
func (parentOp) Mutates() bool   { return false }

func (parentOp) Run(ix Index, cmd *Command) (string, error) {
	if err := cmd.expectArgs(1, "parent KEY"); err != nil {
		return "", err
	}
	id, err := findKey(ix, cmd, 0)
	if err != nil {
		return "", err
	}

	t := ix.Tree()
	parent, ok := t.ParentOf(id)
	if !ok {
		return fmt.Sprintf("%d is the root", t.Key(id)), nil
	}
	return formatNode(t, parent), nil
}

type lcaOp struct{}

func (lcaOp) Verbs() []string { return []string{"lca", "ancestor"} }
func (lcaOp) Usage() string   { return "lca KEY KEY" }
func (lcaOp) Mutates() bool   { return false }

func (lcaOp) Run(ix Index, cmd *Command) (string, error) {
	a, b, err := keyPair(ix, cmd, "lca KEY KEY")
	if err != nil {
		return "", err
	}
	t := ix.Tree()
	nca, ok := t.NearestCommonAncestor(a, b)
	if !ok {
		return "", fmt.Errorf("common ancestor %w", ErrKeyNotFound)
	}
	return formatNode(t, nca), nil
}

type distanceOp struct{}

func (distanceOp) Verbs() []string { return []string{"distance"} }
func (distanceOp) Usage() string   { return "distance KEY KEY" }
func (distanceOp) Mutates() bool   { return false }

func (distanceOp) Run(ix Index, cmd *Command) (string, error) {
	a, b, err := keyPair(ix, cmd, "distance KEY KEY")
	if err != nil {
		return "", err
	}
	d, ok := ix.Tree().Distance(a, b)
	if !ok {
		return "", fmt.Errorf("path %w", ErrKeyNotFound)
	}
	return strconv.Itoa(d), nil
}

func keyPair(ix Index, cmd *Command, usage string) (tree.NodeID, tree.NodeID, error) {
	if err := cmd.expectArgs(2, usage); err != nil {
		return tree.Nil, tree.Nil, err
	}
	a, err := findKey(ix, cmd, 0)
	if err != nil {
		return tree.Nil, tree.Nil, err
	}
	b, err := findKey(ix, cmd, 1)
	if err != nil {
		return tree.Nil, tree.Nil, err
	}
	return a, b, nil
}

// levelOp counts nodes on a level; the root is level 1.
type levelOp struct{}

func (levelOp) Verbs() []string { return []string{"level"} }
func (levelOp) Usage() string   { return "level N" }
func (levelOp) Mutates() bool   { return false }

func (levelOp) Run(ix Index, cmd *Command) (string, error) {
	if err := cmd.expectArgs(1, "level N"); err != nil {
		return "", err
	}
	n, err := strconv.Atoi(cmd.Arg(0))
	if err != nil {
		return "", fmt.Errorf("%w: level: %q is not a number", ErrUsage, cmd.Arg(0))
	}
	return strconv.Itoa(ix.Tree().CountAtLevel(n)), nil
}

type extremeOp struct {
	verb string
}

func (o extremeOp) Verbs() []string { return []string{o.verb} }
func (o extremeOp) Usage() string   { return o.verb }
func (extremeOp) Mutates() bool     { return false }

func (o extremeOp) Run(ix Index, cmd *Command) (string, error) {
	if err := cmd.expectArgs(0, o.verb); err != nil {
		return "", err
	}
	t := ix.Tree()
	find := t.MinNode
	if o.verb == "max" {
		find = t.MaxNode
	}
	id, ok := find()
	if !ok {
		return "empty", nil
	}
	return formatNode(t, id), nil
}

type heightOp struct{}

func (heightOp) Verbs() []string { return []string{"height"} }
func (heightOp) Usage() string   { return "height" }
func (heightOp) Mutates() bool   { return false }

func (heightOp) Run(ix Index, cmd *Command) (string, error) {
	if err := cmd.expectArgs(0, "height"); err != nil {
		return "", err
	}
	return strconv.Itoa(ix.Tree().Height()), nil
}

// showOp draws the tree sideways; "show data" adds payloads, balance
// factors and heights.
type showOp struct{}

func (showOp) Verbs() []string { return []string{"show", "print"} }
func (showOp) Usage() string   { return "show [data]" }
func (showOp) Mutates() bool   { return false }

func (showOp) Run(ix Index, cmd *Command) (string, error) {
	if len(cmd.Args) > 1 || (cmd.HasArg(0) && cmd.Arg(0) != "data") {
		return "", fmt.Errorf("%w: show [data]", ErrUsage)
	}
	var sb strings.Builder
	if _, err := ix.Tree().Print(&sb, cmd.HasArg(0)); err != nil {
		return "", err
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
