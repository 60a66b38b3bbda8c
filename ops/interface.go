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

// Package ops implements the line language used by scripts and the
// interactive shell: one verb followed by its arguments, e.g.
// "insert 50 fifty" or "lca 20 60".
package ops

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cybrota/avlindex/tree"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrUsage            = errors.New("usage")
	ErrKeyNotFound      = errors.New("not found")
)

// Index is the keyed store an operation runs against.
type Index interface {
	Insert(key int64, data string) (tree.NodeID, bool)
	Delete(key int64) bool
	Lookup(key int64) (tree.NodeID, bool)
	Clear()
	Tree() tree.Tree[int64, string]
}

// Operation handles one or more verbs.
type Operation interface {
	Verbs() []string
	Usage() string
	Mutates() bool
	Run(ix Index, cmd *Command) (string, error)
}

// Command represents a parsed operation line
type Command struct {
	Parts    []string
	Verb     string
	Args     []string
	FullName string
}

// NewCommand creates a Command from line parts
func NewCommand(parts []string) *Command {
	if len(parts) == 0 {
		return &Command{Parts: parts}
	}

	return &Command{
		Parts:    parts,
		Verb:     strings.ToLower(parts[0]),
		Args:     parts[1:],
		FullName: strings.Join(parts, " "),
	}
}

// HasArg checks if the nth argument exists (0-based)
func (c *Command) HasArg(n int) bool {
	return n >= 0 && n < len(c.Args)
}

// Arg returns the nth argument or the empty string
func (c *Command) Arg(n int) string {
	if !c.HasArg(n) {
		return ""
	}
	return c.Args[n]
}

// Key parses the nth argument as a key.
func (c *Command) Key(n int) (int64, error) {
	if !c.HasArg(n) {
		return 0, fmt.Errorf("%w: %s: missing key", ErrUsage, c.Verb)
	}
	k, err := strconv.ParseInt(c.Args[n], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not an integer key", ErrUsage, c.Verb, c.Args[n])
	}
	return k, nil
}

// Keys parses every argument as a key.
func (c *Command) Keys() ([]int64, error) {
	keys := make([]int64, 0, len(c.Args))
	for i := range c.Args {
		k, err := c.Key(i)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (c *Command) expectArgs(n int, usage string) error {
	if len(c.Args) != n {
		return fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	return nil
}

// allKeys reports whether every argument parses as a key.
func (c *Command) allKeys() bool {
	for _, a := range c.Args {
		if _, err := strconv.ParseInt(a, 10, 64); err != nil {
			return false
		}
	}
	return true
}
