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
	"github.com/mattn/go-shellwords"
)

// Registry dispatches parsed lines to operations by verb.
type Registry struct {
	byVerb map[string]Operation
	order  []Operation
}

// NewRegistry returns a registry with every built-in operation.
func NewRegistry() *Registry {
	r := &Registry{byVerb: make(map[string]Operation)}

	// Registration order is the order Usage lists them in
	r.Register(insertOp{})
	r.Register(deleteOp{})
	r.Register(lookupOp{})
	for _, order := range []tree.Order{tree.InOrder, tree.PreOrder, tree.PostOrder, tree.LevelOrder} {
		r.Register(traverseOp{order: order})
	}
	r.Register(pathOp{})
	r.Register(parentOp{})
	r.Register(lcaOp{})
	r.Register(distanceOp{})
	r.Register(levelOp{})
	r.Register(extremeOp{verb: "min"})
	r.Register(extremeOp{verb: "max"})
	r.Register(heightOp{})
	r.Register(showOp{})
	r.Register(clearOp{})

	return r
}

// Register adds op under each of its verbs. A later registration for the
// same verb replaces the earlier one.
func (r *Registry) Register(op Operation) {
	r.order = append(r.order, op)
	for _, verb := range op.Verbs() {
		r.byVerb[verb] = op
	}
}

// Lookup returns the operation bound to verb.
func (r *Registry) Lookup(verb string) (Operation, bool) {
	op, ok := r.byVerb[strings.ToLower(verb)]
	return op, ok
}

// Usage lists one usage line per registered operation.
func (r *Registry) Usage() []string {
	lines := make([]string, 0, len(r.order))
	for _, op := range r.order {
		if bound, ok := r.byVerb[op.Verbs()[0]]; !ok || bound != op {
			continue
		}
		lines = append(lines, op.Usage())
	}
	return lines
}

// Parse splits line using shell quoting rules. Blank lines and lines
// starting with '#' yield a nil command and no error.
func Parse(line string) (*Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	parts, err := shellwords.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return NewCommand(parts), nil
}

// Execute parses line and runs it against ix.
func (r *Registry) Execute(ix Index, line string) (string, error) {
	cmd, err := Parse(line)
	if err != nil || cmd == nil {
		return "", err
	}
	return r.Run(ix, cmd)
}

// Run dispatches an already parsed command.
func (r *Registry) Run(ix Index, cmd *Command) (string, error) {
	op, ok := r.byVerb[cmd.Verb]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownOperation, cmd.Verb)
	}
	return op.Run(ix, cmd)
}
