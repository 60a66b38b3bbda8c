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

import "fmt"

// DuplicatePolicy decides what Insert does with a key already present.
type DuplicatePolicy int

const (
	// DuplicatesRight stores equal keys as separate nodes in the right subtree.
	DuplicatesRight DuplicatePolicy = iota
	// DuplicatesOverwrite replaces the data of the existing node.
	DuplicatesOverwrite
	// DuplicatesReject leaves the existing node untouched.
	DuplicatesReject
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicatesRight:
		return "right"
	case DuplicatesOverwrite:
		return "overwrite"
	case DuplicatesReject:
		return "reject"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
}

// ParseDuplicatePolicy maps the names used in configuration files.
func ParseDuplicatePolicy(name string) (DuplicatePolicy, error) {
	switch name {
	case "right":
		return DuplicatesRight, nil
	case "overwrite":
		return DuplicatesOverwrite, nil
	case "reject":
		return DuplicatesReject, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q", name)
}

// Direction of a rotation.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Observer is notified of structural events. Calls happen synchronously
// from inside the mutating operation and must not touch the tree.
type Observer interface {
	Rotated(dir Direction)
}

type options struct {
	duplicates DuplicatePolicy
	observer   Observer
}

// Option configures a tree at construction.
type Option func(*options)

// WithDuplicates sets the duplicate key policy.
func WithDuplicates(p DuplicatePolicy) Option {
	return func(o *options) {
		o.duplicates = p
	}
}

// WithObserver registers an observer for rotations.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

func buildOptions(defaultPolicy DuplicatePolicy, opts []Option) options {
	o := options{duplicates: defaultPolicy}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
