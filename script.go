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
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cybrota/avlindex/ops"
	"gopkg.in/yaml.v3"
)

//go:embed demos/*.yaml
var demoFS embed.FS

// demoNames lists the built-in walkthroughs in the order `demo` runs them.
var demoNames = []string{"bst", "avl"}

// Script is a named list of operation lines.
type Script struct {
	Name  string   `yaml:"name"`
	Tree  string   `yaml:"tree"`
	Steps []string `yaml:"steps"`
}

func parseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	switch s.Tree {
	case "", "avl", "bst":
	default:
		return nil, fmt.Errorf("script %q: unknown tree kind %q", s.Name, s.Tree)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("script %q has no steps", s.Name)
	}
	return &s, nil
}

func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return parseScript(data)
}

func demoScript(name string) (*Script, error) {
	data, err := demoFS.ReadFile("demos/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown demo %q (want one of %v)", name, demoNames)
	}
	return parseScript(data)
}

type scriptRunner struct {
	registry *ops.Registry
	logger   *slog.Logger
	verify   bool // check tree invariants after every mutating step
}

// Run executes every step of s against ix, echoing each step and its
// output to w. Missing keys are reported inline; any other error stops the
// script.
func (sr *scriptRunner) Run(ctx context.Context, w io.Writer, s *Script, ix ops.Index) error {
	fmt.Fprintf(w, "== %s ==\n", s.Name)

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, err := ops.Parse(step)
		if err != nil {
			return fmt.Errorf("step %d %q: %w", i+1, step, err)
		}
		if cmd == nil {
			continue
		}

		fmt.Fprintf(w, "> %s\n", step)
		out, err := sr.registry.Run(ix, cmd)
		switch {
		case errors.Is(err, ops.ErrKeyNotFound):
			fmt.Fprintf(w, "! %v\n", err)
			continue
		case err != nil:
			return fmt.Errorf("step %d %q: %w", i+1, step, err)
		}
		if out != "" {
			fmt.Fprintln(w, out)
		}

		op, _ := sr.registry.Lookup(cmd.Verb)
		if sr.verify && op.Mutates() {
			if err := ix.Tree().Verify(); err != nil {
				return fmt.Errorf("step %d %q: %w", i+1, step, err)
			}
		}
		sr.logger.Debug("script step", "script", s.Name, "step", i+1, "verb", cmd.Verb)
	}
	return nil
}
