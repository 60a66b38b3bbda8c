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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cybrota/avlindex/tree"
	"gopkg.in/yaml.v3"
)

const configFileName = ".avlindex.yaml"

type TreeConfig struct {
	Kind       string `yaml:"kind"`
	Duplicates string `yaml:"duplicates"`
}

type ShellConfig struct {
	ReportTTL time.Duration `yaml:"report_ttl"`
	History   int           `yaml:"history"`
}

type FilterConfig struct {
	BloomBits   uint `yaml:"bloom_bits"`
	BloomHashes uint `yaml:"bloom_hashes"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Tree   TreeConfig   `yaml:"tree"`
	Shell  ShellConfig  `yaml:"shell"`
	Filter FilterConfig `yaml:"filter"`
	Log    LogConfig    `yaml:"log"`
}

var defaultConfig = Config{
	Tree: TreeConfig{
		Kind:       "avl",
		Duplicates: "overwrite",
	},
	Shell: ShellConfig{
		ReportTTL: 30 * time.Second,
		History:   100,
	},
	Filter: FilterConfig{
		BloomBits:   1 << 16,
		BloomHashes: 4,
	},
	Log: LogConfig{
		Level: "info",
	},
}

// Validate rejects settings no tree can be built from.
func (c *Config) Validate() error {
	switch c.Tree.Kind {
	case "avl", "bst":
	default:
		return fmt.Errorf("tree.kind: unknown kind %q (want avl or bst)", c.Tree.Kind)
	}

	policy, err := tree.ParseDuplicatePolicy(c.Tree.Duplicates)
	if err != nil {
		return fmt.Errorf("tree.duplicates: %w", err)
	}
	if c.Tree.Kind == "avl" && policy == tree.DuplicatesRight {
		return errors.New("tree.duplicates: an avl tree cannot route duplicates right")
	}

	if c.Shell.History < 1 {
		return fmt.Errorf("shell.history: must be positive, got %d", c.Shell.History)
	}
	if c.Filter.BloomBits == 0 || c.Filter.BloomHashes == 0 {
		return errors.New("filter: bloom_bits and bloom_hashes must be positive")
	}
	if _, err := parseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// newTree builds the tree the configuration describes. The kind and
// duplicates arguments override the file when non-empty.
func (c *Config) newTree(kind string, observer tree.Observer) (tree.Tree[int64, string], error) {
	if kind == "" {
		kind = c.Tree.Kind
	}
	policy, err := tree.ParseDuplicatePolicy(c.Tree.Duplicates)
	if err != nil {
		return nil, err
	}

	opts := []tree.Option{tree.WithDuplicates(policy)}
	if observer != nil {
		opts = append(opts, tree.WithObserver(observer))
	}

	switch kind {
	case "bst":
		return tree.NewSearchTree[int64, string](opts...), nil
	case "avl":
		if policy == tree.DuplicatesRight {
			opts[0] = tree.WithDuplicates(tree.DuplicatesOverwrite)
		}
		return tree.NewBalancedTree[int64, string](opts...), nil
	}
	return nil, fmt.Errorf("unknown tree kind %q", kind)
}

func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return level, fmt.Errorf("unknown level %q", name)
	}
	return level, nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads the configuration at path, or at ~/.avlindex.yaml when
// path is empty. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			cfg := defaultConfig
			return &cfg, nil
		}
		path = p
	}
	return loadConfigFrom(path)
}

func loadConfigFrom(path string) (*Config, error) {
	cfg := defaultConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Unmarshal over the defaults so omitted keys keep their values
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func createDefaultConfigFile(path string) error {
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func displaySettings(path string) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	created := false
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("📝 Configuration file not found. Creating default configuration...\n\n")
		if err := createDefaultConfigFile(path); err != nil {
			return err
		}
		created = true
	}

	config, err := loadConfigFrom(path)
	if err != nil {
		return err
	}

	fmt.Printf("🔧 avlindex Configuration Settings\n")
	fmt.Printf("═══════════════════════════════════\n\n")
	if created {
		fmt.Printf("📍 Config file: %s (newly created)\n\n", path)
	} else {
		fmt.Printf("📍 Config file: %s\n\n", path)
	}

	fmt.Printf("🌳 %sTree:%s\n", Green, Reset)
	fmt.Printf("  • kind: %s\n", config.Tree.Kind)
	fmt.Printf("  • duplicates: %s\n\n", config.Tree.Duplicates)

	fmt.Printf("🐚 %sShell:%s\n", Green, Reset)
	fmt.Printf("  • report_ttl: %s\n", config.Shell.ReportTTL)
	fmt.Printf("  • history: %d lines\n\n", config.Shell.History)

	fmt.Printf("🔍 %sFilter:%s\n", Green, Reset)
	fmt.Printf("  • bloom_bits: %d\n", config.Filter.BloomBits)
	fmt.Printf("  • bloom_hashes: %d\n\n", config.Filter.BloomHashes)

	fmt.Printf("📜 %sLog:%s\n", Green, Reset)
	fmt.Printf("  • level: %s\n\n", config.Log.Level)

	if config.Tree.Kind == "bst" {
		fmt.Printf("💡 Plain search trees are not rebalanced. To switch, edit %s:\n", path)
		fmt.Printf("   tree:\n     kind: avl\n")
	}
	return nil
}
