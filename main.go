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
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/cybrota/avlindex/ops"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

// app carries what every command needs once flags and config are read.
type app struct {
	configPath string
	kind       string
	verbose    bool

	cfg      *Config
	logger   *slog.Logger
	metrics  *Metrics
	reports  *ReportCache
	registry *ops.Registry
}

func (a *app) setup() error {
	InitializeColors()

	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	switch a.kind {
	case "", "avl", "bst":
	default:
		return fmt.Errorf("--kind: unknown tree kind %q (want avl or bst)", a.kind)
	}

	level, err := parseLogLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	a.metrics = NewMetrics()
	a.reports = NewReportCache(cfg.Shell.ReportTTL)
	a.registry = newRegistry(a.reports)
	return nil
}

// newIndex builds an index; the --kind flag beats fallback, which beats
// the config file.
func (a *app) newIndex(fallback string) (*KeyIndex, error) {
	kind := a.kind
	if kind == "" {
		kind = fallback
	}
	return NewKeyIndex(a.cfg, kind, a.metrics, a.logger)
}

func (a *app) runShell(ix *KeyIndex) error {
	return runBubbleTeaApp(ix, a.registry, a.reports, a.cfg, a.logger)
}

func (a *app) runScript(ctx context.Context, s *Script, verify bool) error {
	ix, err := a.newIndex(s.Tree)
	if err != nil {
		return err
	}
	runner := &scriptRunner{registry: a.registry, logger: a.logger, verify: verify}
	return runner.Run(ctx, os.Stdout, s, ix)
}

func main() {
	asciiLogo := `
 ▄▀█ █░█ █░░ █ █▄░█ █▀▄ █▀▀ ▀▄▀
 █▀█ ▀▄▀ █▄▄ █ █░▀█ █▄▀ ██▄ █░█
In-memory ordered index on search trees with AVL balancing [Version: %s%s%s]

Copyright @ Naren Yellavula

`
	asciiLogo = fmt.Sprintf(asciiLogo, Green, version, Reset)

	a := &app{}
	var loadOpts loadOptions
	var verify bool

	var cmdShell = &cobra.Command{
		Use:   "shell",
		Short: "Launches the interactive tree shell",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Shell opens an empty tree and runs operations typed at the prompt`),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := a.newIndex("")
			if err != nil {
				return err
			}
			return a.runShell(ix)
		},
	}

	var cmdDemo = &cobra.Command{
		Use:       "demo [bst|avl]",
		Short:     "Replays the built-in walkthroughs",
		Long:      fmt.Sprintf("%s\n%s", asciiLogo, `Demo inserts, deletes and inspects keys on a fresh tree, printing every step`),
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: demoNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := demoNames
			if len(args) == 1 {
				names = args
			}
			for _, name := range names {
				s, err := demoScript(name)
				if err != nil {
					return err
				}
				if err := a.runScript(cmd.Context(), s, true); err != nil {
					return err
				}
				fmt.Println()
			}
			return nil
		},
	}

	var cmdScript = &cobra.Command{
		Use:   "script FILE",
		Short: "Runs a YAML script of operations",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, "Script runs the steps listed in FILE against a fresh tree"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScript(args[0])
			if err != nil {
				return err
			}
			return a.runScript(cmd.Context(), s, verify)
		},
	}
	cmdScript.Flags().BoolVar(&verify, "verify", false, "check tree invariants after every mutating step")

	var cmdLoad = &cobra.Command{
		Use:   "load [FILE]",
		Short: "Bulk loads keys, then launches the shell",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Load reads "key [data]" lines from FILE ("-" for stdin) or generates random keys`),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := a.loadIndex(cmd.Context(), args, loadOpts)
			if err != nil {
				return err
			}
			return a.runShell(ix)
		},
	}

	var cmdStats = &cobra.Command{
		Use:   "stats [FILE]",
		Short: "Bulk loads keys and prints tree attributes and counters",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Stats loads like the load command, then prints the attribute report and the operation counters`),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := a.loadIndex(cmd.Context(), args, loadOpts)
			if err != nil {
				return err
			}
			samples, err := a.metrics.Snapshot()
			if err != nil {
				return err
			}
			fmt.Println(renderReport(ix.Tree()))
			fmt.Println(renderMetrics(samples))
			return nil
		},
	}

	for _, c := range []*cobra.Command{cmdLoad, cmdStats} {
		c.Flags().IntVar(&loadOpts.random, "random", 0, "insert N random keys instead of reading a file")
		c.Flags().Int64Var(&loadOpts.seed, "seed", 1, "seed for --random")
		c.Flags().BoolVar(&loadOpts.progress, "progress", true, "show a progress bar while loading")
	}

	var cmdConfig = &cobra.Command{
		Use:   "config",
		Short: "Print avlindex settings",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Config displays the settings, creating the default file when missing`),
		Args:  cobra.NoArgs,
		// The file may not exist yet, so skip the shared setup
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			InitializeColors()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return displaySettings(a.configPath)
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print avlindex usage guide",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Usage displays the avlindex CLI usage guide`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getHelpMessage(a.registry))
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print avlindex version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:          "avlindex",
		Version:      version,
		Long:         asciiLogo,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the shell when no subcommand is provided
			return cmdShell.RunE(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.avlindex.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.kind, "kind", "", "tree kind: avl or bst (overrides the config file)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")
	rootCmd.AddCommand(cmdShell, cmdDemo, cmdScript, cmdLoad, cmdStats, cmdConfig, cmdUsage, cmdVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func (a *app) loadIndex(ctx context.Context, args []string, opts loadOptions) (*KeyIndex, error) {
	ix, err := a.newIndex("")
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		opts.path = args[0]
	}
	if _, err := populate(ctx, ix, opts, a.logger); err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	return ix, nil
}
