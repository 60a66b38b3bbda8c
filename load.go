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
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cybrota/avlindex/ops"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

// LoadResult summarises a bulk load.
type LoadResult struct {
	Lines    int
	Inserted int
	Existing int
	Elapsed  time.Duration
}

type loadOptions struct {
	path     string // "-" reads stdin
	random   int
	seed     int64
	progress bool
}

func newLoadBar(max int, desc string, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// loadEntries inserts one "key [data...]" entry per line of r. Blank lines
// and lines starting with '#' are skipped. bar may be nil.
func loadEntries(ctx context.Context, r io.Reader, ix ops.Index, bar *progressbar.ProgressBar) (LoadResult, error) {
	var res LoadResult
	start := time.Now()

	scanner := bufio.NewScanner(r)
	// Increase buffer size for long data payloads
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return res, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		keyText, data, _ := strings.Cut(line, " ")
		key, err := strconv.ParseInt(keyText, 10, 64)
		if err != nil {
			return res, fmt.Errorf("line %d: %w: %q is not an integer key", lineNo, ops.ErrUsage, keyText)
		}

		res.Lines++
		if _, created := ix.Insert(key, strings.TrimSpace(data)); created {
			res.Inserted++
		} else {
			res.Existing++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if err := scanner.Err(); err != nil {
		return res, err
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// loadRandom inserts n pseudo-random keys drawn from [0, 4n).
func loadRandom(ctx context.Context, ix ops.Index, n int, seed int64, bar *progressbar.ProgressBar) (LoadResult, error) {
	var res LoadResult
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		key := rng.Int63n(int64(4*n) + 1)
		res.Lines++
		if _, created := ix.Insert(key, ""); created {
			res.Inserted++
		} else {
			res.Existing++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// populate fills ix from a file, stdin or the random generator.
func populate(ctx context.Context, ix ops.Index, opts loadOptions, logger *slog.Logger) (LoadResult, error) {
	var (
		res LoadResult
		err error
		bar *progressbar.ProgressBar
	)

	switch {
	case opts.random > 0:
		if opts.progress {
			bar = newLoadBar(opts.random, "🌱 Inserting random keys...", os.Stderr)
		}
		res, err = loadRandom(ctx, ix, opts.random, opts.seed, bar)
	case opts.path != "":
		var r io.Reader = os.Stdin
		if opts.path != "-" {
			file, openErr := os.Open(opts.path)
			if openErr != nil {
				return res, fmt.Errorf("failed to open %s: %w", opts.path, openErr)
			}
			defer file.Close()
			r = file
		}
		if opts.progress {
			bar = newLoadBar(-1, "📥 Loading keys...", os.Stderr)
		}
		res, err = loadEntries(ctx, r, ix, bar)
	default:
		return res, nil
	}

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return res, err
	}

	logger.Info("loaded keys",
		"lines", humanize.Comma(int64(res.Lines)),
		"inserted", humanize.Comma(int64(res.Inserted)),
		"existing", humanize.Comma(int64(res.Existing)),
		"height", ix.Tree().Height(),
		"elapsed", res.Elapsed.Round(time.Millisecond))
	return res, nil
}
