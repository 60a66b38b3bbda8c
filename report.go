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
	"strconv"

	"github.com/cybrota/avlindex/ops"
	"github.com/cybrota/avlindex/tree"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

type reportRow struct {
	Label string
	Value string
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func nodeOrDash(t tree.Tree[int64, string], id tree.NodeID, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.FormatInt(t.Key(id), 10)
}

// attributeRows computes the attribute block for t.
func attributeRows(t tree.Tree[int64, string]) []reportRow {
	diameter := "-"
	if d := t.MaxDiameter(); d != tree.NoDiameter {
		diameter = humanize.Comma(int64(d))
	}
	minID, minOK := t.MinNode()
	maxID, maxOK := t.MaxNode()

	verify := "ok"
	if err := t.Verify(); err != nil {
		verify = err.Error()
	}

	return []reportRow{
		{"valid", yesNo(t.IsValid())},
		{"balanced", yesNo(t.IsBalanced())},
		{"full", yesNo(t.IsFull())},
		{"complete", yesNo(t.IsComplete())},
		{"perfect", yesNo(t.IsPerfect())},
		{"nodes", humanize.Comma(int64(t.NodeCount()))},
		{"leaves", humanize.Comma(int64(t.LeafCount()))},
		{"max depth", humanize.Comma(int64(t.MaxDepth()))},
		{"max breadth", diameter},
		{"min", nodeOrDash(t, minID, minOK)},
		{"max", nodeOrDash(t, maxID, maxOK)},
		{"duplicates", t.Policy().String()},
		{"verify", verify},
	}
}

// renderReport draws the attribute block as a table.
func renderReport(t tree.Tree[int64, string]) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	tbl.AppendHeader(table.Row{"attribute", "value"})
	for _, row := range attributeRows(t) {
		tbl.AppendRow(table.Row{row.Label, row.Value})
	}
	tbl.AppendFooter(table.Row{"version", strconv.FormatUint(t.Version(), 10)})
	return tbl.Render()
}

// renderTraversals prints the four traversal orders, one per line.
func renderTraversals(t tree.Tree[int64, string]) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.SeparateHeader = false

	for _, order := range []tree.Order{tree.InOrder, tree.PreOrder, tree.PostOrder, tree.LevelOrder} {
		tbl.AppendRow(table.Row{order.String(), ops.FormatSeq(t, t.Traverse(order))})
	}
	return tbl.Render()
}

func renderMetrics(samples []metricSample) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"metric", "labels", "value"})
	for _, s := range samples {
		tbl.AppendRow(table.Row{s.Name, s.Labels, humanize.Comma(int64(s.Value))})
	}
	tbl.AppendFooter(table.Row{"", "samples", fmt.Sprint(len(samples))})
	return tbl.Render()
}

// reportOp exposes the attribute table to scripts and the shell.
type reportOp struct {
	cache *ReportCache
}

func (reportOp) Verbs() []string { return []string{"report", "attrs"} }
func (reportOp) Usage() string   { return "report" }
func (reportOp) Mutates() bool   { return false }

func (o reportOp) Run(ix ops.Index, cmd *ops.Command) (string, error) {
	if len(cmd.Args) != 0 {
		return "", fmt.Errorf("%w: report", ops.ErrUsage)
	}
	t := ix.Tree()
	return o.cache.GetOrRender("report", t.ID(), t.Version(), func() string {
		return renderReport(t)
	}), nil
}

// traversalsOp prints all four orders at once.
type traversalsOp struct{}

func (traversalsOp) Verbs() []string { return []string{"traverse", "traversals"} }
func (traversalsOp) Usage() string   { return "traverse" }
func (traversalsOp) Mutates() bool   { return false }

func (traversalsOp) Run(ix ops.Index, cmd *ops.Command) (string, error) {
	if len(cmd.Args) != 0 {
		return "", fmt.Errorf("%w: traverse", ops.ErrUsage)
	}
	return renderTraversals(ix.Tree()), nil
}

// newRegistry returns the built-in operations plus the report verbs.
func newRegistry(rc *ReportCache) *ops.Registry {
	r := ops.NewRegistry()
	r.Register(reportOp{cache: rc})
	r.Register(traversalsOp{})
	return r
}
