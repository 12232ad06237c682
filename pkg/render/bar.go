package render

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/filetug/extcensus/pkg/census"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

const (
	DefaultBarTopK = 6
	OtherLabel     = "other"
	barWidth       = 40
)

var ErrNoSubfolders = errors.New("no subfolders to plot")

var barGlyphs = []string{"█", "▓", "▒", "░", "▚", "▞", "▪", "▫"}

// BarSeries is one stacked segment kind: an extension or the "other" bucket.
type BarSeries struct {
	Label  string
	Values []int
}

// StackedBarData holds one bar per immediate child of the root.
type StackedBarData struct {
	Title  string
	Labels []string
	Series []BarSeries
}

// Totals returns the height of every bar.
func (d StackedBarData) Totals() []int {
	totals := make([]int, len(d.Labels))
	for _, s := range d.Series {
		for i, v := range s.Values {
			totals[i] += v
		}
	}
	return totals
}

// StackedBars splits every immediate child of root into the topK extensions
// most common across all children, plus an "other" series when any child has
// files outside of them.
func StackedBars(root *census.Node, topK int) (StackedBarData, error) {
	if root == nil || len(root.Children) == 0 {
		return StackedBarData{}, ErrNoSubfolders
	}
	all := make(census.ExtCounts)
	for _, c := range root.Children {
		all.Merge(c.Counts)
	}
	topExts := lo.Map(all.MostCommon(topK), func(c census.ExtCount, _ int) string {
		return c.Ext
	})

	data := StackedBarData{
		Title: fmt.Sprintf("File-type counts per subfolder under '%s'", root.Name),
		Labels: lo.Map(root.Children, func(c *census.Node, _ int) string {
			return c.Name
		}),
	}
	for _, ext := range topExts {
		data.Series = append(data.Series, BarSeries{
			Label: census.DisplayExt(ext),
			Values: lo.Map(root.Children, func(c *census.Node, _ int) int {
				return c.Counts[ext]
			}),
		})
	}
	other := lo.Map(root.Children, func(c *census.Node, _ int) int {
		return c.Total() - lo.SumBy(topExts, func(ext string) int { return c.Counts[ext] })
	})
	if lo.SomeBy(other, func(v int) bool { return v != 0 }) {
		data.Series = append(data.Series, BarSeries{Label: OtherLabel, Values: other})
	}
	return data, nil
}

// BarChart renders StackedBars as a table with a glyph bar per subfolder.
func BarChart(root *census.Node, topK int) (string, error) {
	data, err := StackedBars(root, topK)
	if err != nil {
		return "", err
	}
	totals := data.Totals()
	maxTotal := lo.Max(totals)

	t := table.NewWriter()
	t.SetTitle("%s", data.Title)
	header := table.Row{"Subfolder"}
	for _, s := range data.Series {
		header = append(header, s.Label)
	}
	header = append(header, "Total", "")
	t.AppendHeader(header)

	for i, label := range data.Labels {
		row := table.Row{label}
		values := make([]int, len(data.Series))
		for j, s := range data.Series {
			row = append(row, s.Values[i])
			values[j] = s.Values[i]
		}
		row = append(row, totals[i], stackedBar(values, maxTotal, barWidth))
		t.AppendRow(row)
	}

	legend := make([]string, 0, len(data.Series))
	for j, s := range data.Series {
		legend = append(legend, glyph(j)+" "+s.Label)
	}
	t.SetCaption("%s", strings.Join(legend, "  "))
	return t.Render(), nil
}

// stackedBar draws values as adjacent glyph runs scaled so that maxTotal spans width.
// Segment edges are rounded on the running sum so the bar length tracks the total.
func stackedBar(values []int, maxTotal, width int) string {
	if maxTotal <= 0 {
		return ""
	}
	var sb strings.Builder
	cum, drawn := 0, 0
	for j, v := range values {
		cum += v
		edge := int(math.Round(float64(cum) * float64(width) / float64(maxTotal)))
		if n := edge - drawn; n > 0 {
			sb.WriteString(strings.Repeat(glyph(j), n))
			drawn = edge
		}
	}
	return sb.String()
}

func glyph(i int) string {
	return barGlyphs[i%len(barGlyphs)]
}
