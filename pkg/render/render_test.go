package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/filetug/extcensus/pkg/census"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// sampleTree:
//
//	proj {.go:3 .md:1 <noext>:1}
//	├── cmd {.go:1}
//	├── pkg {.go:2 .md:1}
//	│   └── util {.go:1}
//	└── secret (permission denied)
func sampleTree() *census.Node {
	root := census.NewNode("proj")
	root.Counts = census.ExtCounts{".go": 3, ".md": 1, census.NoExt: 1}
	cmd := root.AddChild(census.NewNode("cmd"))
	cmd.Counts = census.ExtCounts{".go": 1}
	pkg := root.AddChild(census.NewNode("pkg"))
	pkg.Counts = census.ExtCounts{".go": 2, ".md": 1}
	util := pkg.AddChild(census.NewNode("util"))
	util.Counts = census.ExtCounts{".go": 1}
	secret := root.AddChild(census.NewNode("secret"))
	secret.PermissionDenied = true
	return root
}

func TestFormatTree(t *testing.T) {
	t.Run("unlimited", func(t *testing.T) {
		expected := strings.Join([]string{
			"└── [proj] (total: 5 | go: 3, md: 1, <noext>: 1)",
			"    ├── [cmd] (total: 1 | go: 1)",
			"    ├── [pkg] (total: 3 | go: 2, md: 1)",
			"    │   └── [util] (total: 1 | go: 1)",
			"    └── [secret] (permission denied)",
		}, "\n")
		assert.Equal(t, expected, FormatTree(sampleTree(), DefaultTreeOptions()))
	})

	t.Run("max_depth", func(t *testing.T) {
		out := FormatTree(sampleTree(), TreeOptions{TopK: 5, MaxDepth: 1})
		assert.NotContains(t, out, "util")
		assert.Contains(t, out, "[pkg]")

		out = FormatTree(sampleTree(), TreeOptions{TopK: 5, MaxDepth: 0})
		assert.Equal(t, "└── [proj] (total: 5 | go: 3, md: 1, <noext>: 1)", out)
	})

	t.Run("top_k_ellipsis", func(t *testing.T) {
		out := FormatTree(sampleTree(), TreeOptions{TopK: 1, MaxDepth: 0})
		assert.Equal(t, "└── [proj] (total: 5 | go: 3, …)", out)
	})

	t.Run("empty_directory", func(t *testing.T) {
		out := FormatTree(census.NewNode("empty"), DefaultTreeOptions())
		assert.Equal(t, "└── [empty] (total: 0)", out)
	})

	t.Run("colored", func(t *testing.T) {
		out := FormatTree(census.NewNode("empty"), TreeOptions{MaxDepth: -1, Color: true})
		assert.Contains(t, out, "\x1b[")
	})

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, "", FormatTree(nil, DefaultTreeOptions()))
	})
}

func TestSummary(t *testing.T) {
	node := census.NewNode("a.7z")
	node.Counts.Add(".7z", 1)
	node.Note = "Build without the no7z tag to inspect inside this 7z archive."

	out := Summary(node, DefaultTreeOptions())
	assert.Equal(t, "└── [a.7z] (total: 1 | 7z: 1)\n\nNote: Build without the no7z tag to inspect inside this 7z archive.", out)
	assert.Equal(t, "", FormatNote(""))
}

func TestStackedBars(t *testing.T) {
	data, err := StackedBars(sampleTree(), 1)
	require.NoError(t, err)

	assert.Equal(t, "File-type counts per subfolder under 'proj'", data.Title)
	assert.Equal(t, []string{"cmd", "pkg", "secret"}, data.Labels)
	require.Len(t, data.Series, 2)
	assert.Equal(t, BarSeries{Label: "go", Values: []int{1, 2, 0}}, data.Series[0])
	assert.Equal(t, BarSeries{Label: OtherLabel, Values: []int{0, 1, 0}}, data.Series[1])
	assert.Equal(t, []int{1, 3, 0}, data.Totals())

	t.Run("no_other_bucket_when_all_covered", func(t *testing.T) {
		data, err := StackedBars(sampleTree(), 5)
		require.NoError(t, err)
		for _, s := range data.Series {
			assert.NotEqual(t, OtherLabel, s.Label)
		}
	})

	t.Run("no_subfolders", func(t *testing.T) {
		_, err := StackedBars(census.NewNode("leaf"), 6)
		assert.True(t, errors.Is(err, ErrNoSubfolders))
		_, err = BarChart(census.NewNode("leaf"), 6)
		assert.True(t, errors.Is(err, ErrNoSubfolders))
	})
}

func TestBarChart(t *testing.T) {
	out, err := BarChart(sampleTree(), DefaultBarTopK)
	require.NoError(t, err)
	assert.Contains(t, out, "File-type counts per subfolder under 'proj'")
	assert.Contains(t, out, "pkg")
	assert.Contains(t, out, strings.Repeat("█", 27)+strings.Repeat("▓", 13))
}

func TestStackedBar(t *testing.T) {
	assert.Equal(t, "", stackedBar([]int{1}, 0, 10))
	assert.Equal(t, "█████▓▓▓▓▓", stackedBar([]int{1, 1}, 2, 10))
	assert.Equal(t, "███", stackedBar([]int{1, 0}, 3, 10)[:len("███")])
	assert.Equal(t, 10, len([]rune(stackedBar([]int{1, 1, 1}, 3, 10))))
}

func TestTreemapRows(t *testing.T) {
	rows := TreemapRows(sampleTree())
	require.Len(t, rows, 5)
	assert.Equal(t, TreemapRow{ID: "proj", Label: "proj", Parent: "", Value: 5}, rows[0])
	assert.Equal(t, TreemapRow{ID: "proj/pkg", Label: "pkg", Parent: "proj", Value: 3, Depth: 1}, rows[2])
	assert.Equal(t, TreemapRow{ID: "proj/pkg/util", Label: "util", Parent: "proj/pkg", Value: 1, Depth: 2}, rows[3])
	assert.Equal(t, "proj/secret", rows[4].ID)
	assert.Nil(t, TreemapRows(nil))

	t.Run("sibling_after_deep_branch", func(t *testing.T) {
		root := census.NewNode("r")
		census.InsertEntry(root, "a/b/x.go")
		census.InsertEntry(root, "c/y.go")
		census.Aggregate(root)
		ids := lo.Map(TreemapRows(root), func(row TreemapRow, _ int) string {
			return row.ID + "<" + row.Parent
		})
		assert.Equal(t, []string{"r<", "r/a<r", "r/a/b<r/a", "r/c<r"}, ids)
	})
}

func TestTreemapTable(t *testing.T) {
	out := TreemapTable(sampleTree())
	assert.Contains(t, out, "Treemap – proj")
	assert.Contains(t, out, "60.0%")
	assert.Contains(t, out, "33.3%")
}

func TestSquarify(t *testing.T) {
	t.Run("two_equal", func(t *testing.T) {
		rects := Squarify([]float64{1, 1}, Rect{W: 2, H: 1})
		assert.Equal(t, []Rect{{X: 0, Y: 0, W: 1, H: 1}, {X: 1, Y: 0, W: 1, H: 1}}, rects)
	})

	t.Run("areas_proportional_and_inside", func(t *testing.T) {
		values := []float64{6, 6, 4, 3, 2, 2, 1}
		bounds := Rect{W: 6, H: 4}
		rects := Squarify(values, bounds)
		require.Len(t, rects, len(values))
		const eps = 1e-9
		for i, r := range rects {
			assert.InDelta(t, values[i], r.Area(), eps, "area of %d", i)
			assert.GreaterOrEqual(t, r.X, -eps)
			assert.GreaterOrEqual(t, r.Y, -eps)
			assert.LessOrEqual(t, r.X+r.W, bounds.W+eps)
			assert.LessOrEqual(t, r.Y+r.H, bounds.H+eps)
		}
	})

	t.Run("zero_and_empty", func(t *testing.T) {
		rects := Squarify([]float64{0, 2}, Rect{W: 1, H: 2})
		assert.Equal(t, Rect{}, rects[0])
		assert.InDelta(t, 2, rects[1].Area(), 1e-9)
		assert.Equal(t, []Rect{{}}, Squarify([]float64{1}, Rect{}))
	})
}

func TestTreemapTiles(t *testing.T) {
	tiles := TreemapTiles(sampleTree(), Rect{W: 4, H: 1})
	require.Len(t, tiles, 2, "empty children get no tile")
	assert.Equal(t, "pkg", tiles[1].Node.Name)
	assert.InDelta(t, 3, tiles[1].Rect.Area(), 1e-9)
}

func TestEncode(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, sampleTree(), JSONFormat))
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "proj", decoded["name"])
		children := decoded["children"].([]any)
		require.Len(t, children, 3)
		assert.Equal(t, true, children[2].(map[string]any)["permission_denied"])
		assert.NotContains(t, buf.String(), "childByName")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, sampleTree(), YAMLFormat))
		var decoded census.Node
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, 5, decoded.Total())
		assert.Equal(t, "util", decoded.Children[1].Children[0].Name)
	})

	t.Run("not_a_document", func(t *testing.T) {
		assert.Error(t, Encode(&bytes.Buffer{}, sampleTree(), TreeFormat))
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, JSONFormat, f)
	f, err = ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, YAMLFormat, f)
	_, err = ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown output format")

	for _, name := range []string{"tree", "bar", "treemap", "json", "yaml"} {
		f, err = ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}
	assert.Equal(t, Formats, []Format{TreeFormat, BarFormat, TreemapFormat, JSONFormat, YAMLFormat})
}

func TestSummary_TreeFormat(t *testing.T) {
	f, err := ParseFormat("tree")
	require.NoError(t, err)
	require.Equal(t, TreeFormat, f)
	root := sampleTree()
	root.Note = "partial"
	out := Summary(root, DefaultTreeOptions())
	assert.Equal(t, FormatTree(root, DefaultTreeOptions())+"\n\nNote: partial", out)
}
