package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/filetug/extcensus/pkg/census"
	"gopkg.in/yaml.v3"
)

// Format names an output of the command line tool.
type Format string

const (
	TreeFormat    Format = "tree"
	BarFormat     Format = "bar"
	TreemapFormat Format = "treemap"
	JSONFormat    Format = "json"
	YAMLFormat    Format = "yaml"
)

var Formats = []Format{TreeFormat, BarFormat, TreemapFormat, JSONFormat, YAMLFormat}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case TreeFormat, BarFormat, TreemapFormat, JSONFormat, YAMLFormat:
		return f, nil
	case "yml":
		return YAMLFormat, nil
	}
	return "", fmt.Errorf("unknown output format %q, expected one of: %v", s, Formats)
}

// Encode writes node as an indented JSON or YAML document.
func Encode(w io.Writer, node *census.Node, format Format) error {
	switch format {
	case JSONFormat:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(node)
	case YAMLFormat:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(node); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("format %q is not a document format", format)
}
