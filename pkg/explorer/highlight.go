package explorer

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rivo/tview"
)

const highlightStyle = "dracula"

var (
	getStyle = styles.Get
	getLexer = lexers.Get
)

// colorize converts text into tview colour tags using a chroma lexer.
func colorize(text string, lexer chroma.Lexer) (string, error) {
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}
	style := getStyle(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	var sb strings.Builder
	for _, token := range iterator.Tokens() {
		value := tview.Escape(token.Value)
		entry := style.Get(token.Type)
		if !entry.Colour.IsSet() {
			sb.WriteString(value)
			continue
		}
		sb.WriteString("[" + entry.Colour.String() + "]")
		sb.WriteString(value)
		sb.WriteString("[-]")
	}
	return sb.String(), nil
}

// colorizeYAML falls back to the escaped plain text when highlighting fails.
func colorizeYAML(text string) string {
	lexer := getLexer("yaml")
	if lexer == nil {
		return tview.Escape(text)
	}
	colored, err := colorize(text, lexer)
	if err != nil {
		return tview.Escape(text)
	}
	return colored
}
