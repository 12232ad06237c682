package census

import "github.com/alecthomas/chroma/v2/lexers"

var matchLexer = lexers.Match

// Language names the programming or markup language chroma associates with
// an extension token, or "" when there is none.
func Language(ext string) string {
	if ext == NoExt || ext == "" || ext == "." {
		return ""
	}
	lexer := matchLexer("file" + ext)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
