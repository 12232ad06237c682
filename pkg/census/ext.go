package census

import "strings"

// NoExt is the token used for names without an extension.
const NoExt = "<noext>"

// ExtOf returns the lowercased extension of name including the leading dot.
// Leading dots do not start an extension, so ".bashrc" has none.
// Only the part after the last slash or backslash is considered.
func ExtOf(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return NoExt
	}
	if strings.TrimLeft(name[:dot], ".") == "" {
		return NoExt
	}
	return strings.ToLower(name[dot:])
}

// DisplayExt strips the leading dot for presentation.
func DisplayExt(ext string) string {
	if ext == "." {
		return ext
	}
	return strings.TrimPrefix(ext, ".")
}
