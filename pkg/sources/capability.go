package sources

import "maps"

// Capability describes an optional decoder.
type Capability struct {
	Kind      Kind
	Available bool
	// Component is the library that implements the decoder.
	Component string
	// Hint is shown to the user when the decoder is missing.
	Hint string
}

// Registry maps a container kind to its capability.
// Kinds without an entry are always available.
type Registry map[Kind]Capability

func (r Registry) Available(kind Kind) bool {
	c, ok := r[kind]
	return !ok || c.Available
}

func (r Registry) Hint(kind Kind) string {
	return r[kind].Hint
}

var capabilities = Registry{
	SevenZip: {
		Kind:      SevenZip,
		Available: sevenZipAvailable,
		Component: sevenZipComponent,
		Hint:      "Build without the no7z tag to inspect inside this 7z archive.",
	},
	Rar: {
		Kind:      Rar,
		Available: rarAvailable,
		Component: rarComponent,
		Hint:      "Build without the norar tag to inspect inside this RAR archive.",
	},
}

// Capabilities returns the decoders this binary was built with.
func Capabilities() Registry {
	return maps.Clone(capabilities)
}
