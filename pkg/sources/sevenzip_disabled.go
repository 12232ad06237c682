//go:build no7z

package sources

import (
	"context"

	"github.com/filetug/extcensus/pkg/census"
)

const (
	sevenZipAvailable = false
	sevenZipComponent = "7z decoder"
)

var _ Adapter = SevenZipAdapter{}

type SevenZipAdapter struct{}

func (SevenZipAdapter) List(context.Context, string) (*census.Node, error) {
	return nil, &CapabilityError{Kind: SevenZip, Component: sevenZipComponent}
}
