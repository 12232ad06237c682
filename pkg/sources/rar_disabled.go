//go:build norar

package sources

import (
	"context"

	"github.com/filetug/extcensus/pkg/census"
)

const (
	rarAvailable = false
	rarComponent = "rar decoder"
)

var _ Adapter = RarAdapter{}

type RarAdapter struct{}

func (RarAdapter) List(context.Context, string) (*census.Node, error) {
	return nil, &CapabilityError{Kind: Rar, Component: rarComponent}
}
