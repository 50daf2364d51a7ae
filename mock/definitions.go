package mock

import (
	"context"

	"github.com/fwojciec/lodestone"
)

var _ lodestone.DefinitionSource = (*DefinitionSource)(nil)

// DefinitionSource is a mock implementation of lodestone.DefinitionSource.
type DefinitionSource struct {
	DefinitionsFn func(ctx context.Context, name string) (lodestone.DefinitionSet, error)
	ListFn        func(ctx context.Context) ([]string, error)
}

func (s *DefinitionSource) Definitions(ctx context.Context, name string) (lodestone.DefinitionSet, error) {
	return s.DefinitionsFn(ctx, name)
}

func (s *DefinitionSource) List(ctx context.Context) ([]string, error) {
	return s.ListFn(ctx)
}
