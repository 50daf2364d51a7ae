package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/lodestone"
	main "github.com/fwojciec/lodestone/cmd/lodestone"
	"github.com/fwojciec/lodestone/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("validates all listed sets", func(t *testing.T) {
		t.Parallel()

		defs := &mock.DefinitionSource{
			ListFn: func(_ context.Context) ([]string, error) {
				return []string{"character", "freecompany"}, nil
			},
			DefinitionsFn: func(_ context.Context, name string) (lodestone.DefinitionSet, error) {
				return lodestone.DefinitionSet{"NAME": {Selector: ".name"}}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			Definitions: defs,
		}

		err := (&main.ValidateCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "character: ok (1 fields)")
		assert.Contains(t, stdout.String(), "freecompany: ok (1 fields)")
	})

	t.Run("reports invalid sets and fails", func(t *testing.T) {
		t.Parallel()

		defs := &mock.DefinitionSource{
			DefinitionsFn: func(_ context.Context, name string) (lodestone.DefinitionSet, error) {
				if name == "character" {
					return nil, lodestone.Errorf(lodestone.EPATTERN, "field LEVEL: invalid pattern")
				}
				return lodestone.DefinitionSet{}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			Definitions: defs,
		}

		err := (&main.ValidateCmd{Names: []string{"character", "linkshell"}}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2")
		assert.Contains(t, stdout.String(), "character: field LEVEL: invalid pattern (pattern)")
		assert.Contains(t, stdout.String(), "linkshell: ok (0 fields)")
	})

	t.Run("shows message when no sets exist", func(t *testing.T) {
		t.Parallel()

		defs := &mock.DefinitionSource{
			ListFn: func(_ context.Context) ([]string, error) {
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			Definitions: defs,
		}

		err := (&main.ValidateCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No definition sets found.")
	})
}
