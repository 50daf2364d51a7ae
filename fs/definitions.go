// Package fs loads definition sets from a directory of JSON or YAML files.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/lodestone"
	"gopkg.in/yaml.v3"
)

// Ensure DefinitionStore implements lodestone.DefinitionSource at compile time.
var _ lodestone.DefinitionSource = (*DefinitionStore)(nil)

// extensions lists supported file extensions in lookup order.
var extensions = []string{".json", ".yaml", ".yml"}

// DefinitionStore reads definition sets from <dir>/<name>.{json,yaml,yml}.
// Every loaded set is validated before it is returned.
type DefinitionStore struct {
	dir           string
	checkSelector lodestone.SelectorValidator
}

// Option configures a DefinitionStore.
type Option func(*DefinitionStore)

// WithSelectorValidator checks every selector's syntax on load.
// Without it only selector presence is checked.
func WithSelectorValidator(check lodestone.SelectorValidator) Option {
	return func(s *DefinitionStore) {
		s.checkSelector = check
	}
}

// NewDefinitionStore creates a new DefinitionStore rooted at dir.
func NewDefinitionStore(dir string, opts ...Option) *DefinitionStore {
	s := &DefinitionStore{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Definitions loads and validates the named definition set.
func (s *DefinitionStore) Definitions(ctx context.Context, name string) (lodestone.DefinitionSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, lodestone.Errorf(lodestone.EINVALID, "invalid definitions name %q", name)
	}

	for _, ext := range extensions {
		path := filepath.Join(s.dir, name+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}

		set, err := decode(data, ext)
		if err != nil {
			return nil, lodestone.Errorf(lodestone.EINVALID, "failed to decode %s: %v", path, err)
		}
		if err := s.validate(set); err != nil {
			return nil, &lodestone.Error{
				Code:    lodestone.ErrorCode(err),
				Message: filepath.Base(path) + ": " + lodestone.ErrorMessage(err),
			}
		}
		return set, nil
	}

	return nil, lodestone.Errorf(lodestone.ENOTFOUND, "definitions %q not found in %s", name, s.dir)
}

// List returns the names of all definition files in the directory, sorted.
// A name present with several extensions is listed once.
func (s *DefinitionStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, lodestone.Errorf(lodestone.ENOTFOUND, "definitions directory %s not found", s.dir)
		}
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !isSupported(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *DefinitionStore) validate(set lodestone.DefinitionSet) error {
	if err := set.Validate(); err != nil {
		return err
	}
	if s.checkSelector != nil {
		return set.ValidateSelectors(s.checkSelector)
	}
	return nil
}

func decode(data []byte, ext string) (lodestone.DefinitionSet, error) {
	var set lodestone.DefinitionSet
	if ext == ".json" {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&set); err != nil {
			return nil, err
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&set); err != nil {
			return nil, err
		}
	}
	if set == nil {
		set = lodestone.DefinitionSet{}
	}
	return set, nil
}

func isSupported(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}
