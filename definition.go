package lodestone

import (
	"context"
	"regexp"
	"sort"
)

// Definition describes where and how to pull one value out of a page.
// Attribute and Regex are optional; the empty string means unset.
type Definition struct {
	Selector  string `json:"selector" yaml:"selector"`
	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Regex     string `json:"regex,omitempty" yaml:"regex,omitempty"`
}

// Validate returns an error if the definition cannot be used for extraction.
// An invalid Regex is reported as EPATTERN.
func (d Definition) Validate() error {
	if d.Selector == "" {
		return Errorf(EINVALID, "definition selector required")
	}
	if d.Regex != "" {
		if _, err := d.compile(); err != nil {
			return err
		}
	}
	return nil
}

func (d Definition) compile() (*regexp.Regexp, error) {
	re, err := regexp.Compile(d.Regex)
	if err != nil {
		return nil, Errorf(EPATTERN, "invalid pattern %q for selector %q: %v", d.Regex, d.Selector, err)
	}
	return re, nil
}

// DefinitionSet holds the named field definitions of one page type.
type DefinitionSet map[string]Definition

// Names returns the field names in sorted order.
func (s DefinitionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate validates every definition in name order and reports the first
// failure, keeping its error code.
func (s DefinitionSet) Validate() error {
	for _, name := range s.Names() {
		if err := s[name].Validate(); err != nil {
			return fieldError(name, err)
		}
	}
	return nil
}

// SelectorValidator checks the syntax of a CSS selector.
type SelectorValidator func(selector string) error

// ValidateSelectors runs check against every selector in name order and
// reports the first failure with its field name.
func (s DefinitionSet) ValidateSelectors(check SelectorValidator) error {
	for _, name := range s.Names() {
		if err := check(s[name].Selector); err != nil {
			return fieldError(name, err)
		}
	}
	return nil
}

func fieldError(name string, err error) error {
	return &Error{Code: ErrorCode(err), Message: "field " + name + ": " + ErrorMessage(err)}
}

// DefinitionSource loads definition sets by page type name.
type DefinitionSource interface {
	// Definitions returns the named definition set.
	// Returns ENOTFOUND if no such set exists.
	Definitions(ctx context.Context, name string) (DefinitionSet, error)

	// List returns the names of all available definition sets, sorted.
	List(ctx context.Context) ([]string, error)
}
