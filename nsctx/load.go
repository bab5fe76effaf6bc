package nsctx

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrNoNamespaces indicates a namespace file with no namespaces section.
var ErrNoNamespaces = errors.New("namespace file has no namespaces")

// namespaceFile is the on-disk YAML layout: an ordered binding list, so a
// file round-trips to the same context order.
type namespaceFile struct {
	Namespaces []Binding `yaml:"namespaces"`
}

// Load reads a namespace context from a YAML file of the form:
//
//	namespaces:
//	  - prefix: t
//	    uri: http://example.com/schema/1.2/config
//	  - prefix: ""
//	    uri: urn:example:default
func Load(path string) (*Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read namespace file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a namespace context from YAML bytes.
func Parse(data []byte) (*Context, error) {
	var f namespaceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse namespace file: %w", err)
	}

	if len(f.Namespaces) == 0 {
		return nil, ErrNoNamespaces
	}

	c := New()
	for _, b := range f.Namespaces {
		c.Set(b.Prefix, b.URI)
	}

	return c, nil
}
