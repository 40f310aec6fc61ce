// Package loader reads named contract signatures from YAML documents,
// so contract sets can ship alongside configuration:
//
//	contracts:
//	  add: "(int, int -> int)"
//	  greet: "(string, maybe(string) -> string)"
package loader

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/covenant/covenant-go/contract"
	"github.com/covenant/covenant-go/dsl"
)

// File is the YAML document shape.
type File struct {
	Contracts map[string]string `yaml:"contracts"`
}

// Set is a named registry of parsed contracts.
type Set map[string]*contract.Contract

// Load parses a YAML document of named signatures.
func Load(r io.Reader, opts ...contract.Option) (Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading contract set: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing contract set: %w", err)
	}

	set := make(Set, len(file.Contracts))
	for name, signature := range file.Contracts {
		c, err := dsl.Parse(signature, opts...)
		if err != nil {
			return nil, fmt.Errorf("contract %q: %w", name, err)
		}
		set[name] = c
	}
	return set, nil
}

// LoadFile is Load over a file path.
func LoadFile(path string, opts ...contract.Option) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening contract set: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

// Get returns the named contract or an error naming the known set.
func (s Set) Get(name string) (*contract.Contract, error) {
	c, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("unknown contract %q", name)
	}
	return c, nil
}
