package divisions

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var referenceYAML []byte

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return ParseTable(referenceYAML)
})

// DefaultTable returns the embedded reference table, built on first use.
func DefaultTable() (*Table, error) {
	return defaultTable()
}

// Default returns a Classifier over the embedded reference table.
func Default() (*Classifier, error) {
	table, err := DefaultTable()
	if err != nil {
		return nil, err
	}
	return New(table), nil
}

// MustDefault is Default for callers that treat a broken embedded table as
// a programming error.
func MustDefault() *Classifier {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Classify classifies collegeName against the embedded reference table.
func Classify(collegeName string) Info {
	return MustDefault().Classify(collegeName)
}

// ParseTable decodes a YAML document mapping tier names to lists of
// institution names.
//
//	D1:
//	  - Duke University
//	NAIA:
//	  - Taylor University
func ParseTable(data []byte) (*Table, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("divisions: decode reference table: %w", err)
	}
	sets := make(map[Division][]string, len(raw))
	for key, names := range raw {
		sets[Division(key)] = names
	}
	return NewTable(sets)
}

// ReadTable parses a reference table from r.
func ReadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("divisions: read reference table: %w", err)
	}
	return ParseTable(data)
}

// LoadTable reads a reference table from path. An empty path yields the
// embedded table.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("divisions: open reference table: %w", err)
	}
	defer f.Close()
	return ReadTable(f)
}
