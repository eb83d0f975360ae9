package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

// ErrNoSpecs is returned for a spec file that lists nothing to patch.
var ErrNoSpecs = errors.New("spec file lists no functions")

// SpecStore loads the list of functions to guard.
type SpecStore interface {
	LoadSpecs(path m.Path) ([]m.PatchSpec, error)
}

type specFile struct {
	Specs []m.PatchSpec `yaml:"specs"`
}

type yamlSpecStore struct{}

// NewSpecStore constructs a SpecStore reading YAML files.
func NewSpecStore() SpecStore {
	return &yamlSpecStore{}
}

// LoadSpecs decodes path strictly: unknown keys are errors so that a typo
// such as `scope_parm` does not silently produce an unresolvable spec.
// Individual specs are validated later by the engine and reported per spec.
func (s *yamlSpecStore) LoadSpecs(path m.Path) ([]m.PatchSpec, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file specFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoSpecs)
		}

		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if len(file.Specs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSpecs)
	}

	return file.Specs, nil
}
