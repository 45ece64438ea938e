package registry

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/dshills/alma/pkg/validate"
	"github.com/dshills/alma/pkg/watch"
)

// Manifest declares a set of watched variables in YAML, so an application
// can set up its tracked state from a file instead of code:
//
//	version: "1"
//	variables:
//	  - name: score
//	    initial: 0
//	    type: number
//	    expression: "value >= 0"
//	  - name: config
//	    initial: {host: localhost, port: 8080}
//	    required_paths: [host, port]
//	    frozen: true
type Manifest struct {
	Version   string             `yaml:"version,omitempty"`
	Variables []ManifestVariable `yaml:"variables"`
}

// ManifestVariable declares one watched variable.
type ManifestVariable struct {
	Name    string      `yaml:"name"`
	Initial interface{} `yaml:"initial"`

	// DeepCopy defaults to true when omitted.
	DeepCopy *bool `yaml:"deep_copy,omitempty"`

	// Frozen creates the variable already frozen.
	Frozen bool `yaml:"frozen,omitempty"`

	// Overwrite replaces an existing registration instead of failing.
	Overwrite bool `yaml:"overwrite,omitempty"`

	// Validator specifications; any combination may be present.
	Type          string   `yaml:"type,omitempty"`
	Expression    string   `yaml:"expression,omitempty"`
	Schema        string   `yaml:"schema,omitempty"`
	RequiredPaths []string `yaml:"required_paths,omitempty"`
}

// validNameRegex matches valid variable names (must start with a letter,
// contain only alphanumerics and underscores).
var validNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// ParseManifest parses YAML bytes into a validated Manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return nil, errors.New("manifest: empty input")
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: failed to parse YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 - caller-controlled manifest path
	if err != nil {
		return nil, fmt.Errorf("manifest: failed to read file: %w", err)
	}
	return ParseManifest(data)
}

// Validate checks structural rules: at least one variable, valid unique
// names, and compilable validator specifications.
func (m *Manifest) Validate() error {
	if len(m.Variables) == 0 {
		return errors.New("manifest: no variables declared")
	}
	seen := make(map[string]bool, len(m.Variables))
	for i := range m.Variables {
		mv := &m.Variables[i]
		if mv.Name == "" {
			return fmt.Errorf("manifest: variable %d: empty name", i)
		}
		if !validNameRegex.MatchString(mv.Name) {
			return fmt.Errorf("manifest: invalid variable name format: %s (must start with letter, contain only alphanumeric and underscore)", mv.Name)
		}
		if seen[mv.Name] {
			return fmt.Errorf("manifest: duplicate variable name: %s", mv.Name)
		}
		seen[mv.Name] = true
		if _, err := mv.validators(); err != nil {
			return fmt.Errorf("manifest: variable %q: %w", mv.Name, err)
		}
	}
	return nil
}

// Apply registers every declared variable with r. Variables are applied in
// declaration order; the first failure aborts and is returned, leaving
// earlier registrations in place.
func (m *Manifest) Apply(r *Registry) error {
	for i := range m.Variables {
		mv := &m.Variables[i]
		if err := mv.apply(r); err != nil {
			return err
		}
	}
	return nil
}

// apply registers a single declared variable.
func (mv *ManifestVariable) apply(r *Registry) error {
	vs, err := mv.validators()
	if err != nil {
		return fmt.Errorf("manifest: variable %q: %w", mv.Name, err)
	}

	opts := make([]watch.Option, 0, 2)
	if len(vs) > 0 {
		opts = append(opts, watch.WithValidators(vs...))
	}
	if mv.DeepCopy != nil {
		opts = append(opts, watch.WithDeepCopy(*mv.DeepCopy))
	}

	var v *watch.Var
	if mv.Overwrite {
		v = r.Replace(mv.Name, mv.Initial, opts...)
	} else {
		v, err = r.Watch(mv.Name, mv.Initial, opts...)
		if err != nil {
			return err
		}
	}
	if mv.Frozen {
		v.Freeze()
	}
	return nil
}

// validators compiles the declared validator specifications.
func (mv *ManifestVariable) validators() ([]watch.Validator, error) {
	var vs []watch.Validator
	if mv.Type != "" {
		tv, err := validate.TypeOf(mv.Type)
		if err != nil {
			return nil, err
		}
		vs = append(vs, tv)
	}
	if mv.Expression != "" {
		ev, err := validate.Expression(mv.Expression)
		if err != nil {
			return nil, err
		}
		vs = append(vs, ev)
	}
	if mv.Schema != "" {
		sv, err := validate.Schema([]byte(mv.Schema))
		if err != nil {
			return nil, err
		}
		vs = append(vs, sv)
	}
	if len(mv.RequiredPaths) > 0 {
		vs = append(vs, validate.RequiredPaths(mv.RequiredPaths...))
	}
	return vs, nil
}
