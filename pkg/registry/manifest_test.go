package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/alma/pkg/watch"
)

const manifestYAML = `
version: "1"
variables:
  - name: score
    initial: 0
    type: number
    expression: "value >= 0"
  - name: config
    initial:
      host: localhost
      port: 8080
    required_paths: [host, port]
  - name: release_tag
    initial: "v1.0.0"
    frozen: true
  - name: raw_buffer
    initial: [1, 2, 3]
    deep_copy: false
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(manifestYAML))
	require.NoError(t, err)
	assert.Equal(t, "1", m.Version)
	require.Len(t, m.Variables, 4)
	assert.Equal(t, "score", m.Variables[0].Name)
	assert.Equal(t, "number", m.Variables[0].Type)
	require.NotNil(t, m.Variables[3].DeepCopy)
	assert.False(t, *m.Variables[3].DeepCopy)
}

func TestManifest_Apply(t *testing.T) {
	m, err := ParseManifest([]byte(manifestYAML))
	require.NoError(t, err)

	r := New()
	require.NoError(t, m.Apply(r))
	assert.Equal(t, 4, r.Len())

	// Declared validators are live
	score, err := r.Get("score")
	require.NoError(t, err)
	require.NoError(t, score.Set(10))
	var verr *watch.ValidationError
	require.ErrorAs(t, score.Set(-1), &verr)
	require.ErrorAs(t, score.Set("ten"), &verr)

	cfg, err := r.Get("config")
	require.NoError(t, err)
	require.ErrorAs(t, cfg.Set(map[string]interface{}{"host": "x"}), &verr,
		"partial config documents are rejected")
	require.NoError(t, cfg.Set(map[string]interface{}{"host": "x", "port": 1}))

	// Frozen variables come up frozen
	tag, err := r.Get("release_tag")
	require.NoError(t, err)
	assert.True(t, tag.IsFrozen())
	var ferr *watch.FrozenError
	require.ErrorAs(t, tag.Set("v2.0.0"), &ferr)
	assert.Equal(t, "v1.0.0", tag.Get())
}

func TestManifest_ApplyDuplicate(t *testing.T) {
	m, err := ParseManifest([]byte(manifestYAML))
	require.NoError(t, err)

	r := New()
	_, err = r.Watch("score", 99)
	require.NoError(t, err)

	err = m.Apply(r)
	var derr *DuplicateNameError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "score", derr.Name)
}

func TestManifest_ApplyOverwrite(t *testing.T) {
	m, err := ParseManifest([]byte(`
variables:
  - name: score
    initial: 5
    overwrite: true
`))
	require.NoError(t, err)

	r := New()
	_, err = r.Watch("score", 99)
	require.NoError(t, err)

	require.NoError(t, m.Apply(r))
	v, err := r.Get("score")
	require.NoError(t, err)
	assert.Equal(t, 5, v.Get())
	assert.Equal(t, 1, v.Len())
}

func TestManifest_SchemaValidator(t *testing.T) {
	m, err := ParseManifest([]byte(`
variables:
  - name: limits
    initial: {cpu: 2}
    schema: '{"type": "object", "required": ["cpu"], "properties": {"cpu": {"type": "integer"}}}'
`))
	require.NoError(t, err)

	r := New()
	require.NoError(t, m.Apply(r))

	v, err := r.Get("limits")
	require.NoError(t, err)
	require.NoError(t, v.Set(map[string]interface{}{"cpu": 4}))

	var verr *watch.ValidationError
	require.ErrorAs(t, v.Set(map[string]interface{}{"mem": 1}), &verr)
}

func TestParseManifest_Errors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty input", ""},
		{"no variables", "version: '1'\nvariables: []"},
		{"missing name", "variables:\n  - initial: 1"},
		{"bad name format", "variables:\n  - name: 9lives\n    initial: 1"},
		{"duplicate names", "variables:\n  - name: a\n    initial: 1\n  - name: a\n    initial: 2"},
		{"unknown type", "variables:\n  - name: a\n    initial: 1\n    type: tuple"},
		{"bad expression", "variables:\n  - name: a\n    initial: 1\n    expression: 'value >='"},
		{"bad schema", "variables:\n  - name: a\n    initial: 1\n    schema: '{\"type\": ['"},
		{"not yaml", "\t{nope"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifestYAML), 0o600))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Len(t, m.Variables, 4)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
