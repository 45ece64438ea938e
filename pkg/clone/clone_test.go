package clone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_DeepCopiesNestedStructures(t *testing.T) {
	original := map[string]interface{}{
		"host":   "localhost",
		"limits": []interface{}{1, 2, 3},
		"nested": map[string]interface{}{"a": "b"},
	}

	copied := Value(original).(map[string]interface{})

	// Mutating either side leaves the other untouched
	original["host"] = "changed"
	original["nested"].(map[string]interface{})["a"] = "changed"
	copied["limits"].([]interface{})[0] = 99

	assert.Equal(t, "localhost", copied["host"])
	assert.Equal(t, "b", copied["nested"].(map[string]interface{})["a"])
	assert.Equal(t, 1, original["limits"].([]interface{})[0])
}

func TestValue_ScalarsPassThrough(t *testing.T) {
	assert.Equal(t, 42, Value(42))
	assert.Equal(t, "s", Value("s"))
	assert.Nil(t, Value(nil))
}

func TestValue_UncopyableFallsBackToOriginal(t *testing.T) {
	ch := make(chan int)
	got := Value(ch)
	assert.Equal(t, ch, got, "uncopyable values are returned as-is")
}

func TestCopy_ReportsErrors(t *testing.T) {
	out, err := Copy(map[string]interface{}{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, 1, out.(map[string]interface{})["n"])
}
