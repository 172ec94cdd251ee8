package patch_test

import (
	"encoding/json"
	"testing"

	"hirehub-backend/pkg/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTriState(t *testing.T) {
	type payload struct {
		Title  patch.Field[string]  `json:"title"`
		Salary patch.Field[float64] `json:"salary"`
	}

	t.Run("absent key stays unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))

		assert.False(t, p.Title.Set)
		assert.False(t, p.Title.HasValue())
		assert.Nil(t, p.Title.Ptr())
	})

	t.Run("explicit null is set but has no value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"salary": null}`), &p))

		assert.True(t, p.Salary.Set)
		assert.True(t, p.Salary.Null)
		assert.False(t, p.Salary.HasValue())
		assert.Nil(t, p.Salary.Ptr())
	})

	t.Run("value is set and carried", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"title": "Engineer", "salary": 90000}`), &p))

		assert.True(t, p.Title.HasValue())
		assert.Equal(t, "Engineer", p.Title.Value)
		require.NotNil(t, p.Salary.Ptr())
		assert.Equal(t, float64(90000), *p.Salary.Ptr())
	})

	t.Run("zero value is distinguishable from absent", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"title": ""}`), &p))

		assert.True(t, p.Title.Set)
		assert.True(t, p.Title.HasValue())
		assert.Equal(t, "", p.Title.Value)
	})

	t.Run("type mismatch fails the decode", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"salary": "a lot"}`), &p))
	})
}

func TestFieldPtrCopies(t *testing.T) {
	f := patch.Field[int]{Set: true, Value: 10}
	ptr := f.Ptr()
	*ptr = 99
	assert.Equal(t, 10, f.Value)
}
