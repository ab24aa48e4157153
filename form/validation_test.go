package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporter(t *testing.T) {
	t.Parallel()

	t.Run("empty reporter is valid", func(t *testing.T) {
		var r Reporter
		res := r.Result()
		assert.True(t, res.IsValid)
		assert.NotNil(t, res.Errors)
		assert.NotNil(t, res.Warnings)
	})

	t.Run("warnings do not block", func(t *testing.T) {
		var r Reporter
		r.Warnf("a", CodeForwardReference, "references %q", "b")
		res := r.Result()
		assert.True(t, res.IsValid)
		assert.Equal(t, `references "b"`, res.Warnings[0].Message)
		assert.True(t, res.HasCode(CodeForwardReference))
	})

	t.Run("errors block", func(t *testing.T) {
		var r Reporter
		r.Errorf("a", CodeSelfReference, "self")
		res := r.Result()
		assert.False(t, res.IsValid)
		assert.Equal(t, "a: [self_reference] self", res.Errors[0].String())
	})
}

func TestMerge(t *testing.T) {
	t.Parallel()

	var a, b Reporter
	a.Warnf("x", CodeDualConfig, "dual")
	b.Errorf("y", CodeUnknownField, "unknown")

	merged := Merge(a.Result(), b.Result())
	assert.False(t, merged.IsValid)
	assert.Len(t, merged.Errors, 1)
	assert.Len(t, merged.Warnings, 1)
	assert.False(t, merged.HasCode(CodeSelfReference))
}
