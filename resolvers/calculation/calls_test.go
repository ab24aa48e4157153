package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		formula string
		want    []string
	}{
		{name: "tokens", formula: "{{a}} + {{ b }} * {{a}}", want: []string{"a", "b"}},
		{name: "bare ids inside builtins", formula: "SUM(a, b, 2) + {{c}}", want: []string{"c", "a", "b"}},
		{name: "nested calls", formula: "ROUND(AVG(x, {{y}}) * 2, 1)", want: []string{"y", "x"}},
		{name: "builtin names are not fields", formula: "MAX(SUM(a), 3)", want: []string{"a"}},
		{name: "no references", formula: "1 + 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, References(tt.formula))
		})
	}
}

func TestNextCall(t *testing.T) {
	t.Parallel()

	t.Run("finds first builtin", func(t *testing.T) {
		c, ok, err := nextCall("1 + sum({{a}}, MAX(b, 2)) * 3", 0)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "SUM", c.name)
		assert.Equal(t, []string{"{{a}}", "MAX(b, 2)"}, c.args)
		assert.Equal(t, 4, c.start)
	})

	t.Run("ignores identifiers that merely end in a builtin name", func(t *testing.T) {
		_, ok, err := nextCall("checksum(1)", 0)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("builtin without parenthesis", func(t *testing.T) {
		_, ok, err := nextCall("{{count}} + 1", 0)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unbalanced", func(t *testing.T) {
		_, _, err := nextCall("SUM(1, (2)", 0)
		require.ErrorIs(t, err, ErrUnbalancedCall)
	})

	t.Run("empty argument list", func(t *testing.T) {
		c, ok, err := nextCall("COUNT()", 0)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Empty(t, c.args)
	})
}

func TestExpander_Builtins(t *testing.T) {
	t.Parallel()

	ctx := map[string]float64{"a": 2, "b": 8, "neg": -4}

	tests := []struct {
		name    string
		formula string
		want    float64
	}{
		{name: "sum skips missing", formula: "SUM(a, b, missing)", want: 10},
		{name: "avg of present values", formula: "AVG(a, b, missing)", want: 5},
		{name: "count", formula: "COUNT(a, missing, b)", want: 2},
		{name: "empty sum", formula: "SUM(missing)", want: 0},
		{name: "min max", formula: "MAX(a, b) - MIN(a, b)", want: 6},
		{name: "if equality", formula: "IF(a == 2, 10, 20)", want: 10},
		{name: "if inequality", formula: "IF({{b}} != 8, 10, 20)", want: 20},
		{name: "if truthy", formula: "IF({{a}} - 2, 1, 0)", want: 0},
		{name: "if nested in condition", formula: "IF(SUM(a, b) > 9, 1, 0)", want: 1},
		{name: "round half up", formula: "ROUND(2.5) + ROUND(0 - 2.5)", want: 1},
		{name: "round digits", formula: "ROUND(3.14159, 3)", want: 3.142},
		{name: "abs negative context", formula: "ABS(neg) + {{neg}}", want: 0},
		{name: "sqrt", formula: "SQRT({{b}} * 2)", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &expander{context: ctx}
			got, err := e.evaluate(tt.formula)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestExpander_TracksMissingTokens(t *testing.T) {
	t.Parallel()

	e := &expander{context: map[string]float64{"a": 1}}
	got, err := e.evaluate("{{a}} + {{x}} + {{x}} + {{y}}")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
	assert.Equal(t, []string{"x", "y"}, e.missing)
}
