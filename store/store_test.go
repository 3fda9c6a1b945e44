package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInteger(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"0", true},
		{"42", true},
		{"-17", true},
		{"+5", true},
		{"007", true},
		{"2147483647", true},
		{"-2147483648", true},
		{"2147483648", false},
		{"-2147483649", false},
		{"", false},
		{" 5", false},
		{"5 ", false},
		{"+", false},
		{"-", false},
		{"1_000", false},
		{"0x10", false},
		{"3.0", false},
		{"abc", false},
		{"5a", false},
	}

	for _, tc := range cases {
		t.Run("value "+tc.value, func(t *testing.T) {
			assert.Equal(t, tc.want, IsInteger(tc.value))
		})
	}
}

func TestStore_GetSet(t *testing.T) {
	t.Run("absent variable", func(t *testing.T) {
		s := New()
		_, ok := s.Get("x")
		assert.False(t, ok)
	})

	t.Run("set then overwrite", func(t *testing.T) {
		s := New()
		s.Set("x", "5")
		s.Set("x", "hello")

		value, ok := s.Get("x")
		require.True(t, ok)
		assert.Equal(t, "hello", value)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("names are case sensitive", func(t *testing.T) {
		s := New()
		s.Set("x", "1")
		s.Set("X", "2")

		assert.Equal(t, []string{"X", "x"}, s.Names())
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		s := New()
		s.Set("a", "1")
		snap := s.Snapshot()
		snap["a"] = "changed"

		value, _ := s.Get("a")
		assert.Equal(t, "1", value)
	})
}

func TestFormatInteger(t *testing.T) {
	n, ok := ParseInteger("+12")
	require.True(t, ok)
	assert.Equal(t, "12", FormatInteger(n))
	assert.Equal(t, "-2147483648", FormatInteger(-2147483648))
}
