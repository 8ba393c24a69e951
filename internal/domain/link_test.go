package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkStrengthOrDefault(t *testing.T) {
	t.Run("missing strength uses default", func(t *testing.T) {
		l := Link{Source: "a", Target: "b"}
		assert.Equal(t, DefaultStrength, l.StrengthOrDefault())
	})

	t.Run("explicit strength is returned", func(t *testing.T) {
		l := NewLink("a", "b", 0.9)
		assert.Equal(t, 0.9, l.StrengthOrDefault())
		assert.Equal(t, "DERIVES_FROM", l.Type)
	})

	t.Run("zero strength is not replaced", func(t *testing.T) {
		l := NewLink("a", "b", 0)
		assert.Equal(t, 0.0, l.StrengthOrDefault())
	})
}
