package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelector_Resolve(t *testing.T) {
	t.Run("full is the default", func(t *testing.T) {
		s := NewSelector(0)

		assert.Equal(t, ModeFull, s.Resolve(0))
		assert.Equal(t, ModeFull, s.Resolve(100))
	})

	t.Run("auto-switches past the threshold", func(t *testing.T) {
		s := NewSelector(100)

		assert.Equal(t, ModeFull, s.Resolve(100))
		assert.Equal(t, ModePaginated, s.Resolve(101))
	})

	t.Run("growth across the threshold switches on the next resolve", func(t *testing.T) {
		// A transcript grows from 80 to 101 items while displayed in full
		// mode with no manual override.
		s := NewSelector(100)

		assert.Equal(t, ModeFull, s.Resolve(80))
		assert.False(t, s.OverrideVisible(80))

		assert.Equal(t, ModePaginated, s.Resolve(101))
		assert.True(t, s.OverrideVisible(101), "manual override control must appear with the switch")
	})

	t.Run("virtualized is never auto-selected", func(t *testing.T) {
		s := NewSelector(100)

		for _, n := range []int{0, 50, 100, 101, 10_000} {
			assert.NotEqual(t, ModeVirtualized, s.Resolve(n))
		}
	})
}

func TestSelector_Override(t *testing.T) {
	t.Run("user can pin full past the threshold", func(t *testing.T) {
		s := NewSelector(100)
		s.SetOverride(ModeFull)

		assert.Equal(t, ModeFull, s.Resolve(5000))
		assert.True(t, s.Overridden())
	})

	t.Run("user can opt in to virtualized", func(t *testing.T) {
		s := NewSelector(100)
		s.SetOverride(ModeVirtualized)

		assert.Equal(t, ModeVirtualized, s.Resolve(10))
	})

	t.Run("clearing returns to automatic", func(t *testing.T) {
		s := NewSelector(100)
		s.SetOverride(ModeFull)
		s.ClearOverride()

		assert.False(t, s.Overridden())
		assert.Equal(t, ModePaginated, s.Resolve(101))
	})
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "full", ModeFull.String())
	assert.Equal(t, "paginated", ModePaginated.String())
	assert.Equal(t, "virtualized", ModeVirtualized.String())
}
