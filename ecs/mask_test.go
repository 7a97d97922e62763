package ecs_test

import (
	"testing"

	"github.com/plus3/maskecs/ecs"
	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	t.Run("set clear has", func(t *testing.T) {
		var m ecs.Mask
		assert.True(t, m.Empty())

		m.Set(3)
		m.Set(64)
		m.Set(127)
		assert.True(t, m.Has(3))
		assert.True(t, m.Has(64))
		assert.True(t, m.Has(127))
		assert.False(t, m.Has(4))
		assert.False(t, m.Has(500))
		assert.Equal(t, 3, m.Count())

		m.Clear(64)
		assert.False(t, m.Has(64))
		assert.Equal(t, []ecs.TypeId{3, 127}, m.Ids())

		m.Reset()
		assert.True(t, m.Empty())
	})

	t.Run("set operations", func(t *testing.T) {
		a := ecs.MaskOf(1, 2, 3)
		b := ecs.MaskOf(2, 3, 70)

		assert.Equal(t, ecs.MaskOf(1, 2, 3, 70), a.Or(b))
		assert.Equal(t, ecs.MaskOf(2, 3), a.And(b))
		assert.Equal(t, ecs.MaskOf(1), a.AndNot(b))
		assert.Equal(t, ecs.MaskOf(70), b.AndNot(a))
		assert.True(t, a.Intersects(b))
		assert.False(t, ecs.MaskOf(1).Intersects(ecs.MaskOf(70)))
	})

	t.Run("contains", func(t *testing.T) {
		entity := ecs.MaskOf(0, 1, 5)

		assert.True(t, entity.Contains(ecs.MaskOf(0, 5)))
		assert.True(t, entity.Contains(ecs.Mask{}))
		assert.False(t, entity.Contains(ecs.MaskOf(0, 2)))
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "{}", ecs.Mask{}.String())
		assert.Equal(t, "{1,3,100}", ecs.MaskOf(3, 1, 100).String())
	})

	t.Run("out of range ids panic", func(t *testing.T) {
		var m ecs.Mask
		assert.Panics(t, func() { m.Set(128) })
	})
}
