package ecs

import (
	"fmt"
	"math/bits"
	"strings"
)

const maskBits = 128

// Mask is a fixed-size bitset over type ids. Entities use it to record which
// components they carry, systems use it for their requirement and states use
// it for the set of systems they need.
type Mask [maskBits / 64]uint64

func maskWord(id TypeId) (int, uint64) {
	if int(id) >= maskBits {
		panic(fmt.Sprintf("ecs: type id %d exceeds mask capacity %d", id, maskBits))
	}
	return int(id >> 6), uint64(1) << (id & 63)
}

// MaskOf builds a mask with the given ids set.
func MaskOf(ids ...TypeId) Mask {
	var m Mask
	for _, id := range ids {
		m.Set(id)
	}
	return m
}

// Set enables the bit for id.
func (m *Mask) Set(id TypeId) {
	i, b := maskWord(id)
	m[i] |= b
}

// Clear disables the bit for id.
func (m *Mask) Clear(id TypeId) {
	i, b := maskWord(id)
	m[i] &^= b
}

// Reset clears every bit.
func (m *Mask) Reset() {
	*m = Mask{}
}

// Has reports whether the bit for id is set.
func (m Mask) Has(id TypeId) bool {
	if int(id) >= maskBits {
		return false
	}
	i, b := maskWord(id)
	return m[i]&b != 0
}

// Contains reports whether every bit of sub is also set in m.
func (m Mask) Contains(sub Mask) bool {
	for i := range m {
		if m[i]&sub[i] != sub[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether m and other share at least one bit.
func (m Mask) Intersects(other Mask) bool {
	for i := range m {
		if m[i]&other[i] != 0 {
			return true
		}
	}
	return false
}

// Or returns the union of m and other.
func (m Mask) Or(other Mask) Mask {
	for i := range m {
		m[i] |= other[i]
	}
	return m
}

// And returns the intersection of m and other.
func (m Mask) And(other Mask) Mask {
	for i := range m {
		m[i] &= other[i]
	}
	return m
}

// AndNot returns the bits of m that are not in other.
func (m Mask) AndNot(other Mask) Mask {
	for i := range m {
		m[i] &^= other[i]
	}
	return m
}

// Empty reports whether no bit is set.
func (m Mask) Empty() bool {
	for _, w := range m {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (m Mask) Count() int {
	n := 0
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}

// ForEach calls fn for every set bit in ascending order.
func (m Mask) ForEach(fn func(id TypeId)) {
	for i, w := range m {
		for w != 0 {
			pos := bits.TrailingZeros64(w)
			fn(TypeId(i*64 + pos))
			w &^= uint64(1) << pos
		}
	}
}

// Ids returns the set bits in ascending order.
func (m Mask) Ids() []TypeId {
	ids := make([]TypeId, 0, m.Count())
	m.ForEach(func(id TypeId) {
		ids = append(ids, id)
	})
	return ids
}

func (m Mask) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	m.ForEach(func(id TypeId) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&sb, "%d", id)
	})
	sb.WriteByte('}')
	return sb.String()
}
