package meibo

import "math/bits"

// bitmask128 represents a set of up to 128 component IDs. It is the canonical
// identity of an archetype. Each bit corresponds to a component ID, and if the
// bit is set, it indicates that the component is present in the archetype.
type bitmask128 [2]uint64

// set enables the bit corresponding to the given component ID.
func (m *bitmask128) set(bit uint8) {
	i := bit >> 6 // (bit / 64) to find the uint64 index
	o := bit & 63 // (bit % 64) to find the bit offset
	m[i] |= uint64(1) << uint64(o)
}

// unset disables the bit corresponding to the given component ID.
func (m *bitmask128) unset(bit uint8) {
	i := bit >> 6
	o := bit & 63
	m[i] &= ^(uint64(1) << uint64(o))
}

// contains checks if all the bits set in the `sub` bitmask are also set in the
// receiver bitmask `m`. This is used to determine if an archetype's component
// set is a superset of a query's required components.
//
// Parameters:
//   - sub: The bitmask representing the subset of components to check for.
//
// Returns:
//   - true if the receiver contains all components from the subset, false otherwise.
func (m bitmask128) contains(sub bitmask128) bool {
	return (m[0]&sub[0]) == sub[0] &&
		(m[1]&sub[1]) == sub[1]
}

// containsBit checks if a specific bit is set in the mask.
func (m bitmask128) containsBit(bit uint8) bool {
	i := bit >> 6
	o := bit & 63
	return (m[i] & (uint64(1) << uint64(o))) != 0
}

// intersects checks if this bitmask has any bits in common with another bitmask.
func (m bitmask128) intersects(other bitmask128) bool {
	return (m[0]&other[0] != 0) ||
		(m[1]&other[1] != 0)
}

// isZero returns true if no bits are set.
func (m bitmask128) isZero() bool {
	return m[0] == 0 && m[1] == 0
}

// count returns the number of bits set.
func (m bitmask128) count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1])
}

// orMask performs a bitwise OR between two masks.
func orMask(m1, m2 bitmask128) bitmask128 {
	return bitmask128{m1[0] | m2[0], m1[1] | m2[1]}
}

// makeMask creates a mask from a slice of component IDs.
func makeMask(ids []ComponentID) bitmask128 {
	var m bitmask128
	for _, id := range ids {
		m.set(uint8(id))
	}
	return m
}

// eachBit calls fn for every set bit, in ascending component-ID order.
func (m bitmask128) eachBit(fn func(id ComponentID)) {
	for w := 0; w < maskWords; w++ {
		word := m[w]
		for word != 0 {
			o := bits.TrailingZeros64(word)
			fn(ComponentID(w*bitsPerWord + o))
			word &= word - 1
		}
	}
}
