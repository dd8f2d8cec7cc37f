package meibo

// maskTrie is a bitwise trie over archetype masks. The path from the root
// encodes the mask bits from the most significant (bit 127) down to the least
// significant (bit 0), so every stored mask sits at a fixed depth of 128.
//
// The trie exists to answer one query efficiently: enumerate every stored
// mask K such that K&Q == Q, i.e. every archetype whose component set is a
// superset of the queried set. The walk prunes whole subtrees the moment a
// required bit is absent, so archetypes that can never match are skipped
// without inspection.
type maskTrie struct {
	root *trieNode
	size int
}

// trieNode is an interior node; children[0] continues with the current bit
// cleared, children[1] with it set.
type trieNode struct {
	children [2]*trieNode
}

// maskBits is the fixed depth of every stored key.
const maskBits = maskWords * bitsPerWord

// bitAtDepth extracts the bit a trie node at the given depth branches on.
// Depth 0 is the most significant bit.
func bitAtDepth(m bitmask128, depth int) int {
	bit := maskBits - 1 - depth
	i := bit >> 6
	o := bit & 63
	return int((m[i] >> uint(o)) & 1)
}

// insert adds a mask to the trie. It returns true if the mask was not
// already present.
func (t *maskTrie) insert(m bitmask128) bool {
	if t.root == nil {
		t.root = &trieNode{}
	}
	node := t.root
	added := false
	for depth := 0; depth < maskBits; depth++ {
		b := bitAtDepth(m, depth)
		if node.children[b] == nil {
			node.children[b] = &trieNode{}
			added = true
		}
		node = node.children[b]
	}
	if added {
		t.size++
	}
	return added
}

// contains reports whether the mask is stored in the trie.
func (t *maskTrie) contains(m bitmask128) bool {
	node := t.root
	if node == nil {
		return false
	}
	for depth := 0; depth < maskBits; depth++ {
		node = node.children[bitAtDepth(m, depth)]
		if node == nil {
			return false
		}
	}
	return true
}

// len returns the number of stored masks.
func (t *maskTrie) len() int {
	return t.size
}

// trieFrame is one pending subtree of a superset walk.
type trieFrame struct {
	node   *trieNode
	prefix bitmask128 // bits decided so far
	depth  int
}

// supersetIter lazily enumerates the masks stored in a trie that are
// supersets of a query mask. Each matching mask is yielded exactly once, in
// depth-first trie order, which is deterministic for a fixed trie.
type supersetIter struct {
	query bitmask128
	cur   bitmask128
	stack []trieFrame
}

// supersetsOf returns an iterator over all stored masks K with K&q == q.
// A zero query matches every stored mask.
func (t *maskTrie) supersetsOf(q bitmask128) supersetIter {
	it := supersetIter{query: q}
	if t.root != nil {
		it.stack = append(it.stack, trieFrame{node: t.root})
	}
	return it
}

// next advances the iterator to the next matching mask. It returns false when
// the walk is exhausted.
//
// At every depth, if the query requires the bit, only the one-subtree can
// still produce a superset; otherwise both subtrees are walked. The
// zero-subtree is pushed last so it is visited first, yielding masks in
// ascending depth-first order.
func (it *supersetIter) next() bool {
	for len(it.stack) > 0 {
		top := len(it.stack) - 1
		frame := it.stack[top]
		it.stack = it.stack[:top]

		if frame.depth == maskBits {
			it.cur = frame.prefix
			return true
		}

		b := bitAtDepth(it.query, frame.depth)
		if one := frame.node.children[1]; one != nil {
			prefix := frame.prefix
			prefix.set(uint8(maskBits - 1 - frame.depth))
			it.stack = append(it.stack, trieFrame{node: one, prefix: prefix, depth: frame.depth + 1})
		}
		if b == 0 {
			if zero := frame.node.children[0]; zero != nil {
				it.stack = append(it.stack, trieFrame{node: zero, prefix: frame.prefix, depth: frame.depth + 1})
			}
		}
	}
	return false
}

// mask returns the mask the iterator currently points at. Only valid after
// next has returned true.
func (it *supersetIter) mask() bitmask128 {
	return it.cur
}
