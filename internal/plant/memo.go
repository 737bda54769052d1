package plant

// memo caches the value derived from the last key it was asked for.
// A different key rebuilds; the same key never does.
type memo[K comparable, V any] struct {
	key    K
	val    V
	valid  bool
	builds int
}

func (m *memo[K, V]) get(key K, build func() V) V {
	if m.valid && m.key == key {
		return m.val
	}
	m.key, m.val, m.valid = key, build(), true
	m.builds++
	return m.val
}

func (m *memo[K, V]) reset() {
	var zero V
	m.val, m.valid = zero, false
}
