package collection

import (
	"sort"
	"strings"
)

// Pair is a single key/value entry of a collection.
type Pair struct {
	Key   Key
	Value any
}

// Collection is an ordered mapping from keys to values.
//
// Operations of the pipeline never modify a collection they receive, they build a new one.
// A nil *Collection behaves as an empty collection for every read accessor.
type Collection struct {
	keys    []Key
	values  map[Key]any
	nextIdx int
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{values: make(map[Key]any)}
}

// List creates a collection indexed from 0 holding values in order.
func List(values ...any) *Collection {
	return FromSlice(values)
}

// FromSlice creates a collection indexed from 0 holding the elements of values.
func FromSlice(values []any) *Collection {
	c := &Collection{
		keys:   make([]Key, 0, len(values)),
		values: make(map[Key]any, len(values)),
	}
	for _, v := range values {
		c.Append(v)
	}
	return c
}

// FromPairs creates a collection from ordered pairs. A repeated key keeps its first position and
// takes the last value.
func FromPairs(pairs ...Pair) *Collection {
	c := New()
	for _, p := range pairs {
		c.Set(p.Key, p.Value)
	}
	return c
}

// FromMap creates a collection from m. Go maps are unordered, so keys are inserted in sorted order.
func FromMap(m map[string]any) *Collection {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	c := New()
	for _, name := range names {
		c.Set(Str(name), m[name])
	}
	return c
}

// From converts v into a collection. It accepts *Collection, []any and map[string]any.
func From(v any) (*Collection, bool) {
	switch val := v.(type) {
	case *Collection:
		if val == nil {
			return nil, false
		}
		return val, true
	case []any:
		return FromSlice(val), true
	case map[string]any:
		return FromMap(val), true
	}
	return nil, false
}

// Set stores v under k. An existing key keeps its position.
func (c *Collection) Set(k Key, v any) {
	if c.values == nil {
		c.values = make(map[Key]any)
	}
	if _, ok := c.values[k]; !ok {
		c.keys = append(c.keys, k)
		if k.IsInt() && k.num >= c.nextIdx {
			c.nextIdx = k.num + 1
		}
	}
	c.values[k] = v
}

// Append stores v under the next free integer key: one past the largest integer key used so far,
// or 0.
func (c *Collection) Append(v any) {
	c.Set(Int(c.nextIdx), v)
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Get returns the value stored under k.
func (c *Collection) Get(k Key) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[k]
	return v, ok
}

// Has reports whether k is present.
func (c *Collection) Has(k Key) bool {
	_, ok := c.Get(k)
	return ok
}

// At returns the entry at position i in iteration order.
func (c *Collection) At(i int) Pair {
	k := c.keys[i]
	return Pair{Key: k, Value: c.values[k]}
}

// Keys returns a copy of the keys in order.
func (c *Collection) Keys() []Key {
	if c == nil {
		return []Key{}
	}
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out
}

// Values returns the values in order.
func (c *Collection) Values() []any {
	if c == nil {
		return []any{}
	}
	out := make([]any, len(c.keys))
	for i, k := range c.keys {
		out[i] = c.values[k]
	}
	return out
}

// Pairs returns the entries in order.
func (c *Collection) Pairs() []Pair {
	if c == nil {
		return []Pair{}
	}
	out := make([]Pair, len(c.keys))
	for i, k := range c.keys {
		out[i] = Pair{Key: k, Value: c.values[k]}
	}
	return out
}

// Each calls fn for every entry in order until fn returns false.
func (c *Collection) Each(fn func(k Key, v any) bool) {
	if c == nil {
		return
	}
	for _, k := range c.keys {
		if !fn(k, c.values[k]) {
			return
		}
	}
}

// IsList reports whether the keys are exactly 0, 1, 2... in order.
func (c *Collection) IsList() bool {
	if c == nil {
		return true
	}
	for i, k := range c.keys {
		if !k.IsInt() || k.num != i {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of c. Cloning a nil collection returns an empty one.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return New()
	}
	out := &Collection{
		keys:    make([]Key, len(c.keys)),
		values:  make(map[Key]any, len(c.values)),
		nextIdx: c.nextIdx,
	}
	copy(out.keys, c.keys)
	for k, v := range c.values {
		out.values[k] = v
	}
	return out
}

// Equal reports whether c and other hold the same keys in the same order with strictly equal
// values.
func (c *Collection) Equal(other *Collection) bool {
	if c.Len() != other.Len() {
		return false
	}
	for i := 0; i < c.Len(); i++ {
		a, b := c.At(i), other.At(i)
		if a.Key != b.Key || !StrictEqual(a.Value, b.Value) {
			return false
		}
	}
	return true
}

// String returns a compact, human readable form such as {x: a, 0: 1}.
func (c *Collection) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, p := range c.Pairs() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Key.String())
		sb.WriteString(": ")
		if inner, ok := p.Value.(*Collection); ok {
			sb.WriteString(inner.String())
			continue
		}
		sb.WriteString(StringOf(p.Value))
	}
	sb.WriteByte('}')
	return sb.String()
}
