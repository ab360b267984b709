package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-arraytransformer/pkg/collection"
)

func TestAppendUsesNextFreeIndex(t *testing.T) {
	t.Parallel()

	c := collection.New()
	c.Set(collection.Int(5), "five")
	c.Set(collection.Str("x"), "x")
	c.Append("six")
	c.Set(collection.Int(2), "two")
	c.Append("seven")

	assert.Equal(t, []collection.Key{
		collection.Int(5), collection.Str("x"), collection.Int(6), collection.Int(2), collection.Int(7),
	}, c.Keys())
	assert.Equal(t, []any{"five", "x", "six", "two", "seven"}, c.Values())
}

func TestSetKeepsPosition(t *testing.T) {
	t.Parallel()

	c := collection.FromPairs(
		collection.Pair{Key: collection.Str("a"), Value: 1},
		collection.Pair{Key: collection.Str("b"), Value: 2},
		collection.Pair{Key: collection.Str("a"), Value: 3},
	)
	assert.Equal(t, []collection.Key{collection.Str("a"), collection.Str("b")}, c.Keys())
	v, ok := c.Get(collection.Str("a"))
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestFromMapIsSorted(t *testing.T) {
	t.Parallel()

	c := collection.FromMap(map[string]any{"b": 2, "a": 1, "c": 3})
	assert.Equal(t, []any{1, 2, 3}, c.Values())
}

func TestFrom(t *testing.T) {
	t.Parallel()

	c, ok := collection.From([]any{"a", "b"})
	require.True(t, ok)
	assert.True(t, c.Equal(collection.List("a", "b")))

	_, ok = collection.From("nope")
	assert.False(t, ok)

	var nilColl *collection.Collection
	_, ok = collection.From(nilColl)
	assert.False(t, ok)
}

func TestNilCollectionReads(t *testing.T) {
	t.Parallel()

	var c *collection.Collection
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Keys())
	assert.Empty(t, c.Values())
	assert.True(t, c.IsList())
	assert.False(t, c.Has(collection.Int(0)))
	assert.NotNil(t, c.Clone())
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	c := collection.List("a")
	clone := c.Clone()
	clone.Append("b")
	clone.Set(collection.Int(0), "z")

	assert.Equal(t, []any{"a"}, c.Values())
	assert.Equal(t, []any{"z", "b"}, clone.Values())
}

func TestIsList(t *testing.T) {
	t.Parallel()

	assert.True(t, collection.List(1, 2).IsList())
	assert.True(t, collection.New().IsList())

	c := collection.New()
	c.Set(collection.Int(1), "a")
	assert.False(t, c.IsList())
	assert.False(t, collection.FromMap(map[string]any{"a": 1}).IsList())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := collection.FromPairs(
		collection.Pair{Key: collection.Str("x"), Value: 1},
		collection.Pair{Key: collection.Str("y"), Value: collection.List("n")},
	)
	b := a.Clone()
	assert.True(t, a.Equal(b))

	reordered := collection.FromPairs(
		collection.Pair{Key: collection.Str("y"), Value: collection.List("n")},
		collection.Pair{Key: collection.Str("x"), Value: 1},
	)
	assert.False(t, a.Equal(reordered))
	assert.False(t, collection.List(1).Equal(collection.List("1")))
}

func TestEach(t *testing.T) {
	t.Parallel()

	var seen []any
	collection.List("a", "b", "c").Each(func(k collection.Key, v any) bool {
		seen = append(seen, v)
		return k.Int() < 1
	})
	assert.Equal(t, []any{"a", "b"}, seen)
}

func TestString(t *testing.T) {
	t.Parallel()

	c := collection.FromPairs(
		collection.Pair{Key: collection.Str("x"), Value: "a"},
		collection.Pair{Key: collection.Int(0), Value: collection.List(true, 1.5)},
	)
	assert.Equal(t, "{x: a, 0: {0: 1, 1: 1.5}}", c.String())
}
