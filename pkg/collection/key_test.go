package collection_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-arraytransformer/pkg/collection"
)

func TestStrNormalisesNumericStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input  string
		isInt  bool
		intVal int
	}{
		"plain integer":   {input: "42", isInt: true, intVal: 42},
		"negative":        {input: "-7", isInt: true, intVal: -7},
		"zero":            {input: "0", isInt: true},
		"leading zero":    {input: "05"},
		"plus sign":       {input: "+5"},
		"negative zero":   {input: "-0"},
		"decimal":         {input: "1.5"},
		"word":            {input: "name"},
		"empty":           {input: ""},
		"trailing spaces": {input: "1 "},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			k := collection.Str(tc.input)
			assert.Equal(t, tc.isInt, k.IsInt())
			if tc.isInt {
				assert.Equal(t, tc.intVal, k.Int())
				assert.Equal(t, collection.Int(tc.intVal), k)
				return
			}
			assert.Equal(t, tc.input, k.Value())
		})
	}
}

func TestKeyOf(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    any
		expected collection.Key
	}{
		"int":         {input: 3, expected: collection.Int(3)},
		"int64":       {input: int64(9), expected: collection.Int(9)},
		"uint8":       {input: uint8(2), expected: collection.Int(2)},
		"string":      {input: "a", expected: collection.Str("a")},
		"numeric str": {input: "12", expected: collection.Int(12)},
		"true":        {input: true, expected: collection.Int(1)},
		"false":       {input: false, expected: collection.Int(0)},
		"float":       {input: 3.9, expected: collection.Int(3)},
		"nil":         {input: nil, expected: collection.Str("")},
		"key":         {input: collection.Str("k"), expected: collection.Str("k")},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := collection.KeyOf(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestKeyOfInvalid(t *testing.T) {
	t.Parallel()

	_, err := collection.KeyOf(collection.List(1))
	require.ErrorIs(t, err, collection.ErrInvalidKey)
	_, err = collection.KeyOf([]int{1})
	require.ErrorIs(t, err, collection.ErrInvalidKey)
	_, err = collection.KeyOf(uint64(math.MaxUint64))
	require.ErrorIs(t, err, collection.ErrInvalidKey)
}

func TestKeyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "5", collection.Int(5).String())
	assert.Equal(t, "name", collection.Str("name").String())
	assert.Equal(t, 0, collection.Key{}.Value())
}
