package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceBounds(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		offset    int
		length    Optional[int]
		wantStart int
		wantEnd   int
	}{
		"whole":                  {offset: 0, length: None[int](), wantStart: 0, wantEnd: 5},
		"from offset":            {offset: 2, length: None[int](), wantStart: 2, wantEnd: 5},
		"bounded":                {offset: 1, length: Some(2), wantStart: 1, wantEnd: 3},
		"length past the end":    {offset: 3, length: Some(10), wantStart: 3, wantEnd: 5},
		"negative offset":        {offset: -2, length: None[int](), wantStart: 3, wantEnd: 5},
		"offset before start":    {offset: -10, length: Some(1), wantStart: 0, wantEnd: 1},
		"negative length":        {offset: 0, length: Some(-2), wantStart: 0, wantEnd: 3},
		"negative length beyond": {offset: 3, length: Some(-4), wantStart: 0, wantEnd: 0},
		"zero length":            {offset: 1, length: Some(0), wantStart: 0, wantEnd: 0},
		"offset at size":         {offset: 5, length: None[int](), wantStart: 0, wantEnd: 0},
		"offset past size":       {offset: 6, length: Some(1), wantStart: 0, wantEnd: 0},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			start, end := sliceBounds(5, tc.offset, tc.length)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}

func TestRecase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc_1é", recase("AbC_1é", CaseLower))
	assert.Equal(t, "ABC_1é", recase("AbC_1é", CaseUpper))
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	mode, ok := parseMode("Numeric", CompareString, CompareNumeric, CompareRegular)
	assert.True(t, ok)
	assert.Equal(t, CompareNumeric, mode)

	_, ok = parseMode("both", UseValue, UseKey)
	assert.False(t, ok)
}
