package pipeline

import (
	"strings"

	"github.com/askiada/go-arraytransformer/pkg/collection"
)

// Operation is the tag of a registered step.
type Operation string

const (
	OpChangeKeyCase Operation = "changeKeyCase"
	OpChunk         Operation = "chunk"
	OpColumn        Operation = "column"
	OpDiff          Operation = "diff"
	OpIntersect     Operation = "intersect"
	OpKeys          Operation = "keys"
	OpFilter        Operation = "filter"
	OpMap           Operation = "map"
	OpMergeLeft     Operation = "mergeLeft"
	OpMergeRight    Operation = "mergeRight"
	OpPad           Operation = "pad"
	OpReverse       Operation = "reverse"
	OpSlice         Operation = "slice"
	OpUnique        Operation = "unique"
	OpValues        Operation = "values"
)

// Operations returns every supported operation tag.
func Operations() []Operation {
	return []Operation{
		OpChangeKeyCase, OpChunk, OpColumn, OpDiff, OpIntersect, OpKeys, OpFilter, OpMap,
		OpMergeLeft, OpMergeRight, OpPad, OpReverse, OpSlice, OpUnique, OpValues,
	}
}

// CaseMode selects the casing applied by changeKeyCase.
type CaseMode int

const (
	CaseLower CaseMode = iota
	CaseUpper
)

func (m CaseMode) String() string {
	switch m {
	case CaseLower:
		return "lower"
	case CaseUpper:
		return "upper"
	}
	return "invalid"
}

func (m CaseMode) valid() bool { return m == CaseLower || m == CaseUpper }

// FilterMode selects what the filter predicate receives.
type FilterMode int

const (
	// UseValue passes the value to a [Predicate].
	UseValue FilterMode = iota
	// UseKey passes the key, as an int or a string, to a [Predicate].
	UseKey
	// UseBoth passes the value and the key to a [PairPredicate].
	UseBoth
)

func (m FilterMode) String() string {
	switch m {
	case UseValue:
		return "value"
	case UseKey:
		return "key"
	case UseBoth:
		return "both"
	}
	return "invalid"
}

func (m FilterMode) valid() bool { return m >= UseValue && m <= UseBoth }

// UniqueMode selects how unique compares values.
type UniqueMode int

const (
	// CompareString compares the string forms of the values.
	CompareString UniqueMode = iota
	// CompareNumeric compares the numeric forms of the values.
	CompareNumeric
	// CompareRegular compares values with loose equality.
	CompareRegular
)

func (m UniqueMode) String() string {
	switch m {
	case CompareString:
		return "string"
	case CompareNumeric:
		return "numeric"
	case CompareRegular:
		return "regular"
	}
	return "invalid"
}

func (m UniqueMode) valid() bool { return m >= CompareString && m <= CompareRegular }

// Predicate decides whether filter keeps an entry. It receives the value or the key depending on
// the [FilterMode].
type Predicate func(arg any) bool

// PairPredicate decides whether filter keeps an entry given both its value and its key.
type PairPredicate func(value any, key collection.Key) bool

// MapFunc transforms a single value.
type MapFunc func(value any) any

func parseMode[M interface {
	~int
	String() string
}](name string, all ...M) (M, bool) {
	for _, m := range all {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	var zero M
	return zero, false
}
