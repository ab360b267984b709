package pipeline

import (
	"github.com/askiada/go-arraytransformer/pkg/collection"
)

// ChangeKeyCase registers a step rewriting the case of every string key.
func (p *Pipeline) ChangeKeyCase(mode CaseMode) (*Pipeline, error) {
	if !mode.valid() {
		return nil, invalidArgument(OpChangeKeyCase, "case", "lower or upper")
	}
	return p.addStep(OpChangeKeyCase, changeKeyCaseParams{mode: mode})
}

// Chunk registers a step splitting the collection into a list of collections holding at most
// size entries each.
func (p *Pipeline) Chunk(size int, preserveKeys bool) (*Pipeline, error) {
	if size <= 0 {
		return nil, invalidArgument(OpChunk, "size", "greater than 0")
	}
	return p.addStep(OpChunk, chunkParams{size: size, preserveKeys: preserveKeys})
}

// Column registers a step projecting a column out of a collection of rows. Without columnKey the
// whole row is kept. With indexKey the result is keyed by the value of that column.
func (p *Pipeline) Column(columnKey, indexKey Optional[collection.Key]) (*Pipeline, error) {
	return p.addStep(OpColumn, columnParams{columnKey: columnKey, indexKey: indexKey})
}

// Diff registers a step keeping the entries whose value appears in none of others.
// Values are compared by their string form.
func (p *Pipeline) Diff(others ...*collection.Collection) (*Pipeline, error) {
	captured, err := captureCollections(OpDiff, others)
	if err != nil {
		return nil, err
	}
	return p.addStep(OpDiff, diffParams{others: captured})
}

// Intersect registers a step keeping the entries whose value appears in every one of others.
// Values are compared by their string form.
func (p *Pipeline) Intersect(others ...*collection.Collection) (*Pipeline, error) {
	captured, err := captureCollections(OpIntersect, others)
	if err != nil {
		return nil, err
	}
	return p.addStep(OpIntersect, intersectParams{others: captured})
}

// Keys registers a step replacing the collection with the list of its keys, restricted to the
// entries equal to search when it is present.
func (p *Pipeline) Keys(search Optional[any], strict bool) (*Pipeline, error) {
	return p.addStep(OpKeys, keysParams{search: search, strict: strict})
}

// Filter registers a step keeping the entries accepted by predicate, or the truthy values when
// predicate is absent. mode selects whether predicate receives the value or the key; use
// [Pipeline.FilterPair] to receive both.
func (p *Pipeline) Filter(predicate Optional[Predicate], mode FilterMode) (*Pipeline, error) {
	switch {
	case mode == UseBoth:
		return nil, invalidArgument(OpFilter, "predicate", "a PairPredicate for mode both")
	case !mode.valid():
		return nil, invalidArgument(OpFilter, "mode", "value, key or both")
	}
	if fn, ok := predicate.Get(); ok && fn == nil {
		return nil, invalidArgument(OpFilter, "predicate", "a non nil function")
	}
	return p.addStep(OpFilter, filterParams{predicate: predicate, mode: mode})
}

// FilterPair registers a filter step whose predicate receives both the value and the key.
func (p *Pipeline) FilterPair(predicate PairPredicate) (*Pipeline, error) {
	if predicate == nil {
		return nil, invalidArgument(OpFilter, "predicate", "a non nil function")
	}
	return p.addStep(OpFilter, filterParams{pair: predicate, mode: UseBoth})
}

// Map registers a step replacing every value with fn(value), keys unchanged.
func (p *Pipeline) Map(fn MapFunc) (*Pipeline, error) {
	if fn == nil {
		return nil, invalidArgument(OpMap, "fn", "a non nil function")
	}
	return p.addStep(OpMap, mapParams{fn: fn})
}

// MergeLeft registers a step merging the collection after other.
func (p *Pipeline) MergeLeft(other *collection.Collection) (*Pipeline, error) {
	if other == nil {
		return nil, invalidArgument(OpMergeLeft, "other", "a collection")
	}
	return p.addStep(OpMergeLeft, mergeParams{other: other.Clone(), left: true})
}

// MergeRight registers a step merging other after the collection.
func (p *Pipeline) MergeRight(other *collection.Collection) (*Pipeline, error) {
	if other == nil {
		return nil, invalidArgument(OpMergeRight, "other", "a collection")
	}
	return p.addStep(OpMergeRight, mergeParams{other: other.Clone()})
}

// Pad registers a step padding the collection with value up to abs(size) entries, at the end for
// a positive size and at the start for a negative one.
func (p *Pipeline) Pad(size int, value any) (*Pipeline, error) {
	return p.addStep(OpPad, padParams{size: size, value: value})
}

// Reverse registers a step reversing the order of the entries.
func (p *Pipeline) Reverse(preserveKeys bool) (*Pipeline, error) {
	return p.addStep(OpReverse, reverseParams{preserveKeys: preserveKeys})
}

// Slice registers a step extracting length entries starting at offset. A negative offset counts
// from the end, a negative length stops that many entries before the end and an absent length
// runs to the end.
func (p *Pipeline) Slice(offset int, length Optional[int], preserveKeys bool) (*Pipeline, error) {
	return p.addStep(OpSlice, sliceParams{offset: offset, length: length, preserveKeys: preserveKeys})
}

// Unique registers a step dropping every entry whose value was already seen.
func (p *Pipeline) Unique(mode UniqueMode) (*Pipeline, error) {
	if !mode.valid() {
		return nil, invalidArgument(OpUnique, "mode", "string, numeric or regular")
	}
	return p.addStep(OpUnique, uniqueParams{mode: mode})
}

// Values registers a step replacing the collection with the list of its values.
func (p *Pipeline) Values() (*Pipeline, error) {
	return p.addStep(OpValues, valuesParams{})
}

func captureCollections(op Operation, others []*collection.Collection) ([]*collection.Collection, error) {
	if len(others) == 0 {
		return nil, invalidArgument(op, "collections", "at least one collection")
	}
	captured := make([]*collection.Collection, len(others))
	for i, other := range others {
		if other == nil {
			return nil, invalidArgument(op, "collections", "non nil collections")
		}
		captured[i] = other.Clone()
	}
	return captured, nil
}
