package pipeline

import (
	"fmt"
	"strings"

	"github.com/askiada/go-arraytransformer/pkg/collection"
)

type changeKeyCaseParams struct {
	mode CaseMode
}

func (p changeKeyCaseParams) apply(in *collection.Collection) (*collection.Collection, error) {
	out := collection.New()
	in.Each(func(k collection.Key, v any) bool {
		if k.IsInt() {
			out.Set(k, v)
			return true
		}
		out.Set(collection.Str(recase(k.String(), p.mode)), v)
		return true
	})
	return out, nil
}

func (p changeKeyCaseParams) describe() string { return "case=" + p.mode.String() }

// recase changes the case of ASCII letters only.
func recase(s string, mode CaseMode) string {
	return strings.Map(func(r rune) rune {
		switch {
		case mode == CaseLower && r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case mode == CaseUpper && r >= 'a' && r <= 'z':
			return r - ('a' - 'A')
		}
		return r
	}, s)
}

type chunkParams struct {
	size         int
	preserveKeys bool
}

func (p chunkParams) apply(in *collection.Collection) (*collection.Collection, error) {
	out := collection.New()
	var current *collection.Collection
	in.Each(func(k collection.Key, v any) bool {
		if current == nil {
			current = collection.New()
		}
		if p.preserveKeys {
			current.Set(k, v)
		} else {
			current.Append(v)
		}
		if current.Len() == p.size {
			out.Append(current)
			current = nil
		}
		return true
	})
	if current != nil {
		out.Append(current)
	}
	return out, nil
}

func (p chunkParams) describe() string {
	return fmt.Sprintf("size=%d, preserveKeys=%t", p.size, p.preserveKeys)
}

type columnParams struct {
	columnKey Optional[collection.Key]
	indexKey  Optional[collection.Key]
}

func (p columnParams) apply(in *collection.Collection) (*collection.Collection, error) {
	out := collection.New()
	for i, entry := range in.Pairs() {
		row, ok := collection.From(entry.Value)
		if !ok {
			return nil, &LookupError{Operation: OpColumn, Position: i, Reason: fmt.Sprintf("row %s is not a collection", entry.Key)}
		}

		value := any(row)
		if column, ok := p.columnKey.Get(); ok {
			value, ok = row.Get(column)
			if !ok {
				return nil, &LookupError{Operation: OpColumn, Position: i, Reason: fmt.Sprintf("row %s has no column %q", entry.Key, column)}
			}
		}

		index, ok := p.indexKey.Get()
		if !ok {
			out.Append(value)
			continue
		}
		raw, ok := row.Get(index)
		if !ok {
			return nil, &LookupError{Operation: OpColumn, Position: i, Reason: fmt.Sprintf("row %s has no index column %q", entry.Key, index)}
		}
		key, err := collection.KeyOf(raw)
		if err != nil {
			return nil, &LookupError{Operation: OpColumn, Position: i, Reason: fmt.Sprintf("row %s index column %q: %s", entry.Key, index, err)}
		}
		out.Set(key, value)
	}
	return out, nil
}

func (p columnParams) describe() string {
	return "column=" + describeOptionalKey(p.columnKey) + ", index=" + describeOptionalKey(p.indexKey)
}

type valuesParams struct{}

func (valuesParams) apply(in *collection.Collection) (*collection.Collection, error) {
	return collection.FromSlice(in.Values()), nil
}

func (valuesParams) describe() string { return "" }

type keysParams struct {
	search Optional[any]
	strict bool
}

func (p keysParams) apply(in *collection.Collection) (*collection.Collection, error) {
	out := collection.New()
	search, filtered := p.search.Get()
	in.Each(func(k collection.Key, v any) bool {
		switch {
		case !filtered:
		case p.strict && !collection.StrictEqual(v, search):
			return true
		case !p.strict && !collection.LooseEqual(v, search):
			return true
		}
		out.Append(k.Value())
		return true
	})
	return out, nil
}

func (p keysParams) describe() string {
	search, ok := p.search.Get()
	if !ok {
		return "search=none"
	}
	return fmt.Sprintf("search=%s, strict=%t", describeValue(search), p.strict)
}

type diffParams struct {
	others []*collection.Collection
}

func (p diffParams) apply(in *collection.Collection) (*collection.Collection, error) {
	excluded := make(map[string]struct{})
	for _, other := range p.others {
		for _, v := range other.Values() {
			excluded[collection.StringOf(v)] = struct{}{}
		}
	}
	out := collection.New()
	in.Each(func(k collection.Key, v any) bool {
		if _, found := excluded[collection.StringOf(v)]; !found {
			out.Set(k, v)
		}
		return true
	})
	return out, nil
}

func (p diffParams) describe() string { return describeCollections(p.others) }

type intersectParams struct {
	others []*collection.Collection
}

func (p intersectParams) apply(in *collection.Collection) (*collection.Collection, error) {
	sets := make([]map[string]struct{}, len(p.others))
	for i, other := range p.others {
		sets[i] = make(map[string]struct{}, other.Len())
		for _, v := range other.Values() {
			sets[i][collection.StringOf(v)] = struct{}{}
		}
	}
	out := collection.New()
	in.Each(func(k collection.Key, v any) bool {
		str := collection.StringOf(v)
		for _, set := range sets {
			if _, found := set[str]; !found {
				return true
			}
		}
		out.Set(k, v)
		return true
	})
	return out, nil
}

func (p intersectParams) describe() string { return describeCollections(p.others) }

type uniqueParams struct {
	mode UniqueMode
}

func (p uniqueParams) apply(in *collection.Collection) (*collection.Collection, error) {
	out := collection.New()
	switch p.mode {
	case CompareNumeric:
		seen := make(map[float64]struct{})
		in.Each(func(k collection.Key, v any) bool {
			n := collection.NumberOf(v)
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				out.Set(k, v)
			}
			return true
		})
	case CompareRegular:
		in.Each(func(k collection.Key, v any) bool {
			for _, kept := range out.Values() {
				if collection.LooseEqual(kept, v) {
					return true
				}
			}
			out.Set(k, v)
			return true
		})
	default:
		seen := make(map[string]struct{})
		in.Each(func(k collection.Key, v any) bool {
			str := collection.StringOf(v)
			if _, ok := seen[str]; !ok {
				seen[str] = struct{}{}
				out.Set(k, v)
			}
			return true
		})
	}
	return out, nil
}

func (p uniqueParams) describe() string { return "mode=" + p.mode.String() }

type filterParams struct {
	predicate Optional[Predicate]
	pair      PairPredicate
	mode      FilterMode
}

func (p filterParams) apply(in *collection.Collection) (*collection.Collection, error) {
	predicate, hasPredicate := p.predicate.Get()
	out := collection.New()
	in.Each(func(k collection.Key, v any) bool {
		var keep bool
		switch {
		case p.mode == UseBoth:
			keep = p.pair(v, k)
		case !hasPredicate:
			keep = collection.Truthy(v)
		case p.mode == UseKey:
			keep = predicate(k.Value())
		default:
			keep = predicate(v)
		}
		if keep {
			out.Set(k, v)
		}
		return true
	})
	return out, nil
}

func (p filterParams) describe() string {
	if p.mode != UseBoth && !p.predicate.IsSome() {
		return "predicate=truthy"
	}
	return "predicate=func, mode=" + p.mode.String()
}

type mapParams struct {
	fn MapFunc
}

func (p mapParams) apply(in *collection.Collection) (*collection.Collection, error) {
	out := collection.New()
	in.Each(func(k collection.Key, v any) bool {
		out.Set(k, p.fn(v))
		return true
	})
	return out, nil
}

func (mapParams) describe() string { return "fn=func" }

type mergeParams struct {
	other *collection.Collection
	// left places other before the current collection.
	left bool
}

func (p mergeParams) apply(in *collection.Collection) (*collection.Collection, error) {
	if p.left {
		return merge(p.other, in), nil
	}
	return merge(in, p.other), nil
}

func (p mergeParams) describe() string { return "other=" + p.other.String() }

// merge concatenates the collections: integer keys are renumbered, a repeated string key keeps
// its first position and takes the last value.
func merge(colls ...*collection.Collection) *collection.Collection {
	out := collection.New()
	for _, c := range colls {
		c.Each(func(k collection.Key, v any) bool {
			put(out, k, v, false)
			return true
		})
	}
	return out
}

type padParams struct {
	size  int
	value any
}

func (p padParams) apply(in *collection.Collection) (*collection.Collection, error) {
	target := p.size
	if target < 0 {
		target = -target
	}
	if target <= in.Len() {
		return in.Clone(), nil
	}
	pads := collection.New()
	for i := in.Len(); i < target; i++ {
		pads.Append(p.value)
	}
	if p.size < 0 {
		return merge(pads, in), nil
	}
	return merge(in, pads), nil
}

func (p padParams) describe() string {
	return fmt.Sprintf("size=%d, value=%s", p.size, describeValue(p.value))
}

type reverseParams struct {
	preserveKeys bool
}

func (p reverseParams) apply(in *collection.Collection) (*collection.Collection, error) {
	out := collection.New()
	for i := in.Len() - 1; i >= 0; i-- {
		entry := in.At(i)
		put(out, entry.Key, entry.Value, p.preserveKeys)
	}
	return out, nil
}

func (p reverseParams) describe() string { return fmt.Sprintf("preserveKeys=%t", p.preserveKeys) }

type sliceParams struct {
	offset       int
	length       Optional[int]
	preserveKeys bool
}

func (p sliceParams) apply(in *collection.Collection) (*collection.Collection, error) {
	out := collection.New()
	start, end := sliceBounds(in.Len(), p.offset, p.length)
	for i := start; i < end; i++ {
		entry := in.At(i)
		put(out, entry.Key, entry.Value, p.preserveKeys)
	}
	return out, nil
}

func (p sliceParams) describe() string {
	length := "none"
	if l, ok := p.length.Get(); ok {
		length = fmt.Sprint(l)
	}
	return fmt.Sprintf("offset=%d, length=%s, preserveKeys=%t", p.offset, length, p.preserveKeys)
}

// sliceBounds resolves offset and length against a collection of size entries. A negative offset
// counts from the end, a negative length stops that many entries before the end.
func sliceBounds(size, offset int, length Optional[int]) (int, int) {
	if offset > size {
		return 0, 0
	}
	if offset < 0 {
		offset += size
		if offset < 0 {
			offset = 0
		}
	}
	count := size - offset
	if l, ok := length.Get(); ok {
		switch {
		case l < 0:
			count = size - offset + l
		case l < count:
			count = l
		}
	}
	if count <= 0 {
		return 0, 0
	}
	return offset, offset + count
}

// put stores v in out. String keys are always kept, integer keys only when preserveKeys is set.
func put(out *collection.Collection, k collection.Key, v any, preserveKeys bool) {
	if k.IsInt() && !preserveKeys {
		out.Append(v)
		return
	}
	out.Set(k, v)
}

func describeValue(v any) string {
	if c, ok := v.(*collection.Collection); ok {
		return c.String()
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}

func describeOptionalKey(k Optional[collection.Key]) string {
	key, ok := k.Get()
	if !ok {
		return "none"
	}
	return describeValue(key.Value())
}

func describeCollections(colls []*collection.Collection) string {
	parts := make([]string, len(colls))
	for i, c := range colls {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
