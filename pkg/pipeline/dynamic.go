package pipeline

import (
	"fmt"
	"math"

	"github.com/askiada/go-arraytransformer/pkg/collection"
)

// Register registers a step by operation tag. Arguments follow the typed method of the operation,
// and trailing optional arguments may be left out:
//
//	changeKeyCase([case])                 CaseMode or "lower"/"upper", default lower
//	chunk(size, [preserveKeys])
//	column(columnKey, [indexKey])         key, Optional[collection.Key] or nil
//	diff(collection, ...)
//	intersect(collection, ...)
//	keys([search], [strict])              nil search means no filtering
//	filter([predicate], [mode])           Predicate, PairPredicate or nil
//	map(fn)
//	mergeLeft(collection)
//	mergeRight(collection)
//	pad(size, value)
//	reverse([preserveKeys])
//	slice(offset, [length], [preserveKeys]) length is an integer, Optional[int] or nil
//	unique([mode])                        UniqueMode or "string"/"numeric"/"regular", default string
//	values()
//
// Integers may be any Go integer type, collections may be given as *collection.Collection, []any
// or map[string]any. An argument of the wrong type fails with an [*ArgumentError] and nothing is
// registered.
func (p *Pipeline) Register(op Operation, args ...any) (*Pipeline, error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}
	switch op {
	case OpChangeKeyCase:
		return registerChangeKeyCase(p, args)
	case OpChunk:
		return registerChunk(p, args)
	case OpColumn:
		return registerColumn(p, args)
	case OpDiff, OpIntersect:
		return registerSetOperation(p, op, args)
	case OpKeys:
		return registerKeys(p, args)
	case OpFilter:
		return registerFilter(p, args)
	case OpMap:
		return registerMap(p, args)
	case OpMergeLeft, OpMergeRight:
		return registerMerge(p, op, args)
	case OpPad:
		return registerPad(p, args)
	case OpReverse:
		return registerReverse(p, args)
	case OpSlice:
		return registerSlice(p, args)
	case OpUnique:
		return registerUnique(p, args)
	case OpValues:
		if err := checkArity(op, args, 0, 0); err != nil {
			return nil, err
		}
		return p.Values()
	}
	return nil, invalidArgument(op, "operation", "one of the supported operations")
}

func checkArity(op Operation, args []any, required, total int) error {
	switch {
	case len(args) < required:
		return invalidArgument(op, "", fmt.Sprintf("expects at least %d arguments, got %d", required, len(args)))
	case len(args) > total:
		return invalidArgument(op, "", fmt.Sprintf("expects at most %d arguments, got %d", total, len(args)))
	}
	return nil
}

// arg returns args[i], or nil when it was left out.
func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func registerChangeKeyCase(p *Pipeline, args []any) (*Pipeline, error) {
	if err := checkArity(OpChangeKeyCase, args, 0, 1); err != nil {
		return nil, err
	}
	mode := CaseLower
	if raw := arg(args, 0); raw != nil {
		var ok bool
		mode, ok = asMode(raw, CaseLower, CaseUpper)
		if !ok {
			return nil, invalidArgument(OpChangeKeyCase, "case", "lower or upper")
		}
	}
	return p.ChangeKeyCase(mode)
}

func registerChunk(p *Pipeline, args []any) (*Pipeline, error) {
	if err := checkArity(OpChunk, args, 1, 2); err != nil {
		return nil, err
	}
	size, err := intArg(OpChunk, "size", args[0])
	if err != nil {
		return nil, err
	}
	preserveKeys, err := boolArg(OpChunk, "preserveKeys", arg(args, 1))
	if err != nil {
		return nil, err
	}
	return p.Chunk(size, preserveKeys)
}

func registerColumn(p *Pipeline, args []any) (*Pipeline, error) {
	if err := checkArity(OpColumn, args, 1, 2); err != nil {
		return nil, err
	}
	columnKey, err := optionalKeyArg(OpColumn, "columnKey", args[0])
	if err != nil {
		return nil, err
	}
	indexKey, err := optionalKeyArg(OpColumn, "indexKey", arg(args, 1))
	if err != nil {
		return nil, err
	}
	return p.Column(columnKey, indexKey)
}

func registerSetOperation(p *Pipeline, op Operation, args []any) (*Pipeline, error) {
	if len(args) == 0 {
		return nil, invalidArgument(op, "collections", "at least one collection")
	}
	others := make([]*collection.Collection, len(args))
	for i, raw := range args {
		other, err := collectionArg(op, fmt.Sprintf("collections[%d]", i), raw)
		if err != nil {
			return nil, err
		}
		others[i] = other
	}
	if op == OpDiff {
		return p.Diff(others...)
	}
	return p.Intersect(others...)
}

func registerKeys(p *Pipeline, args []any) (*Pipeline, error) {
	if err := checkArity(OpKeys, args, 0, 2); err != nil {
		return nil, err
	}
	search := None[any]()
	switch raw := arg(args, 0).(type) {
	case nil:
	case Optional[any]:
		search = raw
	default:
		search = Some(raw)
	}
	strict, err := boolArg(OpKeys, "strict", arg(args, 1))
	if err != nil {
		return nil, err
	}
	return p.Keys(search, strict)
}

func registerFilter(p *Pipeline, args []any) (*Pipeline, error) {
	if err := checkArity(OpFilter, args, 0, 2); err != nil {
		return nil, err
	}
	var (
		predicate = None[Predicate]()
		pair      PairPredicate
	)
	switch fn := arg(args, 0).(type) {
	case nil:
	case Optional[Predicate]:
		predicate = fn
	case Predicate:
		predicate = Some(fn)
	case func(any) bool:
		predicate = Some(Predicate(fn))
	case PairPredicate:
		pair = fn
	case func(any, collection.Key) bool:
		pair = fn
	default:
		return nil, invalidArgument(OpFilter, "predicate", fmt.Sprintf("a Predicate, a PairPredicate or nil, got %T", fn))
	}

	mode := UseValue
	if pair != nil {
		mode = UseBoth
	}
	if raw := arg(args, 1); raw != nil {
		var ok bool
		mode, ok = asMode(raw, UseValue, UseKey, UseBoth)
		if !ok {
			return nil, invalidArgument(OpFilter, "mode", "value, key or both")
		}
	}

	switch {
	case pair != nil && mode != UseBoth:
		return nil, invalidArgument(OpFilter, "mode", "both for a PairPredicate")
	case pair != nil:
		return p.FilterPair(pair)
	}
	return p.Filter(predicate, mode)
}

func registerMap(p *Pipeline, args []any) (*Pipeline, error) {
	if err := checkArity(OpMap, args, 1, 1); err != nil {
		return nil, err
	}
	switch fn := args[0].(type) {
	case MapFunc:
		return p.Map(fn)
	case func(any) any:
		return p.Map(fn)
	}
	return nil, invalidArgument(OpMap, "fn", fmt.Sprintf("a MapFunc, got %T", args[0]))
}

func registerMerge(p *Pipeline, op Operation, args []any) (*Pipeline, error) {
	if err := checkArity(op, args, 1, 1); err != nil {
		return nil, err
	}
	other, err := collectionArg(op, "other", args[0])
	if err != nil {
		return nil, err
	}
	if op == OpMergeLeft {
		return p.MergeLeft(other)
	}
	return p.MergeRight(other)
}

func registerPad(p *Pipeline, args []any) (*Pipeline, error) {
	if err := checkArity(OpPad, args, 2, 2); err != nil {
		return nil, err
	}
	size, err := intArg(OpPad, "size", args[0])
	if err != nil {
		return nil, err
	}
	return p.Pad(size, args[1])
}

func registerReverse(p *Pipeline, args []any) (*Pipeline, error) {
	if err := checkArity(OpReverse, args, 0, 1); err != nil {
		return nil, err
	}
	preserveKeys, err := boolArg(OpReverse, "preserveKeys", arg(args, 0))
	if err != nil {
		return nil, err
	}
	return p.Reverse(preserveKeys)
}

func registerSlice(p *Pipeline, args []any) (*Pipeline, error) {
	if err := checkArity(OpSlice, args, 1, 3); err != nil {
		return nil, err
	}
	offset, err := intArg(OpSlice, "offset", args[0])
	if err != nil {
		return nil, err
	}
	length := None[int]()
	switch raw := arg(args, 1).(type) {
	case nil:
	case Optional[int]:
		length = raw
	default:
		n, ok := asInt(raw)
		if !ok {
			return nil, invalidArgument(OpSlice, "length", "an integer, or nil")
		}
		length = Some(n)
	}
	preserveKeys, err := boolArg(OpSlice, "preserveKeys", arg(args, 2))
	if err != nil {
		return nil, err
	}
	return p.Slice(offset, length, preserveKeys)
}

func registerUnique(p *Pipeline, args []any) (*Pipeline, error) {
	if err := checkArity(OpUnique, args, 0, 1); err != nil {
		return nil, err
	}
	mode := CompareString
	if raw := arg(args, 0); raw != nil {
		var ok bool
		mode, ok = asMode(raw, CompareString, CompareNumeric, CompareRegular)
		if !ok {
			return nil, invalidArgument(OpUnique, "mode", "string, numeric or regular")
		}
	}
	return p.Unique(mode)
}

// asMode accepts a mode value or the name of one of all.
func asMode[M interface {
	~int
	String() string
}](raw any, all ...M) (M, bool) {
	switch val := raw.(type) {
	case M:
		for _, m := range all {
			if m == val {
				return val, true
			}
		}
	case string:
		return parseMode(val, all...)
	}
	var zero M
	return zero, false
}

func asInt(raw any) (int, bool) {
	switch n := raw.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), n >= math.MinInt && n <= math.MaxInt
	case uint:
		return int(n), n <= math.MaxInt
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), uint64(n) <= math.MaxInt
	case uint64:
		return int(n), n <= math.MaxInt
	}
	return 0, false
}

func intArg(op Operation, name string, raw any) (int, error) {
	n, ok := asInt(raw)
	if !ok {
		switch raw.(type) {
		case uint, uint32, uint64:
			return 0, invalidArgument(op, name, fmt.Sprintf("an integer no greater than %d, got %v", math.MaxInt, raw))
		}
		return 0, invalidArgument(op, name, fmt.Sprintf("an integer, got %T", raw))
	}
	return n, nil
}

// boolArg reads an optional boolean, nil meaning false.
func boolArg(op Operation, name string, raw any) (bool, error) {
	switch val := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return val, nil
	}
	return false, invalidArgument(op, name, fmt.Sprintf("a boolean, got %T", raw))
}

func collectionArg(op Operation, name string, raw any) (*collection.Collection, error) {
	c, ok := collection.From(raw)
	if !ok {
		return nil, invalidArgument(op, name, fmt.Sprintf("a collection, got %T", raw))
	}
	return c, nil
}

func optionalKeyArg(op Operation, name string, raw any) (Optional[collection.Key], error) {
	switch val := raw.(type) {
	case nil:
		return None[collection.Key](), nil
	case Optional[collection.Key]:
		return val, nil
	case string:
		return Some(collection.Str(val)), nil
	case collection.Key:
		return Some(val), nil
	}
	if n, ok := asInt(raw); ok {
		return Some(collection.Int(n)), nil
	}
	return None[collection.Key](), invalidArgument(op, name, fmt.Sprintf("an integer, a string, or nil, got %T", raw))
}
