package pipeline

import (
	"github.com/askiada/go-arraytransformer/pkg/collection"
)

// Chain registers steps fluently on a pipeline. The first registration error is kept and every
// later call is ignored, so the pipeline holds exactly the steps registered before the failure.
//
//	pipe, err := pipeline.New()
//	...
//	err = pipe.Chain().
//	    Values().
//	    Diff(collection.List("a", "c"), collection.List("e")).
//	    MergeLeft(collection.List("m", "n")).
//	    Err()
type Chain struct {
	pipe *Pipeline
	err  error
}

// Chain starts a fluent registration on p.
func (p *Pipeline) Chain() *Chain {
	return &Chain{pipe: p}
}

func (c *Chain) then(register func() (*Pipeline, error)) *Chain {
	if c.err != nil {
		return c
	}
	if c.pipe == nil {
		c.err = ErrPipelineMustBeSet
		return c
	}
	_, c.err = register()
	return c
}

// Err returns the first registration error.
func (c *Chain) Err() error { return c.err }

// Pipeline returns the pipeline and the first registration error.
func (c *Chain) Pipeline() (*Pipeline, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.pipe, nil
}

// Register mirrors [Pipeline.Register].
func (c *Chain) Register(op Operation, args ...any) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Register(op, args...) })
}

func (c *Chain) ChangeKeyCase(mode CaseMode) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.ChangeKeyCase(mode) })
}

func (c *Chain) Chunk(size int, preserveKeys bool) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Chunk(size, preserveKeys) })
}

func (c *Chain) Column(columnKey, indexKey Optional[collection.Key]) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Column(columnKey, indexKey) })
}

func (c *Chain) Diff(others ...*collection.Collection) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Diff(others...) })
}

func (c *Chain) Intersect(others ...*collection.Collection) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Intersect(others...) })
}

func (c *Chain) Keys(search Optional[any], strict bool) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Keys(search, strict) })
}

func (c *Chain) Filter(predicate Optional[Predicate], mode FilterMode) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Filter(predicate, mode) })
}

func (c *Chain) FilterPair(predicate PairPredicate) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.FilterPair(predicate) })
}

func (c *Chain) Map(fn MapFunc) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Map(fn) })
}

func (c *Chain) MergeLeft(other *collection.Collection) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.MergeLeft(other) })
}

func (c *Chain) MergeRight(other *collection.Collection) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.MergeRight(other) })
}

func (c *Chain) Pad(size int, value any) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Pad(size, value) })
}

func (c *Chain) Reverse(preserveKeys bool) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Reverse(preserveKeys) })
}

func (c *Chain) Slice(offset int, length Optional[int], preserveKeys bool) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Slice(offset, length, preserveKeys) })
}

func (c *Chain) Unique(mode UniqueMode) *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Unique(mode) })
}

func (c *Chain) Values() *Chain {
	return c.then(func() (*Pipeline, error) { return c.pipe.Values() })
}
