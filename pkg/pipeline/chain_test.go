package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-arraytransformer/pkg/collection"
	"github.com/askiada/go-arraytransformer/pkg/pipeline"
)

func TestChain(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)

	got, err := pipe.Chain().
		ChangeKeyCase(pipeline.CaseUpper).
		Filter(pipeline.Some[pipeline.Predicate](func(k any) bool { return k != "SKIP" }), pipeline.UseKey).
		FilterPair(func(v any, _ collection.Key) bool { return v != nil }).
		Map(func(v any) any { return v.(int) + 1 }).
		Values().
		Reverse(false).
		Pad(4, 0).
		Slice(0, pipeline.Some(3), false).
		Unique(pipeline.CompareString).
		Keys(pipeline.None[any](), false).
		Pipeline()
	require.NoError(t, err)
	assert.Same(t, pipe, got)
	assert.Equal(t, 10, pipe.Len())

	out, err := pipe.Apply(pairs("a", 1, "skip", 5, "b", nil, "c", 2))
	require.NoError(t, err)
	// {A: 2, C: 3} then [3, 2, 0, 0] sliced to [3, 2, 0], then its keys
	assertCollection(t, collection.List(0, 1, 2), out)
}

func TestChainSetAndMergeOperations(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)

	err = pipe.Chain().
		Column(pipeline.Some(collection.Str("name")), pipeline.None[collection.Key]()).
		Intersect(collection.List("ada", "bob", "eve")).
		Diff(collection.List("eve")).
		MergeRight(collection.List("zoe")).
		MergeLeft(collection.List("ann")).
		Chunk(2, false).
		Register(pipeline.OpValues).
		Err()
	require.NoError(t, err)

	out, err := pipe.Apply(collection.List(pairs("name", "ada"), pairs("name", "eve"), pairs("name", "bob"), pairs("name", "kim")))
	require.NoError(t, err)
	assertCollection(t, collection.List(collection.List("ann", "ada"), collection.List("bob", "zoe")), out)
}

func TestChainKeepsFirstError(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)

	chain := pipe.Chain().Values().Chunk(0, false).Reverse(false).Register("shuffle")
	err = chain.Err()
	require.ErrorIs(t, err, pipeline.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "chunk")
	assert.Equal(t, 1, pipe.Len())

	got, err := chain.Pipeline()
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestChainNilPipeline(t *testing.T) {
	t.Parallel()

	var pipe *pipeline.Pipeline
	err := pipe.Chain().Values().Err()
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
}
