package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-arraytransformer/pkg/collection"
	"github.com/askiada/go-arraytransformer/pkg/pipeline"
)

func TestNewOptionError(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(&recordingOption{newErr: assert.AnError})
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "unable to apply pipeline option")
}

func TestNilPipeline(t *testing.T) {
	t.Parallel()

	var pipe *pipeline.Pipeline
	assert.Equal(t, 0, pipe.Len())
	assert.Nil(t, pipe.Steps())

	_, err := pipe.Values()
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
	_, err = pipe.Register(pipeline.OpValues)
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
	_, err = pipe.Apply(collection.List(1))
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
	_, err = pipe.ApplyAll(context.Background(), nil, 0)
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
	assert.ErrorIs(t, pipe.Finish(), pipeline.ErrPipelineMustBeSet)
}

func TestApplyEmptyPipelineIsIdentity(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)

	input := pairs("x", "a", 3, "b", "y", collection.List(1, 2))
	got, err := pipe.Apply(input)
	require.NoError(t, err)
	assertCollection(t, input, got)

	got.Set(collection.Str("z"), "new")
	assert.Equal(t, 3, input.Len(), "the output must not share storage with the input")
}

func TestApplyNilInput(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)
	_, err = pipe.Pad(2, "x")
	require.NoError(t, err)

	got, err := pipe.Apply(nil)
	require.NoError(t, err)
	assertCollection(t, collection.List("x", "x"), got)
}

func TestApplyFoldsStepsInOrder(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)
	_, err = pipe.Values()
	require.NoError(t, err)
	_, err = pipe.Diff(collection.List("a", "c"), collection.List("e"))
	require.NoError(t, err)
	_, err = pipe.MergeLeft(collection.List("m", "n"))
	require.NoError(t, err)
	assert.Equal(t, 3, pipe.Len())

	got, err := pipe.Apply(pairs("x", "a", "y", "b", "z", "c"))
	require.NoError(t, err)
	assertCollection(t, collection.List("m", "n", "b"), got)

	// applying the steps one by one gives the same result
	current := pairs("x", "a", "y", "b", "z", "c")
	for _, step := range pipe.Steps() {
		current, err = step.Run(current)
		require.NoError(t, err)
	}
	assertCollection(t, got, current)
}

func TestApplyIsOrderSensitive(t *testing.T) {
	t.Parallel()

	input := pairs("x", 1, "y", 2)
	extra := pairs("x", 9)

	first, err := pipeline.New()
	require.NoError(t, err)
	require.NoError(t, first.Chain().Values().MergeRight(extra).Err())

	second, err := pipeline.New()
	require.NoError(t, err)
	require.NoError(t, second.Chain().MergeRight(extra).Values().Err())

	gotFirst, err := first.Apply(input)
	require.NoError(t, err)
	gotSecond, err := second.Apply(input)
	require.NoError(t, err)

	assertCollection(t, pairs(0, 1, 1, 2, "x", 9), gotFirst)
	assertCollection(t, collection.List(9, 2), gotSecond)
}

func TestApplyValuesAndReverseDoNotCommute(t *testing.T) {
	t.Parallel()

	valuesFirst, err := pipeline.New()
	require.NoError(t, err)
	require.NoError(t, valuesFirst.Chain().Values().Reverse(true).Err())

	reverseFirst, err := pipeline.New()
	require.NoError(t, err)
	require.NoError(t, reverseFirst.Chain().Reverse(true).Values().Err())

	input := collection.List("a", "b")
	gotValuesFirst, err := valuesFirst.Apply(input)
	require.NoError(t, err)
	gotReverseFirst, err := reverseFirst.Apply(input)
	require.NoError(t, err)

	assertCollection(t, pairs(1, "b", 0, "a"), gotValuesFirst)
	assertCollection(t, collection.List("b", "a"), gotReverseFirst)
	assert.False(t, gotValuesFirst.Equal(gotReverseFirst))
}

func TestMergeLeftPrecedence(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)
	_, err = pipe.MergeLeft(pairs("y", 9, "z", 3))
	require.NoError(t, err)

	got, err := pipe.Apply(pairs("x", 1, "y", 2))
	require.NoError(t, err)
	assertCollection(t, pairs("y", 2, "z", 3, "x", 1), got)
}

func TestApplyIsRepeatable(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)
	require.NoError(t, pipe.Chain().Reverse(false).Chunk(2, false).Err())

	input := collection.List(1, 2, 3)
	want := collection.List(collection.List(3, 2), collection.List(1))
	for i := 0; i < 3; i++ {
		got, err := pipe.Apply(input)
		require.NoError(t, err)
		assertCollection(t, want, got)
	}
	assertCollection(t, collection.List(1, 2, 3), input)
}

func TestRegistrationFailureLeavesPipelineUnchanged(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)
	_, err = pipe.Values()
	require.NoError(t, err)

	_, err = pipe.Chunk(0, false)
	require.ErrorIs(t, err, pipeline.ErrInvalidArgument)
	var argErr *pipeline.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, pipeline.OpChunk, argErr.Operation)
	assert.Equal(t, "size", argErr.Parameter)
	assert.Equal(t, "invalid argument: chunk: size must be greater than 0", err.Error())
	assert.Equal(t, 1, pipe.Len())

	_, err = pipe.Register(pipeline.OpSlice, 0, "bad")
	require.ErrorIs(t, err, pipeline.ErrInvalidArgument)
	assert.Equal(t, 1, pipe.Len())

	_, err = pipe.Register(pipeline.OpSlice, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, pipe.Len())
}

func TestApplyRuntimeLookupFailure(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)
	_, err = pipe.Column(pipeline.Some(collection.Str("name")), pipeline.None[collection.Key]())
	require.NoError(t, err)

	_, err = pipe.Apply(collection.List(pairs("name", "a"), pairs("id", 2)))
	require.ErrorIs(t, err, pipeline.ErrRuntimeLookup)
	var lookupErr *pipeline.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, 1, lookupErr.Position)
	assert.Contains(t, err.Error(), "step 1. column")
}

func TestStepsDescription(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)
	require.NoError(t, pipe.Chain().
		Slice(1, pipeline.None[int](), false).
		Chunk(2, true).
		Keys(pipeline.Some[any]("a"), true).
		Filter(pipeline.None[pipeline.Predicate](), pipeline.UseValue).
		Unique(pipeline.CompareNumeric).
		Err())

	steps := pipe.Steps()
	require.Len(t, steps, 5)
	assert.Equal(t, pipeline.OpSlice, steps[0].Operation())
	assert.Equal(t, "slice(offset=1, length=none, preserveKeys=false)", steps[0].String())
	assert.Equal(t, "chunk(size=2, preserveKeys=true)", steps[1].String())
	assert.Equal(t, `keys(search="a", strict=true)`, steps[2].String())
	assert.Equal(t, "filter(predicate=truthy)", steps[3].String())
	assert.Equal(t, "unique(mode=numeric)", steps[4].String())

	steps[0] = steps[1]
	assert.Equal(t, pipeline.OpSlice, pipe.Steps()[0].Operation())
}

func TestCapturedArgumentsAreCopied(t *testing.T) {
	t.Parallel()

	other := collection.List("m")
	pipe, err := pipeline.New()
	require.NoError(t, err)
	_, err = pipe.MergeRight(other)
	require.NoError(t, err)

	other.Append("n")
	got, err := pipe.Apply(collection.List("a"))
	require.NoError(t, err)
	assertCollection(t, collection.List("a", "m"), got)
}

func TestPipelineOptionHooks(t *testing.T) {
	t.Parallel()

	opt := &recordingOption{}
	pipe, err := pipeline.New(opt)
	require.NoError(t, err)
	require.NoError(t, pipe.Chain().Values().Slice(0, pipeline.Some(1), false).Err())

	assert.Equal(t, [][2]string{{"start", "1. values"}, {"1. values", "2. slice"}}, opt.prepared)

	_, err = pipe.Apply(pairs("a", 1, "b", 2, "c", 3))
	require.NoError(t, err)
	assert.Equal(t, []stepOutput{
		{name: "1. values", inputLen: 3, outputLen: 3},
		{name: "2. slice", inputLen: 3, outputLen: 1},
	}, opt.outputs)
	assert.Equal(t, 1, opt.applied)

	require.NoError(t, pipe.Finish())
	assert.Equal(t, 1, opt.finished)
}

func TestPipelineOptionHookErrors(t *testing.T) {
	t.Parallel()

	t.Run("prepare step", func(t *testing.T) {
		t.Parallel()
		opt := &recordingOption{prepareErr: assert.AnError}
		pipe, err := pipeline.New(opt)
		require.NoError(t, err)
		_, err = pipe.Values()
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "unable to prepare step 1. values")
		assert.Equal(t, 0, pipe.Len())
	})

	t.Run("prepare step after an earlier option", func(t *testing.T) {
		t.Parallel()
		first := &recordingOption{}
		last := &recordingOption{prepareErr: assert.AnError}
		pipe, err := pipeline.New(first, last)
		require.NoError(t, err)
		_, err = pipe.Values()
		require.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, [][2]string{{"start", "1. values"}}, first.prepared)
		assert.Equal(t, []string{"1. values"}, first.discarded)
		assert.Empty(t, last.discarded)

		last.prepareErr = nil
		_, err = pipe.Values()
		require.NoError(t, err)
		assert.Equal(t, 1, pipe.Len())
		assert.Equal(t, []string{"1. values"}, first.discarded)
	})

	t.Run("step output", func(t *testing.T) {
		t.Parallel()
		opt := &recordingOption{outputErr: assert.AnError}
		pipe, err := pipeline.New(opt)
		require.NoError(t, err)
		_, err = pipe.Values()
		require.NoError(t, err)
		_, err = pipe.Apply(collection.List(1))
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("after apply", func(t *testing.T) {
		t.Parallel()
		opt := &recordingOption{applyErr: assert.AnError}
		pipe, err := pipeline.New(opt)
		require.NoError(t, err)
		_, err = pipe.Apply(collection.List(1))
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("finish", func(t *testing.T) {
		t.Parallel()
		opt := &recordingOption{finishErr: assert.AnError}
		pipe, err := pipeline.New(opt)
		require.NoError(t, err)
		err = pipe.Finish()
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "unable to finish pipeline option")
	})
}

func TestApplyAll(t *testing.T) {
	t.Parallel()

	opt := &recordingOption{}
	pipe, err := pipeline.New(opt)
	require.NoError(t, err)
	require.NoError(t, pipe.Chain().Reverse(false).Pad(3, 0).Err())

	inputs := make([]*collection.Collection, 20)
	for i := range inputs {
		inputs[i] = collection.List(i, i+1)
	}
	got, err := pipe.ApplyAll(context.Background(), inputs, 4)
	require.NoError(t, err)
	require.Len(t, got, len(inputs))
	for i, out := range got {
		assertCollection(t, collection.List(i+1, i, 0), out)
	}
	assert.Equal(t, len(inputs), opt.applied)
}

func TestApplyAllError(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)
	_, err = pipe.Column(pipeline.Some(collection.Int(0)), pipeline.None[collection.Key]())
	require.NoError(t, err)

	inputs := []*collection.Collection{
		collection.List(collection.List("a")),
		collection.List("not a row"),
	}
	_, err = pipe.ApplyAll(context.Background(), inputs, 0)
	require.ErrorIs(t, err, pipeline.ErrRuntimeLookup)
	assert.Contains(t, err.Error(), "input 1")
}

func TestApplyAllCancelled(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = pipe.ApplyAll(ctx, []*collection.Collection{collection.List(1)}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
