package carousel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessor_InvalidConfig(t *testing.T) {
	_, err := NewProcessor(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestProcess(t *testing.T) {
	paths := []string{
		writeTempPDF(t, singlePagePDF("alpha")),
		writeTempPDF(t, singlePagePDF("bravo")),
		writeTempPDF(t, singlePagePDF("charlie")),
	}

	p, err := NewProcessor(NewDefaultConfig())
	require.NoError(t, err)

	results, err := p.Process(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 3)

	want := []string{"alpha", "bravo", "charlie"}
	for i, result := range results {
		assert.NoError(t, result.Err)
		assert.Equal(t, paths[i], result.Path)
		assert.Equal(t, want[i], result.Text)
	}
}

func TestProcess_Empty(t *testing.T) {
	p, err := NewProcessor(NewDefaultConfig())
	require.NoError(t, err)

	results, err := p.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProcess_SerializedConcurrency(t *testing.T) {
	paths := []string{
		writeTempPDF(t, singlePagePDF("one")),
		writeTempPDF(t, singlePagePDF("two")),
		writeTempPDF(t, singlePagePDF("three")),
	}

	cfg := NewDefaultConfig()
	cfg.MaxConcurrentDocuments = 1

	p, err := NewProcessor(cfg)
	require.NoError(t, err)

	results, err := p.Process(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 3)

	want := []string{"one", "two", "three"}
	for i, result := range results {
		require.NoError(t, result.Err)
		assert.Equal(t, want[i], result.Text)
	}
}

func TestProcess_OpenFailure(t *testing.T) {
	paths := []string{
		writeTempPDF(t, singlePagePDF("good")),
		"missing.pdf",
	}

	p, err := NewProcessor(NewDefaultConfig())
	require.NoError(t, err)

	results, err := p.Process(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "good", results[0].Text)

	assert.Error(t, results[1].Err)
	assert.Equal(t, "missing.pdf", results[1].Path)
}

func TestProcess_StrictBrokenPage(t *testing.T) {
	path := writeTempPDF(t, brokenPagePDF())

	cfg := NewDefaultConfig()
	cfg.Mode = ModeStrict

	p, err := NewProcessor(cfg)
	require.NoError(t, err)

	results, err := p.Process(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "page 2")
	assert.Empty(t, results[0].Text)
}

func TestProcess_BestEffortBrokenPage(t *testing.T) {
	path := writeTempPDF(t, brokenPagePDF())

	p, err := NewProcessor(NewDefaultConfig())
	require.NoError(t, err)

	results, err := p.Process(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	require.NoError(t, result.Err)
	assert.Equal(t, "First\n\nThird", result.Text)

	require.Len(t, result.PageErrors, 1)
	assert.Error(t, result.PageErrors[2])
}

func TestProcess_CancelledContext(t *testing.T) {
	paths := []string{
		writeTempPDF(t, singlePagePDF("a")),
		writeTempPDF(t, singlePagePDF("b")),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := NewProcessor(NewDefaultConfig())
	require.NoError(t, err)

	results, err := p.Process(ctx, paths)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	require.Len(t, results, 2)
	for i, result := range results {
		assert.ErrorIs(t, result.Err, context.Canceled)
		assert.Equal(t, paths[i], result.Path)
	}
}

func TestProcessStream(t *testing.T) {
	paths := []string{
		writeTempPDF(t, singlePagePDF("first")),
		writeTempPDF(t, singlePagePDF("second")),
		writeTempPDF(t, singlePagePDF("third")),
	}

	p, err := NewProcessor(NewDefaultConfig())
	require.NoError(t, err)

	var results []Result
	for result := range p.ProcessStream(context.Background(), paths) {
		results = append(results, result)
	}
	require.Len(t, results, 3)

	// Results arrive in input order regardless of completion order.
	want := []string{"first", "second", "third"}
	for i, result := range results {
		require.NoError(t, result.Err)
		assert.Equal(t, paths[i], result.Path)
		assert.Equal(t, want[i], result.Text)
	}
}

func TestEmitInOrder(t *testing.T) {
	in := make(chan indexedResult, 3)
	in <- indexedResult{index: 2, result: Result{Path: "c"}}
	in <- indexedResult{index: 0, result: Result{Path: "a"}}
	in <- indexedResult{index: 1, result: Result{Path: "b"}}
	close(in)

	out := make(chan Result, 3)
	emitInOrder(in, out)
	close(out)

	var paths []string
	for result := range out {
		paths = append(paths, result.Path)
	}
	assert.Equal(t, []string{"a", "b", "c"}, paths)
}
