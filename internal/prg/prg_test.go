package prg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dpfpir/block"
)

func mustPRG(t *testing.T, key byte) *PRG {
	t.Helper()
	var k [16]byte
	k[0] = key
	p, err := NewWithKey(k)
	require.NoError(t, err)
	return p
}

func TestEvaluateEmptyIsNoOp(t *testing.T) {
	p := mustPRG(t, 1)
	err := p.Evaluate(nil, nil)
	require.NoError(t, err)
}

func TestEvaluateSizeMismatch(t *testing.T) {
	p := mustPRG(t, 1)
	err := p.Evaluate(make([]block.Block, 2), make([]block.Block, 1))
	require.Error(t, err)
}

func TestEvaluateBatchEqualsSingle(t *testing.T) {
	// PRG batch equivalence (spec.md §8): Evaluate([x]) equals the
	// one-element evaluation for every x.
	p := mustPRG(t, 7)
	inputs := []block.Block{
		{Hi: 0, Lo: 0},
		{Hi: 1, Lo: 2},
		{Hi: 0xdeadbeef, Lo: 0xcafebabe},
	}
	batched := make([]block.Block, len(inputs))
	require.NoError(t, p.Evaluate(inputs, batched))

	for i, x := range inputs {
		single := make([]block.Block, 1)
		require.NoError(t, p.Evaluate([]block.Block{x}, single))
		require.Equal(t, batched[i], single[0])
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	p := mustPRG(t, 42)
	in := []block.Block{{Hi: 1, Lo: 1}}
	out1 := make([]block.Block, 1)
	out2 := make([]block.Block, 1)
	require.NoError(t, p.Evaluate(in, out1))
	require.NoError(t, p.Evaluate(in, out2))
	require.Equal(t, out1, out2)
}

func TestDistinctKeysDiverge(t *testing.T) {
	p1 := mustPRG(t, 1)
	p2 := mustPRG(t, 2)
	in := []block.Block{{Hi: 5, Lo: 9}}
	out1 := make([]block.Block, 1)
	out2 := make([]block.Block, 1)
	require.NoError(t, p1.Evaluate(in, out1))
	require.NoError(t, p2.Evaluate(in, out2))
	require.NotEqual(t, out1, out2)
}
