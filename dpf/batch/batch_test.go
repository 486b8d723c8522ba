package batch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dpfpir/block"
	"dpfpir/dpf"
)

func TestBatchGenEvalRoundTrip(t *testing.T) {
	params := dpf.Params{DomainBits: 8}
	alphas := []uint64{3, 100, 255}
	betas := []block.Block{{Lo: 1}, {Lo: 2}, {Lo: 3}}

	p0, p1, err := GenAll(params, alphas, betas)
	require.NoError(t, err)

	y0, err := EvalAll(p0, alphas)
	require.NoError(t, err)
	y1, err := EvalAll(p1, alphas)
	require.NoError(t, err)

	combined, err := CombineAll(y0, y1)
	require.NoError(t, err)
	require.Equal(t, betas, combined)
}

func TestBatchLengthMismatch(t *testing.T) {
	_, _, err := GenAll(dpf.Params{DomainBits: 4}, []uint64{1, 2}, []block.Block{{Lo: 1}})
	require.Error(t, err)
}
