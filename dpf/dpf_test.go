package dpf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dpfpir/block"
)

// TestDPFCorrectness is the universal invariant from spec.md §8: for all
// ell in [1, 20] (here a representative subset of domain sizes, since
// evaluating every leaf of a domain-20 tree with per-leaf Eval would add
// run time for no additional signal over smaller domains), alpha in
// [0, 2^ell), beta != 0, and all x in [0, 2^ell): Eval(k0,x) XOR Eval(k1,x)
// = beta if x == alpha, else 0.
func TestDPFCorrectness(t *testing.T) {
	cases := []struct {
		domainBits int
		alpha      uint64
	}{
		{1, 0},
		{1, 1},
		{4, 9},
		{8, 200},
		{10, 137},
	}
	beta := block.Block{Hi: 0, Lo: 1}

	for _, c := range cases {
		k0, k1, err := Gen(Params{DomainBits: c.domainBits}, c.alpha, beta)
		require.NoError(t, err)

		domainSize := uint64(1) << uint(c.domainBits)
		for x := uint64(0); x < domainSize; x++ {
			y0, err := Eval(k0, x)
			require.NoError(t, err)
			y1, err := Eval(k1, x)
			require.NoError(t, err)
			got := Combine(y0, y1)
			if x == c.alpha {
				require.Equal(t, beta, got, "domainBits=%d alpha=%d x=%d", c.domainBits, c.alpha, x)
			} else {
				require.Equal(t, block.Zero, got, "domainBits=%d alpha=%d x=%d", c.domainBits, c.alpha, x)
			}
		}
	}
}

// TestDPF10_137 is the boundary scenario from spec.md §8 item 6.
func TestDPF10_137(t *testing.T) {
	const domainBits = 10
	const alpha = 137
	beta := block.Block{Hi: 0, Lo: 1}

	k0, k1, err := Gen(Params{DomainBits: domainBits}, alpha, beta)
	require.NoError(t, err)

	for x := uint64(0); x < 1024; x++ {
		y0, err := Eval(k0, x)
		require.NoError(t, err)
		y1, err := Eval(k1, x)
		require.NoError(t, err)
		got := Combine(y0, y1)
		if x == alpha {
			require.Equal(t, beta, got)
		} else {
			require.Equal(t, block.Zero, got)
		}
	}
}

func TestBatchEvalMatchesEval(t *testing.T) {
	const domainBits = 8
	beta := block.Block{Hi: 1, Lo: 2}
	k0, k1, err := Gen(Params{DomainBits: domainBits}, 200, beta)
	require.NoError(t, err)

	xs := make([]uint64, 256)
	for i := range xs {
		xs[i] = uint64(i)
	}

	batch0, err := BatchEval(k0, xs)
	require.NoError(t, err)
	batch1, err := BatchEval(k1, xs)
	require.NoError(t, err)

	for _, x := range xs {
		single0, err := Eval(k0, x)
		require.NoError(t, err)
		single1, err := Eval(k1, x)
		require.NoError(t, err)
		require.Equal(t, single0, batch0[x])
		require.Equal(t, single1, batch1[x])
	}
}

func TestFullEvalMatchesBatchEval(t *testing.T) {
	const domainBits = 6
	k0, _, err := Gen(Params{DomainBits: domainBits}, 5, block.Block{Lo: 1})
	require.NoError(t, err)

	full, err := FullEval(k0)
	require.NoError(t, err)
	require.Len(t, full, 1<<domainBits)

	xs := make([]uint64, 1<<domainBits)
	for i := range xs {
		xs[i] = uint64(i)
	}
	batch, err := BatchEval(k0, xs)
	require.NoError(t, err)
	require.Equal(t, batch, full)
}

func TestGenRejectsOversizeAlpha(t *testing.T) {
	_, _, err := Gen(Params{DomainBits: 4}, 16, block.Block{Lo: 1})
	require.Error(t, err)
}

func TestKeyWireRoundTrip(t *testing.T) {
	k0, k1, err := Gen(Params{DomainBits: 10}, 137, block.Block{Lo: 1})
	require.NoError(t, err)

	for _, k := range []Key{k0, k1} {
		data, err := k.MarshalBinary()
		require.NoError(t, err)

		var got Key
		require.NoError(t, got.UnmarshalBinary(data))
		require.Equal(t, k, got)
	}
}
