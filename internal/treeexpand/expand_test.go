package treeexpand

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dpfpir/block"
	"dpfpir/internal/prg"
)

func testPRGs(t *testing.T) (*prg.PRG, *prg.PRG) {
	t.Helper()
	var kl, kr [16]byte
	kl[0], kr[0] = 0xAA, 0xBB
	pl, err := prg.NewWithKey(kl)
	require.NoError(t, err)
	pr, err := prg.NewWithKey(kr)
	require.NoError(t, err)
	return pl, pr
}

// TestExpandParity is the universal invariant from spec.md §8: for all
// valid (N, seeds, control bits, paths, correction words) the batched
// expander's output equals the scalar expander's output bit-for-bit.
func TestExpandParity(t *testing.T) {
	prgL, prgR := testPRGs(t)
	const n = 123
	parents := make([]NodeState, n)
	path := make([]bool, n)
	for i := 0; i < n; i++ {
		parents[i] = NodeState{
			Seed: block.Block{Hi: uint64(i), Lo: uint64(i + 1)},
			T:    i%7 == 0,
		}
		path[i] = (23*i+42)%2 == 0
	}
	cw := CorrectionWord{
		CS: block.Block{Hi: 1, Lo: 0},
		TL: 23%23 == 0,
		TR: 42%42 != 0,
	}

	scalar, err := ExpandScalar(parents, path, cw, prgL, prgR)
	require.NoError(t, err)
	batched, err := expandBatched(parents, path, cw, prgL, prgR)
	require.NoError(t, err)
	require.Equal(t, scalar, batched)

	dispatched, err := Expand(parents, path, cw, prgL, prgR)
	require.NoError(t, err)
	require.Equal(t, scalar, dispatched)
}

func TestExpandEmpty(t *testing.T) {
	prgL, prgR := testPRGs(t)
	out, err := Expand(nil, nil, CorrectionWord{}, prgL, prgR)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestExpandSizeMismatch(t *testing.T) {
	prgL, prgR := testPRGs(t)
	_, err := Expand(make([]NodeState, 2), make([]bool, 1), CorrectionWord{}, prgL, prgR)
	require.Error(t, err)
}

func TestControlBitsStayBoolean(t *testing.T) {
	prgL, prgR := testPRGs(t)
	parents := []NodeState{{Seed: block.Block{Hi: 1, Lo: 2}, T: true}}
	path := []bool{false}
	cw := CorrectionWord{CS: block.Block{Hi: 9, Lo: 9}, TL: true, TR: false}
	out, err := ExpandScalar(parents, path, cw, prgL, prgR)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Contains(t, []bool{true, false}, out[0].T)
}
