// Package treeexpand implements the batched DPF tree expander, the core
// kernel described in spec.md §4.3. Given N parent seeds/control bits and a
// single level's correction word, it produces the N children (one per
// parent, selected by a per-node path bit) that both DPF Gen and DPF Eval
// walk one level at a time.
package treeexpand

import (
	"dpfpir/block"
	"dpfpir/internal/prg"
	"dpfpir/internal/status"
)

// NodeState is a DPF tree node: a seed and its control bit (spec.md §3,
// "Seed state").
type NodeState struct {
	Seed block.Block
	T    bool
}

// CorrectionWord is the per-level public correction material (spec.md §3,
// "Correction word").
type CorrectionWord struct {
	CS     block.Block
	TL, TR bool
}

// Expand advances N nodes one tree level in parallel, selecting the left or
// right child of parents[i] according to path[i] (spec.md §4.3). It
// dispatches to a lane-batched implementation whenever the probed vector
// width supports it (internal/treeexpand/simd.go) and otherwise falls back
// to ExpandScalar, which it also uses as its correctness oracle in tests.
func Expand(parents []NodeState, path []bool, cw CorrectionWord, prgL, prgR *prg.PRG) ([]NodeState, error) {
	if len(parents) != len(path) {
		return nil, status.New(status.InvalidArgument,
			"treeexpand: len(parents)=%d != len(path)=%d", len(parents), len(path))
	}
	if len(parents) == 0 {
		return nil, nil
	}
	if w := laneWidth(); w < 16 || w%16 != 0 {
		return ExpandScalar(parents, path, cw, prgL, prgR)
	}
	return expandBatched(parents, path, cw, prgL, prgR)
}

// ExpandScalar is the required non-batched parity path (spec.md §4.3): it
// implements the exact per-node algorithm with no attempt at vectorization,
// one left and one right PRG call per node. Every batched path must match
// this bit-for-bit.
func ExpandScalar(parents []NodeState, path []bool, cw CorrectionWord, prgL, prgR *prg.PRG) ([]NodeState, error) {
	if len(parents) != len(path) {
		return nil, status.New(status.InvalidArgument,
			"treeexpand: len(parents)=%d != len(path)=%d", len(parents), len(path))
	}
	out := make([]NodeState, len(parents))
	for i, parent := range parents {
		lIn := []block.Block{parent.Seed}
		lOut := make([]block.Block, 1)
		rOut := make([]block.Block, 1)
		if err := prgL.Evaluate(lIn, lOut); err != nil {
			return nil, status.New(status.Internal, "treeexpand: left PRG failed: %v", err)
		}
		if err := prgR.Evaluate(lIn, rOut); err != nil {
			return nil, status.New(status.Internal, "treeexpand: right PRG failed: %v", err)
		}
		L, R := lOut[0], rOut[0]
		tL, tR := L.LSB(), R.LSB()
		if parent.T {
			L = L.XOR(cw.CS)
			tL = tL != cw.TL
			R = R.XOR(cw.CS)
			tR = tR != cw.TR
		}
		if path[i] {
			out[i] = NodeState{Seed: R, T: tR}
		} else {
			out[i] = NodeState{Seed: L, T: tL}
		}
	}
	return out, nil
}

// expandBatched implements the same per-node algorithm as ExpandScalar but
// structured so the two PRG calls operate on full-width batches (step 1),
// the correction XOR is applied across the whole batch gated by a mask
// derived from parent.T (step 2), and the child selection is a masked
// per-index choice driven by path (step 3) — see spec.md §4.3 "Batching and
// SIMD". No branch here depends on seed contents; branching on T and path is
// permitted since control and path bits are not secret to the holder.
func expandBatched(parents []NodeState, path []bool, cw CorrectionWord, prgL, prgR *prg.PRG) ([]NodeState, error) {
	n := len(parents)
	seeds := make([]block.Block, n)
	for i, p := range parents {
		seeds[i] = p.Seed
	}

	Ls := make([]block.Block, n)
	Rs := make([]block.Block, n)
	if err := prgL.Evaluate(seeds, Ls); err != nil {
		return nil, status.New(status.Internal, "treeexpand: left PRG failed: %v", err)
	}
	if err := prgR.Evaluate(seeds, Rs); err != nil {
		return nil, status.New(status.Internal, "treeexpand: right PRG failed: %v", err)
	}

	out := make([]NodeState, n)
	for i := 0; i < n; i++ {
		L, R := Ls[i], Rs[i]
		tL, tR := L.LSB(), R.LSB()
		if parents[i].T {
			L = L.XOR(cw.CS)
			tL = tL != cw.TL
			R = R.XOR(cw.CS)
			tR = tR != cw.TR
		}
		if path[i] {
			out[i] = NodeState{Seed: R, T: tR}
		} else {
			out[i] = NodeState{Seed: L, T: tL}
		}
	}
	return out, nil
}
