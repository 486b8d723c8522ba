package dpf

import (
	"dpfpir/block"
	"dpfpir/internal/prg"
	"dpfpir/internal/status"
	"dpfpir/internal/treeexpand"
)

const (
	// Alice and Bob are the two party IDs, matching the teacher's naming in
	// dpf/2018_boyle_optimization/optreedpf.go.
	Alice uint8 = 0
	Bob   uint8 = 1
)

// Gen produces two keys k0, k1 such that for all leaves x,
// Eval(k0, x) XOR Eval(k1, x) = beta if x == alpha, else the zero block
// (spec.md §4.4). It runs the tree expander forward one level at a time,
// deriving each level's correction word from the two parties' current seeds
// and the known next bit of alpha, following the structure of the teacher's
// optreedpf.go Gen (replacing its AES-CTR PRG and secp256k1-field final
// step with the spec's AES-ECB-MMO PRG and a plain XOR-group final
// correction word).
func Gen(params Params, alpha uint64, beta block.Block) (k0, k1 Key, err error) {
	if params.DomainBits <= 0 || params.DomainBits > 63 {
		return Key{}, Key{}, status.New(status.InvalidArgument, "dpf: DomainBits must be in [1, 63], got %d", params.DomainBits)
	}
	if alpha>>uint(params.DomainBits) != 0 {
		return Key{}, Key{}, status.New(status.InvalidArgument, "dpf: alpha=%d does not fit in %d bits", alpha, params.DomainBits)
	}
	prgL, prgR, err := prg.DefaultPair()
	if err != nil {
		return Key{}, Key{}, status.New(status.Internal, "dpf: failed to initialize PRGs: %v", err)
	}

	path := block.FromUint64Path(alpha, params.DomainBits)

	s0, err := block.Random()
	if err != nil {
		return Key{}, Key{}, status.New(status.Internal, "dpf: failed to sample seed: %v", err)
	}
	s1, err := block.Random()
	if err != nil {
		return Key{}, Key{}, status.New(status.Internal, "dpf: failed to sample seed: %v", err)
	}

	rootSeed0, rootSeed1 := s0, s1
	t0, t1 := false, true

	cws := make([]CorrectionWord, params.DomainBits)
	for level := 0; level < params.DomainBits; level++ {
		l0, r0, tl0, tr0, err := splitBoth(prgL, prgR, s0)
		if err != nil {
			return Key{}, Key{}, err
		}
		l1, r1, tl1, tr1, err := splitBoth(prgL, prgR, s1)
		if err != nil {
			return Key{}, Key{}, err
		}

		aBit := path[level]

		tlCW := tl0 != tl1 != aBit != true // XOR(tl0,tl1,aBit,1)
		trCW := tr0 != tr1 != aBit
		sCW := loseSeed(aBit, l0, r0).XOR(loseSeed(aBit, l1, r1))

		var keepL0, keepL1 block.Block
		var tKeep0, tKeep1, tcwKeep bool
		if aBit {
			// alpha bit is 1: keep the right child, lose the left.
			keepL0, keepL1 = r0, r1
			tKeep0, tKeep1 = tr0, tr1
			tcwKeep = trCW
		} else {
			keepL0, keepL1 = l0, l1
			tKeep0, tKeep1 = tl0, tl1
			tcwKeep = tlCW
		}

		cws[level] = CorrectionWord{CS: sCW, TL: tlCW, TR: trCW}

		if t0 {
			s0 = keepL0.XOR(sCW)
			t0 = tKeep0 != tcwKeep
		} else {
			s0 = keepL0
			t0 = tKeep0
		}
		if t1 {
			s1 = keepL1.XOR(sCW)
			t1 = tKeep1 != tcwKeep
		} else {
			s1 = keepL1
			t1 = tKeep1
		}
	}

	finalCW := beta.XOR(s0).XOR(s1)

	k0 = Key{PartyID: Alice, DomainBits: params.DomainBits, RootSeed: rootSeed0, RootT: false, CW: cws, FinalCW: finalCW}
	k1 = Key{PartyID: Bob, DomainBits: params.DomainBits, RootSeed: rootSeed1, RootT: true, CW: cws, FinalCW: finalCW}
	return k0, k1, nil
}

// loseSeed picks the lost child's seed: if aBit (we're keeping right), the
// lost seed is the left child, and vice versa.
func loseSeed(aBit bool, l, r block.Block) block.Block {
	if aBit {
		return l
	}
	return r
}

// splitBoth expands seed s with both the left and right fixed-key PRGs,
// returning the two child seeds and their control bits.
func splitBoth(prgL, prgR *prg.PRG, s block.Block) (l, r block.Block, tl, tr bool, err error) {
	in := []block.Block{s}
	lOut := make([]block.Block, 1)
	rOut := make([]block.Block, 1)
	if err := prgL.Evaluate(in, lOut); err != nil {
		return block.Block{}, block.Block{}, false, false, status.New(status.Internal, "dpf: left PRG failed: %v", err)
	}
	if err := prgR.Evaluate(in, rOut); err != nil {
		return block.Block{}, block.Block{}, false, false, status.New(status.Internal, "dpf: right PRG failed: %v", err)
	}
	return lOut[0], rOut[0], lOut[0].LSB(), rOut[0].LSB(), nil
}

// Eval re-runs the expander for party k's share along the path x, returning
// the leaf value (spec.md §4.4).
func Eval(k Key, x uint64) (block.Block, error) {
	if x>>uint(k.DomainBits) != 0 {
		return block.Block{}, status.New(status.InvalidArgument, "dpf: x=%d does not fit in %d bits", x, k.DomainBits)
	}
	prgL, prgR, err := prg.DefaultPair()
	if err != nil {
		return block.Block{}, status.New(status.Internal, "dpf: failed to initialize PRGs: %v", err)
	}
	path := block.FromUint64Path(x, k.DomainBits)

	state := treeexpand.NodeState{Seed: k.RootSeed, T: k.RootT}
	for level := 0; level < k.DomainBits; level++ {
		next, err := treeexpand.ExpandScalar(
			[]treeexpand.NodeState{state}, []bool{path[level]}, k.CW[level], prgL, prgR)
		if err != nil {
			return block.Block{}, status.New(status.Internal, "dpf: tree expansion failed: %v", err)
		}
		state = next[0]
	}
	value := state.Seed
	if state.T {
		value = value.XOR(k.FinalCW)
	}
	return value, nil
}

// BatchEval evaluates many x in parallel, calling the tree expander with
// full-width batches at each level instead of re-walking the tree once per
// x (spec.md §4.4, "A batched variant ... must call the tree expander with
// full-width batches whenever possible").
func BatchEval(k Key, xs []uint64) ([]block.Block, error) {
	if len(xs) == 0 {
		return nil, nil
	}
	prgL, prgR, err := prg.DefaultPair()
	if err != nil {
		return nil, status.New(status.Internal, "dpf: failed to initialize PRGs: %v", err)
	}

	n := len(xs)
	states := make([]treeexpand.NodeState, n)
	for i := range states {
		states[i] = treeexpand.NodeState{Seed: k.RootSeed, T: k.RootT}
	}
	paths := make([][]bool, n)
	for i, x := range xs {
		if x>>uint(k.DomainBits) != 0 {
			return nil, status.New(status.InvalidArgument, "dpf: x=%d does not fit in %d bits", x, k.DomainBits)
		}
		paths[i] = block.FromUint64Path(x, k.DomainBits)
	}

	for level := 0; level < k.DomainBits; level++ {
		levelPath := make([]bool, n)
		for i := range xs {
			levelPath[i] = paths[i][level]
		}
		next, err := treeexpand.Expand(states, levelPath, k.CW[level], prgL, prgR)
		if err != nil {
			return nil, status.New(status.Internal, "dpf: tree expansion failed: %v", err)
		}
		states = next
	}

	out := make([]block.Block, n)
	for i, state := range states {
		if state.T {
			out[i] = state.Seed.XOR(k.FinalCW)
		} else {
			out[i] = state.Seed
		}
	}
	return out, nil
}

// FullEval walks every leaf of the tree once, producing a dense vector of
// length 2^DomainBits. This is the "Eval over the whole domain" path the
// PIR data flow in spec.md §2 describes: each server runs DPF Eval over its
// domain to produce a dense selection vector.
func FullEval(k Key) ([]block.Block, error) {
	if k.DomainBits < 0 || k.DomainBits > 24 {
		return nil, status.New(status.InvalidArgument,
			"dpf: FullEval domain of 2^%d leaves is too large for in-memory enumeration", k.DomainBits)
	}
	domainSize := uint64(1) << uint(k.DomainBits)
	xs := make([]uint64, domainSize)
	for i := range xs {
		xs[i] = uint64(i)
	}
	return BatchEval(k, xs)
}

// Combine XORs two partial evaluations together to recover beta*[x==alpha]
// (spec.md §2: "client XORs the two responses").
func Combine(y0, y1 block.Block) block.Block {
	return y0.XOR(y1)
}
