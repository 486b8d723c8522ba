// Package batch bundles several independent single-point DPF queries into
// one client round trip.
//
// This is adapted from the teacher's dspf package (dspf/dspf.go), which
// builds a Distributed Sum Of Point Functions: N point queries combined so
// that evaluating the bundle at x sums every DPF's contribution into one
// result, under the constraint that at most one of the N special points may
// be non-zero at a time. spec.md's PIR data flow has no use for that sum
// constraint — a client fetching several database records in one request
// wants N independent answers back, not their sum, and the records it picks
// need not be distinct in any special way. So KeySet here holds N
// independent dpf.Key values and EvalAll returns N independent outputs
// (dropping the teacher's "exactly one non-zero point" invariant and its
// CombineResults sum-with-duplicate-detection logic, which would silently
// break correctness for any query batch containing more than one lookup).
package batch

import (
	"dpfpir/block"
	"dpfpir/dpf"
	"dpfpir/internal/status"
)

// KeySet holds the per-party keys for a batch of independent point queries.
type KeySet struct {
	Keys []dpf.Key
}

// GenAll runs dpf.Gen once per (alpha, beta) pair and bundles the resulting
// keys for each party.
func GenAll(params dpf.Params, alphas []uint64, betas []block.Block) (party0, party1 KeySet, err error) {
	if len(alphas) != len(betas) {
		return KeySet{}, KeySet{}, status.New(status.InvalidArgument,
			"batch: len(alphas)=%d != len(betas)=%d", len(alphas), len(betas))
	}
	party0.Keys = make([]dpf.Key, len(alphas))
	party1.Keys = make([]dpf.Key, len(alphas))
	for i := range alphas {
		k0, k1, err := dpf.Gen(params, alphas[i], betas[i])
		if err != nil {
			return KeySet{}, KeySet{}, err
		}
		party0.Keys[i] = k0
		party1.Keys[i] = k1
	}
	return party0, party1, nil
}

// EvalAll evaluates every key in the set at its own query point, returning
// one output per key.
func EvalAll(ks KeySet, xs []uint64) ([]block.Block, error) {
	if len(xs) != len(ks.Keys) {
		return nil, status.New(status.InvalidArgument,
			"batch: len(xs)=%d != len(keys)=%d", len(xs), len(ks.Keys))
	}
	out := make([]block.Block, len(ks.Keys))
	for i, k := range ks.Keys {
		y, err := dpf.Eval(k, xs[i])
		if err != nil {
			return nil, err
		}
		out[i] = y
	}
	return out, nil
}

// CombineAll XORs together the two parties' per-query outputs.
func CombineAll(y0, y1 []block.Block) ([]block.Block, error) {
	if len(y0) != len(y1) {
		return nil, status.New(status.InvalidArgument,
			"batch: len(y0)=%d != len(y1)=%d", len(y0), len(y1))
	}
	out := make([]block.Block, len(y0))
	for i := range y0 {
		out[i] = dpf.Combine(y0[i], y1[i])
	}
	return out, nil
}
