package prg

import (
	"dpfpir/block"
	"dpfpir/internal/status"
)

// PRG is the correlation-robust pseudorandom generator
//
//	F_k(x) = pi_k(sigma(x)) XOR sigma(x)
//
// where sigma(h, l) = (h^l, h) is the linear orthomorphism defined in
// block.Sigma. This is the MMO construction referenced in spec.md §4.2
// (eprint 2019/074, pp. 18-19). pi_k is realized by one fixed-key AES
// permutation (FixedKeyHash).
type PRG struct {
	hash *FixedKeyHash
}

// New wraps a FixedKeyHash into a correlation-robust PRG.
func New(hash *FixedKeyHash) *PRG {
	return &PRG{hash: hash}
}

// NewWithKey is a convenience constructor combining FixedKeyHash
// construction and New.
func NewWithKey(key [16]byte) (*PRG, error) {
	h, err := NewFixedKeyHash(key)
	if err != nil {
		return nil, err
	}
	return New(h), nil
}

// Evaluate computes sigma(in[i]) into scratch, runs the fixed-key AES hash,
// then XORs sigma back in place into out[i] (spec.md §4.2). Empty input is a
// valid no-op.
func (p *PRG) Evaluate(in, out []block.Block) error {
	if len(in) != len(out) {
		return status.New(status.InvalidArgument, "prg: len(in)=%d != len(out)=%d", len(in), len(out))
	}
	if len(in) == 0 {
		return nil
	}
	sigmaIn := make([]block.Block, len(in))
	for i, x := range in {
		sigmaIn[i] = block.Sigma(x)
	}
	if err := p.hash.Hash(sigmaIn, out); err != nil {
		return status.New(status.Internal, "prg: underlying AES hash failed: %v", err)
	}
	for i := range out {
		out[i] = out[i].XOR(sigmaIn[i])
	}
	return nil
}
