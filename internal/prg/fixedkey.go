// Package prg implements the fixed-key AES batched hash (spec.md §4.1) and
// the correlation-robust PRG built on top of it (spec.md §4.2).
//
// The teacher (dpf/dpf_utils.go) built its PRG from AES-128-CTR with a
// per-call key and a zero IV. Here the key is fixed once at construction and
// reused across many calls in ECB mode, with the AES block itself acting as
// a keyless random permutation (fixed-key AES as random permutation,
// following the MMO construction this module implements).
package prg

import (
	"crypto/aes"
	"crypto/cipher"

	"dpfpir/block"
	"dpfpir/internal/status"
)

// FixedKeyHash is a batched AES-128 encryptor keyed once at construction and
// reused read-only across many calls (spec.md §4.1, §5 "Shared state").
type FixedKeyHash struct {
	cb cipher.Block
}

// NewFixedKeyHash constructs a FixedKeyHash from a 16-byte AES-128 key.
func NewFixedKeyHash(key [16]byte) (*FixedKeyHash, error) {
	cb, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, status.New(status.Internal, "failed to initialize AES cipher: %v", err)
	}
	return &FixedKeyHash{cb: cb}, nil
}

// Hash sets out[i] = AES-128-Encrypt(key, in[i]) for all i (spec.md §4.1).
// in and out may alias the same backing array element-for-element.
func (h *FixedKeyHash) Hash(in, out []block.Block) error {
	if len(in) != len(out) {
		return status.New(status.InvalidArgument, "prg: len(in)=%d != len(out)=%d", len(in), len(out))
	}
	var buf [block.Size]byte
	for i := range in {
		inBytes := in[i].Bytes()
		h.cb.Encrypt(buf[:], inBytes[:])
		out[i], _ = block.FromBytes(buf[:])
	}
	return nil
}
