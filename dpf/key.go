// Package dpf implements the two-party Distributed Point Function key API
// described in spec.md §4.4: Gen produces two keys that XOR-evaluate to the
// point function f_{alpha,beta}, Eval (and its batched/full-domain variants)
// re-runs the tree expander along a path for one party's share.
package dpf

import (
	"bytes"
	"encoding/binary"

	"dpfpir/block"
	"dpfpir/internal/status"
	"dpfpir/internal/treeexpand"
)

// CorrectionWord is re-exported from treeexpand: Eval and BatchEval walk the
// tree one level at a time through the treeexpand kernel (ExpandScalar and
// Expand respectively), so the wire shape of a DPF key's per-level
// correction word is exactly the kernel's CorrectionWord.
type CorrectionWord = treeexpand.CorrectionWord

// Params holds the configuration passed at the API boundary (spec.md §6,
// "Configuration surface"): a plain value struct, no persisted state, no
// environment variables.
type Params struct {
	// DomainBits is log2 of the domain size (spec.md's "ell").
	DomainBits int
}

// Key is a value type: root seed, root control bit, and a vector of
// per-level correction words of length DomainBits, plus the final
// correction word that hides beta (spec.md §3, "Lifecycle").
type Key struct {
	PartyID    uint8
	DomainBits int
	RootSeed   block.Block
	RootT      bool
	CW         []CorrectionWord
	FinalCW    block.Block
}

// MarshalBinary serializes the key as a length-prefixed sequence of
// correction-word entries plus the root seed and root control bit, per
// spec.md §6. The byte layout is:
//
//	1 byte   PartyID
//	4 bytes  DomainBits (big-endian uint32) -- doubles as the length prefix
//	         for the CW entries that follow
//	16 bytes RootSeed
//	1 byte   RootT (0 or 1)
//	DomainBits * (16 + 1 + 1) bytes -- one (CS, TL, TR) entry per level
//	16 bytes FinalCW
func (k *Key) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(k.PartyID)

	var domainBitsBuf [4]byte
	binary.BigEndian.PutUint32(domainBitsBuf[:], uint32(k.DomainBits))
	buf.Write(domainBitsBuf[:])

	rootSeedBytes := k.RootSeed.Bytes()
	buf.Write(rootSeedBytes[:])
	buf.WriteByte(boolByte(k.RootT))

	if len(k.CW) != k.DomainBits {
		return nil, status.New(status.InvalidArgument,
			"dpf: key has %d correction words, want %d", len(k.CW), k.DomainBits)
	}
	for _, cw := range k.CW {
		csBytes := cw.CS.Bytes()
		buf.Write(csBytes[:])
		buf.WriteByte(boolByte(cw.TL))
		buf.WriteByte(boolByte(cw.TR))
	}

	finalBytes := k.FinalCW.Bytes()
	buf.Write(finalBytes[:])

	return buf.Bytes(), nil
}

// UnmarshalBinary parses the layout documented on MarshalBinary.
func (k *Key) UnmarshalBinary(data []byte) error {
	const headerLen = 1 + 4 + block.Size + 1
	if len(data) < headerLen {
		return status.New(status.InvalidArgument, "dpf: key too short: %d bytes", len(data))
	}
	r := bytes.NewReader(data)

	partyID, _ := r.ReadByte()

	var domainBitsBuf [4]byte
	if _, err := r.Read(domainBitsBuf[:]); err != nil {
		return status.New(status.InvalidArgument, "dpf: failed to read domain bits: %v", err)
	}
	domainBits := int(binary.BigEndian.Uint32(domainBitsBuf[:]))

	var rootSeedBuf [block.Size]byte
	if _, err := r.Read(rootSeedBuf[:]); err != nil {
		return status.New(status.InvalidArgument, "dpf: failed to read root seed: %v", err)
	}
	rootSeed, err := block.FromBytes(rootSeedBuf[:])
	if err != nil {
		return status.New(status.Internal, "dpf: %v", err)
	}
	rootTByte, err := r.ReadByte()
	if err != nil {
		return status.New(status.InvalidArgument, "dpf: failed to read root control bit: %v", err)
	}

	const entryLen = block.Size + 1 + 1
	wantLen := headerLen + domainBits*entryLen + block.Size
	if len(data) != wantLen {
		return status.New(status.InvalidArgument,
			"dpf: key has %d bytes, want %d for domainBits=%d", len(data), wantLen, domainBits)
	}

	cws := make([]CorrectionWord, domainBits)
	for i := 0; i < domainBits; i++ {
		var csBuf [block.Size]byte
		if _, err := r.Read(csBuf[:]); err != nil {
			return status.New(status.InvalidArgument, "dpf: failed to read CW[%d].CS: %v", i, err)
		}
		cs, err := block.FromBytes(csBuf[:])
		if err != nil {
			return status.New(status.Internal, "dpf: %v", err)
		}
		tl, err := r.ReadByte()
		if err != nil {
			return status.New(status.InvalidArgument, "dpf: failed to read CW[%d].TL: %v", i, err)
		}
		tr, err := r.ReadByte()
		if err != nil {
			return status.New(status.InvalidArgument, "dpf: failed to read CW[%d].TR: %v", i, err)
		}
		cws[i] = CorrectionWord{CS: cs, TL: tl != 0, TR: tr != 0}
	}

	var finalBuf [block.Size]byte
	if _, err := r.Read(finalBuf[:]); err != nil {
		return status.New(status.InvalidArgument, "dpf: failed to read final CW: %v", err)
	}
	finalCW, err := block.FromBytes(finalBuf[:])
	if err != nil {
		return status.New(status.Internal, "dpf: %v", err)
	}

	k.PartyID = partyID
	k.DomainBits = domainBits
	k.RootSeed = rootSeed
	k.RootT = rootTByte != 0
	k.CW = cws
	k.FinalCW = finalCW
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
