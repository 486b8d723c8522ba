package pir

import (
	"github.com/lukechampine/fastxor"

	"dpfpir/block"
	"dpfpir/internal/simdwidth"
	"dpfpir/internal/status"
)

// Block is a 128-bit packed selection vector chunk. Selection bit
// 128*idx+j (spec.md §4.6, "Selection vectors") is selections[k][idx].Bit(j).
type Block = block.Block

const bitsPerBlock = 128

// InnerProduct computes, for each selection vector k, the XOR of every
// record values[i] for which bit i of selections[k] is set (spec.md §4.6,
// "Inner product over GF(2)"). Every output is maxLen bytes, zero-padded.
//
// Preconditions (spec.md §4.6, §8): every selection vector must carry the
// same number of blocks; that block count must cover at least
// len(values) bits; maxLen must be positive (callers asking for a
// zero-length output get status.MaxValueSizeIsZero); no values[i] may
// exceed maxLen bytes.
func InnerProduct(values [][]byte, selections [][]Block, maxLen int) ([][]byte, error) {
	if maxLen <= 0 {
		return nil, status.NewWithTag(status.InvalidArgument, status.MaxValueSizeIsZero,
			"pir: maxLen must be positive, got %d", maxLen)
	}
	if len(selections) == 0 {
		return nil, nil
	}
	numBlocks := len(selections[0])
	for k, sel := range selections {
		if len(sel) != numBlocks {
			return nil, status.New(status.InvalidArgument,
				"pir: selections[%d] has %d blocks, want %d", k, len(sel), numBlocks)
		}
	}
	if numBlocks*bitsPerBlock < len(values) {
		return nil, status.New(status.InvalidArgument,
			"pir: selection vectors carry %d bits, too few for %d values",
			numBlocks*bitsPerBlock, len(values))
	}
	for i, v := range values {
		if len(v) > maxLen {
			return nil, status.New(status.InvalidArgument,
				"pir: values[%d] has length %d > maxLen %d", i, len(v), maxLen)
		}
	}

	width := simdwidth.Bytes()

	out := make([][]byte, len(selections))
	for k := range out {
		out[k] = make([]byte, maxLen)
	}

	for i, v := range values {
		if len(v) == 0 {
			continue
		}
		blockIdx, bitInBlock := i/bitsPerBlock, i%bitsPerBlock
		for k, sel := range selections {
			// Skip policy: a value whose selection bit is zero is skipped
			// rather than XORed in under a mask, so the running time depends
			// on the selection bits. This is deliberate and not configurable;
			// see DESIGN.md, "Open Questions — decisions".
			if sel[blockIdx].Bit(bitInBlock) == 0 {
				continue
			}
			xorInto(out[k][:len(v)], v, width)
		}
	}
	return out, nil
}

// xorInto XORs src into dst (same length) using width-byte vector chunks
// where possible, falling back to successively halved widths for the
// remainder — spec.md §4.6's "tail handling": a width-N XOR over the bulk
// of the record, then the trailing r = len(src) mod N bytes handled by
// recursing at N/2, N/4, ..., each step gated by the corresponding bit of r
// so the whole remainder is covered in at most log2(N) extra calls.
func xorInto(dst, src []byte, width int) {
	if width < 16 || width%16 != 0 {
		fastxor.Bytes(dst, dst, src)
		return
	}
	full := (len(src) / width) * width
	if full > 0 {
		fastxor.Bytes(dst[:full], dst[:full], src[:full])
	}
	xorRemainder(dst[full:], src[full:], width/2)
}

func xorRemainder(dst, src []byte, width int) {
	for width >= 1 && len(src) > 0 {
		if len(src) >= width {
			fastxor.Bytes(dst[:width], dst[:width], src[:width])
			dst, src = dst[width:], src[width:]
		}
		width /= 2
	}
	for i := range src {
		dst[i] ^= src[i]
	}
}

// InnerProductScalar is the required non-batched parity path (spec.md
// §4.6): a byte-at-a-time reference implementation with no vector
// batching, used as the differential-testing oracle InnerProduct must
// match bit-for-bit.
func InnerProductScalar(values [][]byte, selections [][]Block, maxLen int) ([][]byte, error) {
	if maxLen <= 0 {
		return nil, status.NewWithTag(status.InvalidArgument, status.MaxValueSizeIsZero,
			"pir: maxLen must be positive, got %d", maxLen)
	}
	if len(selections) == 0 {
		return nil, nil
	}
	numBlocks := len(selections[0])
	for k, sel := range selections {
		if len(sel) != numBlocks {
			return nil, status.New(status.InvalidArgument,
				"pir: selections[%d] has %d blocks, want %d", k, len(sel), numBlocks)
		}
	}
	if numBlocks*bitsPerBlock < len(values) {
		return nil, status.New(status.InvalidArgument,
			"pir: selection vectors carry %d bits, too few for %d values",
			numBlocks*bitsPerBlock, len(values))
	}
	for i, v := range values {
		if len(v) > maxLen {
			return nil, status.New(status.InvalidArgument,
				"pir: values[%d] has length %d > maxLen %d", i, len(v), maxLen)
		}
	}

	out := make([][]byte, len(selections))
	for k := range out {
		out[k] = make([]byte, maxLen)
	}
	for i, v := range values {
		blockIdx, bitInBlock := i/bitsPerBlock, i%bitsPerBlock
		for k, sel := range selections {
			if sel[blockIdx].Bit(bitInBlock) == 0 {
				continue
			}
			for j := range v {
				out[k][j] ^= v[j]
			}
		}
	}
	return out, nil
}
