package pir

import "dpfpir/block"

// PackSelection packs a dense per-leaf DPF evaluation (one party's share of
// beta*[x==alpha] at every leaf, spec.md §2's "dense selection vector") into
// the bit-packed Block form InnerProduct/InnerProductWith expect. Bit i of
// shares is taken as share[i].LSB() — the standard trick of choosing beta
// with LSB 1 (e.g. block.Block{Lo: 1}) so that XORing the two parties'
// shares' low bits recovers exactly the indicator [x==alpha]. Packing follows
// the same MSB-first Block.Bit convention used for DPF paths (spec.md §3),
// so a single addressing scheme covers both uses of "bit i of a Block".
func PackSelection(shares []block.Block) []Block {
	numBlocks := (len(shares) + bitsPerBlock - 1) / bitsPerBlock
	out := make([]Block, numBlocks)
	for i, s := range shares {
		if !s.LSB() {
			continue
		}
		blockIdx, bitInBlock := i/bitsPerBlock, i%bitsPerBlock
		if bitInBlock < 64 {
			out[blockIdx].Hi |= uint64(1) << uint(63-bitInBlock)
		} else {
			out[blockIdx].Lo |= uint64(1) << uint(63-(bitInBlock-64))
		}
	}
	return out
}
