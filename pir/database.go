// Package pir implements the dense PIR database storage (spec.md §4.5) and
// the SIMD inner-product engine it delegates queries to (spec.md §4.6).
package pir

import (
	"golang.org/x/exp/constraints"

	"dpfpir/internal/status"
)

const blockSize = 16 // bytes; spec.md §3's 128-bit block.

// alignUp rounds n up to the next multiple of 16 bytes. Generic over any
// integer type following the constraint idiom SnellerInc-sneller's
// internal/aes/hash.go uses around its AES hash API, so callers can align
// either plain ints (record lengths) or other integer-typed sizes without a
// second copy of this arithmetic.
func alignUp[T constraints.Integer](n T) T {
	return (n + blockSize - 1) &^ (blockSize - 1)
}

// Offset records where record i's unpadded bytes start inside Database.buffer
// and how long it is (spec.md §3, "Dense database").
type Offset struct {
	StartByte int
	ByteLen   int
}

// Builder collects records by reference and, on Build, lays them out in a
// single pre-sized buffer (spec.md §4.5, "Builder contract").
type Builder struct {
	records           [][]byte
	totalAlignedBytes int
	built             bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Insert appends a record to the builder. A zero-length record is valid.
func (b *Builder) Insert(record []byte) (*Builder, error) {
	if b.built {
		return b, status.New(status.FailedPrecondition, "pir: builder already built")
	}
	b.records = append(b.records, record)
	b.totalAlignedBytes += alignUp(len(record))
	return b, nil
}

// Clone returns a Builder equivalent in all accumulated state (spec.md
// §4.5).
func (b *Builder) Clone() *Builder {
	records := make([][]byte, len(b.records))
	copy(records, b.records)
	return &Builder{
		records:           records,
		totalAlignedBytes: b.totalAlignedBytes,
		built:             b.built,
	}
}

// Build finalizes the builder into an immutable Database. A second call
// fails with FailedPrecondition (spec.md §4.5, §8 "Build-once").
func (b *Builder) Build() (*Database, error) {
	if b.built {
		return nil, status.New(status.FailedPrecondition, "pir: database already built")
	}
	b.built = true

	buffer := make([]byte, 0, b.totalAlignedBytes)
	offsets := make([]Offset, len(b.records))
	views := make([][]byte, len(b.records))
	maxLen := 0

	for i, record := range b.records {
		startByte := len(buffer)
		paddedLen := alignUp(len(record))

		oldCap := cap(buffer)
		buffer = append(buffer, record...)
		if paddedLen > len(record) {
			buffer = append(buffer, make([]byte, paddedLen-len(record))...)
		}
		if cap(buffer) != oldCap {
			// The size formula above is wrong if this ever triggers: we
			// precomputed totalAlignedBytes to make this impossible
			// (spec.md §4.5, "Appending invariant").
			return nil, status.New(status.Internal, "pir: buffer was reallocated unexpectedly")
		}

		offsets[i] = Offset{StartByte: startByte, ByteLen: len(record)}
		if len(record) > maxLen {
			maxLen = len(record)
		}
	}

	for i, off := range offsets {
		views[i] = buffer[off.StartByte : off.StartByte+off.ByteLen]
	}

	return &Database{
		buffer:  buffer,
		offsets: offsets,
		views:   views,
		maxLen:  maxLen,
	}, nil
}

// Database is an immutable, append-only store of variable-length byte
// records (spec.md §3, §4.5). It is safe for concurrent read-only use by
// multiple evaluators once built.
type Database struct {
	buffer  []byte
	offsets []Offset
	views   [][]byte
	maxLen  int
}

// NumRecords returns the number of records stored in the database.
func (d *Database) NumRecords() int {
	return len(d.views)
}

// View returns the i-th record's byte view into the database's backing
// buffer. The returned slice must not be modified by the caller.
func (d *Database) View(i int) []byte {
	return d.views[i]
}

// MaxLen returns the length, in bytes, of the longest record in the
// database.
func (d *Database) MaxLen() int {
	return d.maxLen
}

// InnerProductWith delegates directly to InnerProduct with the database's
// views, the given selection vectors, and maxLen (spec.md §4.5, "Query").
func (d *Database) InnerProductWith(selections [][]Block) ([][]byte, error) {
	return InnerProduct(d.views, selections, d.maxLen)
}
