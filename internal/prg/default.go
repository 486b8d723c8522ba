package prg

import "sync"

// The tree expander needs two fixed, public AES-128 keys shared by every
// party (spec.md §3, "PRG context": "Two distinct fixed keys are used, one
// for the 'left child' expansion and one for the 'right child'"). These are
// not secret: fixed-key AES here stands in for a random permutation, exactly
// like SnellerInc-sneller's hard-coded `Stable` HashEngine keys
// (internal/aes/hash.go) are public constants baked into the binary rather
// than generated at runtime.
var (
	defaultLeftKey  = [16]byte{0x5d, 0x5c, 0x72, 0x4c, 0x2a, 0xb1, 0x94, 0x46, 0xde, 0x7a, 0x4d, 0xa4, 0x6e, 0x7a, 0x0f, 0x01}
	defaultRightKey = [16]byte{0xb1, 0x8e, 0x4d, 0x24, 0x38, 0xdf, 0xf2, 0x70, 0x0d, 0xb3, 0x51, 0xab, 0x3d, 0x99, 0xc4, 0x2b}

	defaultOnce sync.Once
	defaultL    *PRG
	defaultR    *PRG
	defaultErr  error
)

func initDefaults() {
	defaultL, defaultErr = NewWithKey(defaultLeftKey)
	if defaultErr != nil {
		return
	}
	defaultR, defaultErr = NewWithKey(defaultRightKey)
}

// DefaultPair returns the two fixed, public PRGs every DPF party uses to
// expand the left and right children of a tree node.
func DefaultPair() (left, right *PRG, err error) {
	defaultOnce.Do(initDefaults)
	if defaultErr != nil {
		return nil, nil, defaultErr
	}
	return defaultL, defaultR, nil
}
