// Package transport supplies a concrete hybrid-encryption implementation for
// the external collaborator spec.md §6 leaves opaque: something that can wrap
// a DPF key for transport between client and server. This mirrors the role
// original_source/pir/testing/encrypt_decrypt.cc plays in the original
// library's PIR client/server demo (a reference encrypt/decrypt helper, not
// a key-management service).
//
// spec.md's Non-goals explicitly keep "transport management" and "key
// authentication" out of scope; this package only wraps/unwraps a single
// message under a recipient's long-term public key, the way original_source's
// helper does, and makes no claim about how that public key was obtained.
package transport

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/box"

	"dpfpir/internal/status"
)

// KeySize is the length, in bytes, of a nacl/box public or private key.
const KeySize = 32

// Envelope is the hybrid-encryption boundary spec.md §6 treats as an
// external collaborator: Seal wraps a message for a recipient, Open
// unwraps it given the matching private key. Swapping in a different
// envelope implementation (KMS-backed, HSM-backed, ...) only requires
// satisfying this interface.
type Envelope interface {
	Seal(message []byte, recipientPublicKey *[KeySize]byte) ([]byte, error)
	Open(sealed []byte, recipientPrivateKey *[KeySize]byte) ([]byte, error)
}

// BoxEnvelope implements Envelope with golang.org/x/crypto/nacl/box
// (X25519 key agreement + XSalsa20-Poly1305 authenticated encryption), the
// standard Go-ecosystem answer to "hybrid-encrypt one message for one
// recipient's public key."
type BoxEnvelope struct{}

// NewBoxEnvelope returns a ready-to-use BoxEnvelope.
func NewBoxEnvelope() BoxEnvelope {
	return BoxEnvelope{}
}

// GenerateKeyPair returns a fresh X25519 key pair for use as a recipient
// identity with Seal/Open.
func GenerateKeyPair() (publicKey, privateKey *[KeySize]byte, err error) {
	publicKey, privateKey, err = box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, status.New(status.Internal, "transport: failed to generate key pair: %v", err)
	}
	return publicKey, privateKey, nil
}

// Seal generates an ephemeral sender key pair, encrypts message for
// recipientPublicKey, and prepends the ephemeral public key and nonce to
// the ciphertext so Open can recover them without any extra channel.
func (BoxEnvelope) Seal(message []byte, recipientPublicKey *[KeySize]byte) ([]byte, error) {
	if recipientPublicKey == nil {
		return nil, status.New(status.InvalidArgument, "transport: recipientPublicKey is nil")
	}
	senderPublic, senderPrivate, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, status.New(status.Internal, "transport: failed to generate ephemeral key pair: %v", err)
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, status.New(status.Internal, "transport: failed to sample nonce: %v", err)
	}

	out := make([]byte, 0, len(senderPublic)+len(nonce)+len(message)+box.Overhead)
	out = append(out, senderPublic[:]...)
	out = append(out, nonce[:]...)
	out = box.Seal(out, message, &nonce, recipientPublicKey, senderPrivate)
	return out, nil
}

// Open reverses Seal: it reads the ephemeral sender public key and nonce
// from the front of sealed, then authenticates and decrypts the remainder
// using recipientPrivateKey.
func (BoxEnvelope) Open(sealed []byte, recipientPrivateKey *[KeySize]byte) ([]byte, error) {
	const headerLen = KeySize + 24
	if len(sealed) < headerLen+box.Overhead {
		return nil, status.New(status.InvalidArgument, "transport: sealed message too short: %d bytes", len(sealed))
	}
	if recipientPrivateKey == nil {
		return nil, status.New(status.InvalidArgument, "transport: recipientPrivateKey is nil")
	}

	var senderPublic [KeySize]byte
	copy(senderPublic[:], sealed[:KeySize])
	var nonce [24]byte
	copy(nonce[:], sealed[KeySize:headerLen])

	message, ok := box.Open(nil, sealed[headerLen:], &nonce, &senderPublic, recipientPrivateKey)
	if !ok {
		return nil, status.New(status.InvalidArgument, "transport: message authentication failed")
	}
	return message, nil
}
