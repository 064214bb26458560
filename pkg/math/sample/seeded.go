package sample

import (
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20"
)

// seededReader is a deterministic stream of bytes, given by the ChaCha20 keystream.
type seededReader struct {
	cipher *chacha20.Cipher
}

// NewSeededReader returns a deterministic io.Reader, whose output is entirely
// determined by seed.
//
// It is meant for reproducible tests, and must never be used to generate secrets
// in production, where crypto/rand.Reader should be used instead.
func NewSeededReader(seed []byte) io.Reader {
	key := blake3.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		// only happens with invalid key or nonce sizes
		panic(err)
	}
	return &seededReader{cipher: c}
}

// Read implements io.Reader.
func (r *seededReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
