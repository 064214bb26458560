// Package eqcheck implements the building blocks of a two-party equality check
// over ElGamal ciphertexts.
//
// A user encrypts a vector of scalars under a key shared with a server. The server
// subtracts its own reference vector homomorphically, the user blinds each
// difference with a fresh scalar and strips its share of the key, and the server
// finishes decrypting. Each position decrypts to the identity exactly when both
// values were equal, and CheckTests collapses the positions into a single boolean.
//
// Every step where a party could lie about its computation comes with a proof:
// Schnorr proofs for the key shares, and Chaum-Pedersen proofs for the blinding and
// for the partial decryption.
//
// All randomness is read from an explicit io.Reader. Functions accepting a
// *pool.Pool process positions in parallel when the pool is non-nil, and fall back
// to the calling goroutine otherwise.
package eqcheck
