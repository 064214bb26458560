package eqcheck

import "github.com/taurusgroup/eqcheck/pkg/hash"

const (
	domainKnowledge  = "eqcheck knowledge"
	domainRandomize  = "eqcheck randomize"
	domainDecryption = "eqcheck decryption"
	transcriptDomain = "eqcheck step"
)

// transcript returns a copy of h bound to one step of the protocol.
func transcript(h *hash.Hash, step string) *hash.Hash {
	if h == nil {
		h = hash.New()
	}
	return h.Fork(&hash.BytesWithDomain{TheDomain: transcriptDomain, Bytes: []byte(step)})
}

// positionTranscript returns a copy of h bound to a single position of a vector.
func positionTranscript(h *hash.Hash, i int) *hash.Hash {
	return h.Fork(hash.Position(i))
}
