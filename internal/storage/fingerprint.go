package storage

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint hashes the ordered summary and commit IDs into a stable hex
// digest identifying one input stream. Section separators keep an ID moving
// between the two lists from colliding.
func Fingerprint(summaryIDs, commitIDs []string) string {
	h, _ := blake2b.New256(nil)

	h.Write([]byte("summaries"))
	for _, id := range summaryIDs {
		h.Write([]byte{0})
		h.Write([]byte(id))
	}
	h.Write([]byte{0xff})
	h.Write([]byte("commits"))
	for _, id := range commitIDs {
		h.Write([]byte{0})
		h.Write([]byte(id))
	}

	return hex.EncodeToString(h.Sum(nil))
}
