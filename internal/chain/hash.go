package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex-encoded SHA-256 digest of the block's canonical JSON
// encoding. encoding/json writes struct fields in declaration order, so two
// blocks with equal field values always produce the same digest regardless of
// how they were constructed.
func Hash(block Block) string {
	encoded, err := json.Marshal(block)
	if err != nil {
		// A Block holds only strings and numbers; marshalling cannot fail.
		panic(err)
	}
	digest := sha256.Sum256(encoded)
	return hex.EncodeToString(digest[:])
}
