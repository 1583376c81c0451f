package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// difficultyPrefix is the fixed proof-of-work target: the digest of a valid
// proof pair must begin with this many zero hex characters.
const difficultyPrefix = "0000"

// cancelCheckInterval is how many candidates Solve tries between context
// checks.
const cancelCheckInterval = 4096

// ValidProof reports whether candidate is a valid proof of work against
// lastProof: the SHA-256 digest of the two decimal strings concatenated must
// start with four zeros.
func ValidProof(lastProof, candidate int64) bool {
	guess := strconv.FormatInt(lastProof, 10) + strconv.FormatInt(candidate, 10)
	digest := sha256.Sum256([]byte(guess))
	return strings.HasPrefix(hex.EncodeToString(digest[:]), difficultyPrefix)
}

// Solve brute-forces the first proof satisfying ValidProof against lastProof,
// counting up from zero. The search space is unbounded, so the caller bounds
// the search through ctx; the context error is returned on cancellation.
func Solve(ctx context.Context, lastProof int64) (int64, error) {
	for candidate := int64(0); ; candidate++ {
		if candidate%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if ValidProof(lastProof, candidate) {
			return candidate, nil
		}
	}
}
