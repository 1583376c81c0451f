package chain

// ValidChain reports whether every adjacent pair of blocks in the candidate
// is consistent: the later block's previous_hash must equal the digest of the
// earlier block, and the later proof must satisfy the proof-of-work predicate
// against the earlier one. The first block is trusted as its own root — its
// sentinel values are given, not derived — and chains of length zero or one
// are vacuously valid. The candidate is never mutated.
func ValidChain(blocks []Block) bool {
	for i := 1; i < len(blocks); i++ {
		if blocks[i].PreviousHash != Hash(blocks[i-1]) {
			return false
		}
		if !ValidProof(blocks[i-1].Proof, blocks[i].Proof) {
			return false
		}
	}
	return true
}
