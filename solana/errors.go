package solana

import "strings"

// MintErrorKind buckets submission failures into the retry policy each
// one gets.
type MintErrorKind int

const (
	// MintErrorUnknown is anything unrecognized; retried with the flat
	// inter-attempt delay.
	MintErrorUnknown MintErrorKind = iota
	// MintErrorDuplicateLeaf means the leaf was already appended; the
	// mint is treated as a success.
	MintErrorDuplicateLeaf
	// MintErrorRateLimited triggers exponential backoff.
	MintErrorRateLimited
	// MintErrorStaleBlockhash triggers a short delay and a fresh
	// blockhash on the next attempt.
	MintErrorStaleBlockhash
	// MintErrorFatal aborts the operation without further attempts.
	MintErrorFatal
)

func (k MintErrorKind) String() string {
	switch k {
	case MintErrorDuplicateLeaf:
		return "duplicate_leaf"
	case MintErrorRateLimited:
		return "rate_limited"
	case MintErrorStaleBlockhash:
		return "stale_blockhash"
	case MintErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ClassifyMintError maps a submission or confirmation error onto a
// retry bucket by inspecting the node's error text. Matching on
// message substrings is brittle but it is the only signal the RPC
// layer exposes for program errors.
func ClassifyMintError(err error) MintErrorKind {
	if err == nil {
		return MintErrorUnknown
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Leaf already exists"):
		return MintErrorDuplicateLeaf
	case strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "too many requests"):
		return MintErrorRateLimited
	case strings.Contains(msg, "Blockhash not found"):
		return MintErrorStaleBlockhash
	case strings.Contains(msg, "CollectionNotFound") ||
		strings.Contains(msg, "collection not found") ||
		strings.Contains(msg, "IncorrectOwner") ||
		strings.Contains(msg, "InvalidCollectionAuthority"):
		return MintErrorFatal
	default:
		return MintErrorUnknown
	}
}
