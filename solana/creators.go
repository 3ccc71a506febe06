package solana

import (
	solana "github.com/gagliardetto/solana-go"

	"github.com/evseew/PEcoinDashboard-Backend/models"
)

// CreatorDecision records how the creator list on a mint request was
// reconciled against the signing identity.
type CreatorDecision int

const (
	// CreatorUnspecified: request carried no creators; the identity is
	// used with a full share.
	CreatorUnspecified CreatorDecision = iota
	// CreatorMatchesIdentity: the request names the identity; the
	// requested list is kept with its share split.
	CreatorMatchesIdentity
	// CreatorDiffersFromIdentity: the request named other creators;
	// they are replaced by the identity because only the identity can
	// sign its own verified creator slot.
	CreatorDiffersFromIdentity
)

func (d CreatorDecision) String() string {
	switch d {
	case CreatorMatchesIdentity:
		return "matches_identity"
	case CreatorDiffersFromIdentity:
		return "differs_from_identity"
	default:
		return "unspecified"
	}
}

// ResolveCreators produces the on-chain creator list for a mint. When
// one of the requested creators is the signing identity the full list
// is kept, marked verified, with shares preserved; the identity is
// already the update authority so no separate verification step is
// needed. Otherwise the list collapses to the identity with a full
// share, since only the identity can sign its own verified creator
// slot.
func ResolveCreators(requested []models.NFTCreator, identity solana.PublicKey) ([]Creator, CreatorDecision) {
	identityOnly := []Creator{{Address: identity, Verified: true, Share: 100}}
	if len(requested) == 0 {
		return identityOnly, CreatorUnspecified
	}

	hasIdentity := false
	for _, c := range requested {
		if c.Address == identity.String() {
			hasIdentity = true
			break
		}
	}
	if !hasIdentity {
		return identityOnly, CreatorDiffersFromIdentity
	}

	final := make([]Creator, 0, len(requested))
	for _, c := range requested {
		address, err := solana.PublicKeyFromBase58(c.Address)
		if err != nil {
			continue
		}
		share := c.Share
		if share == 0 {
			share = 100 / int64(len(requested))
		}
		final = append(final, Creator{Address: address, Verified: true, Share: uint8(share)})
	}
	if len(final) == 0 {
		return identityOnly, CreatorMatchesIdentity
	}
	return final, CreatorMatchesIdentity
}
