package common

import (
	"crypto/ed25519"
	"fmt"

	"github.com/cosmos/go-bip39"
	"github.com/gagliardetto/solana-go"
)

// Signer holds the service's signing identity. The same keypair pays
// for mint transactions and acts as tree/collection authority.
type Signer struct {
	privateKey solana.PrivateKey
}

// NewSignerFromBase58 loads a signer from a base58-encoded ed25519
// secret key, the format exported by most Solana wallets.
func NewSignerFromBase58(encoded string) (*Signer, error) {
	privateKey, err := solana.PrivateKeyFromBase58(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	return &Signer{privateKey: privateKey}, nil
}

// NewSignerFromMnemonic derives a signer from a BIP-39 mnemonic using
// the first 32 bytes of the seed as the ed25519 seed.
func NewSignerFromMnemonic(mnemonic string) (*Signer, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	key := ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])
	return &Signer{privateKey: solana.PrivateKey(key)}, nil
}

func (s *Signer) PublicKey() solana.PublicKey {
	return s.privateKey.PublicKey()
}

func (s *Signer) Address() string {
	return s.privateKey.PublicKey().String()
}

func (s *Signer) PrivateKey() solana.PrivateKey {
	return s.privateKey
}

// Sign signs arbitrary bytes with the identity key.
func (s *Signer) Sign(data []byte) ([]byte, error) {
	sig, err := s.privateKey.Sign(data)
	if err != nil {
		return nil, err
	}
	return sig[:], nil
}
