package solana

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// Program addresses involved in a compressed mint. All public, fixed
// mainnet deployments.
var (
	BubblegumProgramID          = solana.MustPublicKeyFromBase58("BGUMAp9Gq7iTEuizy4pqaxsTyUCBK68MDJ8V77fvN1jw")
	TokenMetadataProgramID      = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
	AccountCompressionProgramID = solana.MustPublicKeyFromBase58("cmtDvXumGCrqC1Age74AVPhSRVXJMd8PJS91L8KbNCK")
	NoopProgramID               = solana.MustPublicKeyFromBase58("noopb9bkMVfRPU8AsbpTUg8AQkHtKwMYZiFUjNRtMmV")
)

type Creator struct {
	Address  solana.PublicKey
	Verified bool
	Share    uint8
}

type Collection struct {
	Verified bool
	Key      solana.PublicKey
}

type Uses struct {
	UseMethod uint8
	Remaining uint64
	Total     uint64
}

// MetadataArgs mirrors the Bubblegum on-chain argument layout; field
// order matters for borsh encoding.
type MetadataArgs struct {
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	PrimarySaleHappened  bool
	IsMutable            bool
	EditionNonce         *uint8      `bin:"optional"`
	TokenStandard        *uint8      `bin:"optional"`
	Collection           *Collection `bin:"optional"`
	Uses                 *Uses       `bin:"optional"`
	TokenProgramVersion  uint8
	Creators             []Creator
}

const tokenStandardNonFungible uint8 = 0

// anchorDiscriminator computes the 8-byte instruction tag used by
// anchor programs.
func anchorDiscriminator(name string) []byte {
	h := sha256.Sum256([]byte("global:" + name))
	return h[:8]
}

// TreeConfigPDA derives the tree authority account for a merkle tree.
func TreeConfigPDA(tree solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{tree.Bytes()}, BubblegumProgramID)
	return pda, err
}

// LeafAssetIdPDA derives the canonical asset id of a leaf from its tree
// and zero-based index.
func LeafAssetIdPDA(tree solana.PublicKey, leafIndex int64) (solana.PublicKey, error) {
	var leafIndexLE [8]byte
	binary.LittleEndian.PutUint64(leafIndexLE[:], uint64(leafIndex))
	pda, _, err := solana.FindProgramAddress(
		[][]byte{[]byte("asset"), tree.Bytes(), leafIndexLE[:]},
		BubblegumProgramID,
	)
	return pda, err
}

// MetadataPDA derives the token-metadata account for a mint.
func MetadataPDA(mint solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress(
		[][]byte{[]byte("metadata"), TokenMetadataProgramID.Bytes(), mint.Bytes()},
		TokenMetadataProgramID,
	)
	return pda, err
}

// MasterEditionPDA derives the master edition account for a mint.
func MasterEditionPDA(mint solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress(
		[][]byte{[]byte("metadata"), TokenMetadataProgramID.Bytes(), mint.Bytes(), []byte("edition")},
		TokenMetadataProgramID,
	)
	return pda, err
}

// BubblegumSignerPDA derives the program signer used for collection CPI.
func BubblegumSignerPDA() (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{[]byte("collection_cpi")}, BubblegumProgramID)
	return pda, err
}

// NewMintToCollectionV1Instruction builds the mint_to_collection_v1
// instruction. The payer acts as tree delegate and collection
// authority, which is the deployment shape this service assumes.
func NewMintToCollectionV1Instruction(
	tree solana.PublicKey,
	collectionMint solana.PublicKey,
	leafOwner solana.PublicKey,
	payer solana.PublicKey,
	args MetadataArgs,
) (solana.Instruction, error) {
	treeAuthority, err := TreeConfigPDA(tree)
	if err != nil {
		return nil, err
	}
	collectionMetadata, err := MetadataPDA(collectionMint)
	if err != nil {
		return nil, err
	}
	collectionEdition, err := MasterEditionPDA(collectionMint)
	if err != nil {
		return nil, err
	}
	bubblegumSigner, err := BubblegumSignerPDA()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(anchorDiscriminator("mint_to_collection_v1"))
	if err := bin.NewBorshEncoder(&buf).Encode(args); err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(treeAuthority, true, false),
		solana.NewAccountMeta(leafOwner, false, false),
		solana.NewAccountMeta(leafOwner, false, false), // leaf delegate
		solana.NewAccountMeta(tree, true, false),
		solana.NewAccountMeta(payer, false, true),
		solana.NewAccountMeta(payer, false, true), // tree delegate
		solana.NewAccountMeta(payer, false, true), // collection authority
		// no collection authority record; convention is to pass the
		// program id itself
		solana.NewAccountMeta(BubblegumProgramID, false, false),
		solana.NewAccountMeta(collectionMint, false, false),
		solana.NewAccountMeta(collectionMetadata, true, false),
		solana.NewAccountMeta(collectionEdition, false, false),
		solana.NewAccountMeta(bubblegumSigner, false, false),
		solana.NewAccountMeta(NoopProgramID, false, false),
		solana.NewAccountMeta(AccountCompressionProgramID, false, false),
		solana.NewAccountMeta(TokenMetadataProgramID, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}

	return solana.NewInstruction(BubblegumProgramID, accounts, buf.Bytes()), nil
}
