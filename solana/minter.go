package solana

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	log "github.com/sirupsen/logrus"

	"github.com/evseew/PEcoinDashboard-Backend/app"
	"github.com/evseew/PEcoinDashboard-Backend/common"
	"github.com/evseew/PEcoinDashboard-Backend/models"
	"github.com/evseew/PEcoinDashboard-Backend/solana/client"
)

// FallbackAssetIdPrefix marks asset ids that could not be derived
// canonically. Consumers must not use these as read-index lookup keys.
const FallbackAssetIdPrefix = "fallback_"

// Counter values at or above this are assumed to be a misread of the
// account layout rather than a real tree population.
const maxPlausibleNumMinted = 10_000_000

// MinterConfig carries the retry budget and delays for the mint loop.
// Tests pass small values; production values come from MinterConfigFromApp.
type MinterConfig struct {
	MaxAttempts         int
	ConfirmPollInterval time.Duration
	ConfirmPollAttempts int
	RetryDelay          time.Duration
	RateLimitUnit       time.Duration
	StaleBlockhashDelay time.Duration
	LeafWaitInitial     time.Duration
	LeafWaitRetry       time.Duration
	TreeConfigOffsets   []int64
}

func MinterConfigFromApp() MinterConfig {
	return MinterConfig{
		MaxAttempts:         int(app.Config.Mint.MaxAttempts),
		ConfirmPollInterval: time.Duration(app.Config.Mint.ConfirmPollMillis) * time.Millisecond,
		ConfirmPollAttempts: int(app.Config.Mint.ConfirmPollAttempts),
		RetryDelay:          time.Duration(app.Config.Mint.RetryDelayMillis) * time.Millisecond,
		RateLimitUnit:       time.Second,
		StaleBlockhashDelay: time.Duration(app.Config.Mint.StaleBlockhashDelayMillis) * time.Millisecond,
		LeafWaitInitial:     time.Second,
		LeafWaitRetry:       3 * time.Second,
		TreeConfigOffsets:   app.Config.Solana.TreeConfigOffsets,
	}
}

// MintRequest is one compressed mint against a collection tree.
type MintRequest struct {
	Tree       solana.PublicKey
	Collection solana.PublicKey
	Recipient  solana.PublicKey
	Metadata   models.NFTMetadata
}

// Minter drives a mint from submission through confirmation to the
// derived leaf index and asset id.
type Minter struct {
	client client.SolanaClient
	das    client.DASClient
	signer *common.Signer
	config MinterConfig
	logger *log.Entry
}

func NewMinter(chainClient client.SolanaClient, dasClient client.DASClient, signer *common.Signer, config MinterConfig) *Minter {
	return &Minter{
		client: chainClient,
		das:    dasClient,
		signer: signer,
		config: config,
		logger: log.WithField("module", "minter"),
	}
}

func (m *Minter) SignerAddress() string {
	return m.signer.Address()
}

// MintAsset runs the full attempt loop. A duplicate-leaf response is a
// success; a fatal classification aborts without consuming the
// remaining budget. Leaf index and asset id are best-effort and never
// fail a confirmed mint.
func (m *Minter) MintAsset(req MintRequest) (*models.MintResult, error) {
	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= m.config.MaxAttempts; attempt++ {
		m.logger.
			WithField("tree", req.Tree.String()).
			WithField("recipient", req.Recipient.String()).
			Debugf("[MINTER] attempt %d/%d", attempt, m.config.MaxAttempts)

		signature, err := m.submit(req)
		if err == nil {
			err = m.waitForConfirmation(signature)
			if err == nil {
				result := &models.MintResult{
					Signature:   signature.String(),
					ElapsedSecs: time.Since(start).Seconds(),
				}
				m.fillDerived(result, req)
				return result, nil
			}
		}
		lastErr = err

		switch ClassifyMintError(err) {
		case MintErrorDuplicateLeaf:
			m.logger.Info("[MINTER] leaf already exists, treating as success")
			result := &models.MintResult{
				ElapsedSecs:   time.Since(start).Seconds(),
				AlreadyExists: true,
			}
			// the signature is only real when the duplicate surfaced
			// during confirmation; a rejected broadcast leaves none
			if !signature.IsZero() {
				result.Signature = signature.String()
			}
			m.fillDerived(result, req)
			return result, nil
		case MintErrorFatal:
			m.logger.WithError(err).Error("[MINTER] fatal mint error, aborting")
			return nil, err
		case MintErrorRateLimited:
			// backoff doubles per attempt
			delay := m.config.RateLimitUnit * time.Duration(1<<uint(attempt))
			m.logger.WithError(err).Warnf("[MINTER] rate limited, backing off %s", delay)
			if attempt < m.config.MaxAttempts {
				time.Sleep(delay)
			}
		case MintErrorStaleBlockhash:
			m.logger.WithError(err).Warn("[MINTER] stale blockhash, retrying with a fresh one")
			if attempt < m.config.MaxAttempts {
				time.Sleep(m.config.StaleBlockhashDelay)
			}
		default:
			m.logger.WithError(err).Warn("[MINTER] mint attempt failed")
			if attempt < m.config.MaxAttempts {
				time.Sleep(m.config.RetryDelay)
			}
		}
	}
	return nil, fmt.Errorf("mint failed after %d attempts: %w", m.config.MaxAttempts, lastErr)
}

// submit builds, signs and broadcasts one mint transaction with a fresh
// blockhash.
func (m *Minter) submit(req MintRequest) (solana.Signature, error) {
	blockhash, err := m.client.GetLatestBlockhash()
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to fetch blockhash: %w", err)
	}

	creators, decision := ResolveCreators(req.Metadata.Creators, m.signer.PublicKey())
	if decision == CreatorDiffersFromIdentity {
		m.logger.Debug("[MINTER] replacing requested creators with signing identity")
	}

	// the collection is marked verified up front; wallets refuse to
	// group a cNFT under an unverified collection
	tokenStandard := tokenStandardNonFungible
	args := MetadataArgs{
		Name:                 req.Metadata.Name,
		Symbol:               req.Metadata.Symbol,
		Uri:                  req.Metadata.URI,
		SellerFeeBasisPoints: uint16(req.Metadata.SellerFeeBasisPoints),
		IsMutable:            true,
		TokenStandard:        &tokenStandard,
		Collection:           &Collection{Verified: true, Key: req.Collection},
		Creators:             creators,
	}

	instruction, err := NewMintToCollectionV1Instruction(req.Tree, req.Collection, req.Recipient, m.signer.PublicKey(), args)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build mint instruction: %w", err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		blockhash,
		solana.TransactionPayer(m.signer.PublicKey()),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build transaction: %w", err)
	}

	payerKey := m.signer.PrivateKey()
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(m.signer.PublicKey()) {
			return &payerKey
		}
		return nil
	}); err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	return m.client.SendTransaction(tx)
}

// waitForConfirmation polls the signature status until it reaches
// confirmed or finalized, errors on chain, or the poll budget runs out.
func (m *Minter) waitForConfirmation(signature solana.Signature) error {
	for i := 0; i < m.config.ConfirmPollAttempts; i++ {
		status, err := m.client.GetSignatureStatus(signature)
		if err == nil && status != nil {
			if status.Err != nil {
				return fmt.Errorf("transaction failed on chain: %v", status.Err)
			}
			if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
				status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return nil
			}
		}
		time.Sleep(m.config.ConfirmPollInterval)
	}
	return fmt.Errorf("confirmation timed out for %s", signature)
}

// fillDerived resolves the leaf index and asset id after confirmation.
// Failures here leave the fields empty but never fail the mint.
func (m *Minter) fillDerived(result *models.MintResult, req MintRequest) {
	leafIndex := m.ResolveLeafIndex(req.Tree, req.Recipient)
	if leafIndex == nil {
		m.logger.
			WithField("tree", req.Tree.String()).
			Warn("[MINTER] could not resolve leaf index, check again in 15-30 minutes")
		return
	}
	result.LeafIndex = leafIndex
	result.AssetId = DeriveAssetId(req.Tree, *leafIndex)
}

// ResolveLeafIndex reads the tree's minted counter (leaf index is
// counter-1), waiting out index propagation with one retry, then falls
// back to scanning the recipient's assets on the read index. Returns
// nil when no method yields an index.
func (m *Minter) ResolveLeafIndex(tree solana.PublicKey, recipient solana.PublicKey) *int64 {
	time.Sleep(m.config.LeafWaitInitial)
	if numMinted, err := m.numMintedFromTreeConfig(tree); err == nil {
		index := numMinted - 1
		return &index
	}

	time.Sleep(m.config.LeafWaitRetry)
	if numMinted, err := m.numMintedFromTreeConfig(tree); err == nil {
		index := numMinted - 1
		return &index
	}

	assets, err := m.das.GetAssetsByOwner(recipient.String(), 1, 100)
	if err != nil {
		m.logger.WithError(err).Debug("[MINTER] asset-by-owner fallback failed")
		return nil
	}
	treeAddress := tree.String()
	best := int64(-1)
	for _, asset := range assets {
		if asset.Compression == nil || !asset.Compression.Compressed {
			continue
		}
		if asset.Compression.Tree == treeAddress && asset.Compression.LeafId > best {
			best = asset.Compression.LeafId
		}
	}
	if best < 0 {
		return nil
	}
	return &best
}

// numMintedFromTreeConfig reads the raw tree config account and probes
// the configured byte offsets for a plausible counter value. The
// counter layout varies by program version, hence the offset list.
func (m *Minter) numMintedFromTreeConfig(tree solana.PublicKey) (int64, error) {
	treeConfig, err := TreeConfigPDA(tree)
	if err != nil {
		return 0, err
	}
	data, err := m.client.GetAccountData(treeConfig)
	if err != nil {
		return 0, err
	}
	for _, offset := range m.config.TreeConfigOffsets {
		if offset < 0 || offset+8 > int64(len(data)) {
			continue
		}
		value := int64(binary.LittleEndian.Uint64(data[offset : offset+8]))
		// a mint just landed, so a real counter reads at least 1
		if value >= 1 && value < maxPlausibleNumMinted {
			return value, nil
		}
	}
	return 0, fmt.Errorf("no plausible minted counter at offsets %v", m.config.TreeConfigOffsets)
}

// DeriveAssetId computes the canonical asset id for a leaf, or a
// clearly marked placeholder when the derivation fails.
func DeriveAssetId(tree solana.PublicKey, leafIndex int64) string {
	assetId, err := LeafAssetIdPDA(tree, leafIndex)
	if err != nil {
		return fallbackAssetId(tree, leafIndex)
	}
	return assetId.String()
}

func fallbackAssetId(tree solana.PublicKey, leafIndex int64) string {
	digest := sha256.Sum256([]byte(fmt.Sprintf("%s-%d", tree.String(), leafIndex)))
	return FallbackAssetIdPrefix + hex.EncodeToString(digest[:])[:32]
}

// IsFallbackAssetId reports whether an asset id is a placeholder rather
// than a canonical on-chain id.
func IsFallbackAssetId(assetId string) bool {
	return len(assetId) > len(FallbackAssetIdPrefix) && assetId[:len(FallbackAssetIdPrefix)] == FallbackAssetIdPrefix
}
