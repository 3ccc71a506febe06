package solana

import (
	"errors"
	"fmt"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/evseew/PEcoinDashboard-Backend/solana/client"
)

const (
	// Rough lamport costs observed for compressed mints; used only for
	// the affordability estimate, not for fee calculation.
	mintBaseCostLamports    = 250_000
	mintPerItemCostLamports = 100_000

	lamportsPerSol = 1_000_000_000
)

// WalletBalance is the signer's balance with an affordability estimate
// for a prospective batch.
type WalletBalance struct {
	Address      string  `json:"address"`
	Lamports     uint64  `json:"lamports"`
	Balance      float64 `json:"balance"`
	EstimateSol  float64 `json:"estimatedCostSol"`
	CanAfford    bool    `json:"canAfford"`
	ForItemCount int     `json:"forItemCount"`
}

// EstimateMintCostLamports estimates the cost of minting itemCount
// assets.
func EstimateMintCostLamports(itemCount int) uint64 {
	if itemCount < 1 {
		itemCount = 1
	}
	return mintBaseCostLamports + uint64(itemCount)*mintPerItemCostLamports
}

// CheckWalletBalance reads the signer balance and reports whether it
// covers an itemCount-sized batch.
func (m *Minter) CheckWalletBalance(itemCount int) (*WalletBalance, error) {
	lamports, err := m.client.GetBalance(m.signer.PublicKey())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wallet balance: %w", err)
	}
	estimate := EstimateMintCostLamports(itemCount)
	return &WalletBalance{
		Address:      m.signer.Address(),
		Lamports:     lamports,
		Balance:      float64(lamports) / lamportsPerSol,
		EstimateSol:  float64(estimate) / lamportsPerSol,
		CanAfford:    lamports >= estimate,
		ForItemCount: itemCount,
	}, nil
}

// IndexingDiagnostics is the snapshot returned by a forced recheck.
type IndexingDiagnostics struct {
	AssetId         string   `json:"assetId"`
	TreeAddress     string   `json:"treeAddress,omitempty"`
	TreeExists      bool     `json:"treeExists"`
	Indexed         bool     `json:"indexed"`
	ProofAvailable  bool     `json:"proofAvailable"`
	PhantomReady    bool     `json:"phantomReady"`
	Recommendations []string `json:"recommendations"`
}

// DiagnoseIndexing probes every layer an asset must clear before
// wallets can display it: tree account on chain, read-index visibility,
// and proof availability.
func (m *Minter) DiagnoseIndexing(assetId string, treeAddress string) *IndexingDiagnostics {
	diag := &IndexingDiagnostics{AssetId: assetId, TreeAddress: treeAddress}

	if IsFallbackAssetId(assetId) {
		diag.Recommendations = append(diag.Recommendations,
			"asset id is a placeholder, re-resolve the leaf index before querying the read index")
		return diag
	}

	if treeAddress != "" {
		if tree, err := solana.PublicKeyFromBase58(treeAddress); err == nil {
			if _, err := m.client.GetAccountData(tree); err == nil {
				diag.TreeExists = true
			} else if !errors.Is(err, rpc.ErrNotFound) {
				diag.Recommendations = append(diag.Recommendations,
					"tree account read failed, RPC may be degraded")
			}
		}
	}

	asset, err := m.das.GetAsset(assetId)
	switch {
	case err == nil && asset != nil:
		diag.Indexed = true
	case errors.Is(err, client.ErrAssetNotFound):
		diag.Recommendations = append(diag.Recommendations,
			"asset not yet indexed, check again in 15-30 minutes")
	case err != nil:
		diag.Recommendations = append(diag.Recommendations,
			"read index query failed, verify the DAS endpoint")
	}

	if diag.Indexed {
		if _, err := m.das.GetAssetProof(assetId); err == nil {
			diag.ProofAvailable = true
		} else {
			diag.Recommendations = append(diag.Recommendations,
				"asset indexed but proof unavailable, transfers will fail until the proof propagates")
		}
	}

	diag.PhantomReady = diag.Indexed && diag.ProofAvailable
	if diag.PhantomReady {
		diag.Recommendations = append(diag.Recommendations, "asset is fully visible to wallets")
	}
	return diag
}
