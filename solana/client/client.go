package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	log "github.com/sirupsen/logrus"

	"github.com/evseew/PEcoinDashboard-Backend/app"
)

// SolanaClient wraps the chain RPC connection. Submission is
// fire-and-forget; confirmation polling belongs to the minter.
type SolanaClient interface {
	GetEndpoint() string
	GetLatestBlockhash() (solana.Hash, error)
	SendTransaction(tx *solana.Transaction) (solana.Signature, error)
	GetSignatureStatus(signature solana.Signature) (*rpc.SignatureStatusesResult, error)
	GetAccountData(address solana.PublicKey) ([]byte, error)
	GetBalance(address solana.PublicKey) (uint64, error)
}

type solanaClient struct {
	client   *rpc.Client
	endpoint string
	timeout  time.Duration
}

var (
	connMu    sync.Mutex
	connCache = map[string]*rpc.Client{}
)

func rpcClientFor(endpoint string) *rpc.Client {
	connMu.Lock()
	defer connMu.Unlock()
	if cached, ok := connCache[endpoint]; ok {
		return cached
	}
	created := rpc.New(endpoint)
	connCache[endpoint] = created
	return created
}

func (c *solanaClient) timeoutCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

func (c *solanaClient) GetEndpoint() string {
	return c.endpoint
}

func (c *solanaClient) GetLatestBlockhash() (solana.Hash, error) {
	ctx, cancel := c.timeoutCtx()
	defer cancel()

	out, err := c.client.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Hash{}, err
	}
	return out.Value.Blockhash, nil
}

func (c *solanaClient) SendTransaction(tx *solana.Transaction) (solana.Signature, error) {
	ctx, cancel := c.timeoutCtx()
	defer cancel()

	return c.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
}

// GetSignatureStatus returns nil with no error when the signature has
// not been observed yet; callers must not treat that as failure.
func (c *solanaClient) GetSignatureStatus(signature solana.Signature) (*rpc.SignatureStatusesResult, error) {
	ctx, cancel := c.timeoutCtx()
	defer cancel()

	out, err := c.client.GetSignatureStatuses(ctx, true, signature)
	if err != nil {
		return nil, err
	}
	if out == nil || len(out.Value) == 0 {
		return nil, nil
	}
	return out.Value[0], nil
}

func (c *solanaClient) GetAccountData(address solana.PublicKey) ([]byte, error) {
	ctx, cancel := c.timeoutCtx()
	defer cancel()

	out, err := c.client.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, rpc.ErrNotFound
	}
	return out.Value.Data.GetBinary(), nil
}

func (c *solanaClient) GetBalance(address solana.PublicKey) (uint64, error) {
	ctx, cancel := c.timeoutCtx()
	defer cancel()

	out, err := c.client.GetBalance(ctx, address, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// NewClient connects to the first healthy endpoint from the prioritized
// candidate list, probing each with a latest-blockhash call.
func NewClient() (SolanaClient, error) {
	candidates := []string{app.Config.Solana.RPCURL}
	candidates = append(candidates, app.Config.Solana.BackupRPCURLs...)

	timeout := time.Duration(app.Config.Solana.RPCTimeoutMillis) * time.Millisecond

	var failures []string
	for _, endpoint := range candidates {
		endpoint = strings.TrimSpace(endpoint)
		if endpoint == "" {
			continue
		}
		log.Debug("[SOLANA] Trying RPC endpoint: ", endpoint)

		c := &solanaClient{
			client:   rpcClientFor(endpoint),
			endpoint: endpoint,
			timeout:  timeout,
		}

		_, err := c.GetLatestBlockhash()
		if err != nil {
			log.Warnf("[SOLANA] Endpoint %s failed liveness probe: %s", endpoint, err.Error())
			failures = append(failures, fmt.Sprintf("%s: %s", endpoint, err.Error()))
			continue
		}

		log.Info("[SOLANA] Connected to RPC endpoint: ", endpoint)
		return c, nil
	}

	return nil, fmt.Errorf("no reachable solana rpc endpoint: [%s]", strings.Join(failures, "; "))
}
