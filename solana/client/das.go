package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/evseew/PEcoinDashboard-Backend/app"
)

// ErrAssetNotFound is returned when the read-index does not know the
// asset yet. Eventually-consistent: absence is not a failure.
var ErrAssetNotFound = errors.New("asset not found in read index")

// DASClient is a thin JSON-RPC passthrough to a Digital Asset Standard
// indexing endpoint. Poll-only; the index offers no subscriptions.
type DASClient interface {
	GetAsset(assetId string) (*DASAsset, error)
	GetAssetProof(assetId string) (json.RawMessage, error)
	GetAssetsByOwner(owner string, page int, limit int) ([]DASAsset, error)
}

type DASCompression struct {
	Compressed bool   `json:"compressed"`
	Tree       string `json:"tree"`
	LeafId     int64  `json:"leaf_id"`
}

type DASOwnership struct {
	Owner     string `json:"owner"`
	Delegated bool   `json:"delegated"`
}

type DASAsset struct {
	Id          string          `json:"id"`
	Compression *DASCompression `json:"compression,omitempty"`
	Ownership   *DASOwnership   `json:"ownership,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
}

type dasClient struct {
	url        string
	httpClient *http.Client
}

type rpcRequest struct {
	Jsonrpc string      `json:"jsonrpc"`
	Id      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (c *dasClient) queryRPC(method string, params interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{
		Jsonrpc: "2.0",
		Id:      method,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bz, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("das rpc status %d: %s", resp.StatusCode, resp.Status)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(bz, &rpcResp); err != nil {
		return nil, err
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("das rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	return rpcResp.Result, nil
}

func (c *dasClient) GetAsset(assetId string) (*DASAsset, error) {
	result, err := c.queryRPC("getAsset", map[string]interface{}{
		"id": assetId,
	})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 || string(result) == "null" {
		return nil, ErrAssetNotFound
	}

	var asset DASAsset
	if err := json.Unmarshal(result, &asset); err != nil {
		return nil, err
	}
	if asset.Id != assetId {
		return nil, ErrAssetNotFound
	}
	return &asset, nil
}

func (c *dasClient) GetAssetProof(assetId string) (json.RawMessage, error) {
	result, err := c.queryRPC("getAssetProof", map[string]interface{}{
		"id": assetId,
	})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 || string(result) == "null" {
		return nil, ErrAssetNotFound
	}
	return result, nil
}

func (c *dasClient) GetAssetsByOwner(owner string, page int, limit int) ([]DASAsset, error) {
	result, err := c.queryRPC("getAssetsByOwner", map[string]interface{}{
		"ownerAddress": owner,
		"page":         page,
		"limit":        limit,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Items []DASAsset `json:"items"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// NewDASClient creates a read-index client. The DAS endpoint may be the
// primary RPC endpoint when no dedicated indexer is configured.
func NewDASClient() DASClient {
	return NewDASClientWithURL(app.Config.Solana.DASAPIURL, time.Duration(app.Config.Solana.RPCTimeoutMillis)*time.Millisecond)
}

func NewDASClientWithURL(url string, timeout time.Duration) DASClient {
	return &dasClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}
