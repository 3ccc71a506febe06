package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestDASServer(t *testing.T, handler func(method string, params map[string]interface{}) (string, *rpcError)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string                 `json:"method"`
			Params map[string]interface{} `json:"params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, rpcErr := handler(req.Method, req.Params)
		w.Header().Set("Content-Type", "application/json")
		if rpcErr != nil {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","error":{"code":%d,"message":%q}}`, rpcErr.Code, rpcErr.Message)
			return
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","result":%s}`, result)
	}))
}

func TestGetAsset(t *testing.T) {

	t.Run("Found", func(t *testing.T) {
		server := newTestDASServer(t, func(method string, params map[string]interface{}) (string, *rpcError) {
			assert.Equal(t, "getAsset", method)
			assert.Equal(t, "asset-1", params["id"])
			return `{"id":"asset-1","compression":{"compressed":true,"tree":"tree-1","leaf_id":4}}`, nil
		})
		defer server.Close()

		das := NewDASClientWithURL(server.URL, time.Second)
		asset, err := das.GetAsset("asset-1")

		assert.NoError(t, err)
		assert.Equal(t, "asset-1", asset.Id)
		assert.True(t, asset.Compression.Compressed)
		assert.Equal(t, int64(4), asset.Compression.LeafId)
	})

	t.Run("Null Result", func(t *testing.T) {
		server := newTestDASServer(t, func(method string, params map[string]interface{}) (string, *rpcError) {
			return `null`, nil
		})
		defer server.Close()

		das := NewDASClientWithURL(server.URL, time.Second)
		_, err := das.GetAsset("asset-1")

		assert.True(t, errors.Is(err, ErrAssetNotFound))
	})

	t.Run("Id Mismatch", func(t *testing.T) {
		server := newTestDASServer(t, func(method string, params map[string]interface{}) (string, *rpcError) {
			return `{"id":"other"}`, nil
		})
		defer server.Close()

		das := NewDASClientWithURL(server.URL, time.Second)
		_, err := das.GetAsset("asset-1")

		assert.True(t, errors.Is(err, ErrAssetNotFound))
	})

	t.Run("RPC Error", func(t *testing.T) {
		server := newTestDASServer(t, func(method string, params map[string]interface{}) (string, *rpcError) {
			return "", &rpcError{Code: -32000, Message: "internal"}
		})
		defer server.Close()

		das := NewDASClientWithURL(server.URL, time.Second)
		_, err := das.GetAsset("asset-1")

		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrAssetNotFound))
	})
}

func TestGetAssetProof(t *testing.T) {
	server := newTestDASServer(t, func(method string, params map[string]interface{}) (string, *rpcError) {
		assert.Equal(t, "getAssetProof", method)
		return `{"root":"abc","proof":["a","b"]}`, nil
	})
	defer server.Close()

	das := NewDASClientWithURL(server.URL, time.Second)
	proof, err := das.GetAssetProof("asset-1")

	assert.NoError(t, err)
	assert.NotEmpty(t, proof)
}

func TestGetAssetsByOwner(t *testing.T) {
	server := newTestDASServer(t, func(method string, params map[string]interface{}) (string, *rpcError) {
		assert.Equal(t, "getAssetsByOwner", method)
		assert.Equal(t, "owner-1", params["ownerAddress"])
		return `{"total":2,"items":[{"id":"a"},{"id":"b"}]}`, nil
	})
	defer server.Close()

	das := NewDASClientWithURL(server.URL, time.Second)
	assets, err := das.GetAssetsByOwner("owner-1", 1, 100)

	assert.NoError(t, err)
	assert.Len(t, assets, 2)
	assert.Equal(t, "a", assets[0].Id)
}

func TestGetAssetHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	das := NewDASClientWithURL(server.URL, time.Second)
	_, err := das.GetAsset("asset-1")

	assert.Error(t, err)
}
