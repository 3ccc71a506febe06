package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionMintOperations = "mint_operations"
)

// types of mint operation status
const (
	OperationStatusProcessing = "processing"
	OperationStatusCompleted  = "completed"
	OperationStatusFailed     = "failed"
)

// types of mint operation
const (
	OperationTypeSingle = "single"
	OperationTypeBatch  = "batch"
)

// indexing status values written back by the indexing monitor
const (
	IndexingStatusPending = "pending"
	IndexingStatusIndexed = "indexed"
	IndexingStatusTimeout = "timeout"
	IndexingStatusError   = "error"
	IndexingStatusStopped = "stopped"
)

type NFTCreator struct {
	Address  string `bson:"address" json:"address"`
	Share    int64  `bson:"share" json:"share"`
	Verified bool   `bson:"verified" json:"verified"`
}

type NFTMetadata struct {
	Name                 string       `bson:"name" json:"name"`
	Symbol               string       `bson:"symbol" json:"symbol"`
	URI                  string       `bson:"uri" json:"uri"`
	SellerFeeBasisPoints int64        `bson:"seller_fee_basis_points" json:"sellerFeeBasisPoints"`
	Creators             []NFTCreator `bson:"creators,omitempty" json:"creators,omitempty"`
}

type MintResult struct {
	Signature     string  `bson:"signature" json:"signature"`
	LeafIndex     *int64  `bson:"leaf_index,omitempty" json:"leafIndex,omitempty"`
	AssetId       string  `bson:"asset_id,omitempty" json:"assetId,omitempty"`
	ElapsedSecs   float64 `bson:"elapsed_secs" json:"elapsedTime"`
	AlreadyExists bool    `bson:"already_exists" json:"alreadyExists"`
}

type CollectionRef struct {
	Name   string `bson:"name" json:"name"`
	Symbol string `bson:"symbol" json:"symbol"`
}

type MintOperation struct {
	Id           *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OperationId  string              `bson:"operation_id" json:"operationId"`
	Type         string              `bson:"type" json:"type"`
	Status       string              `bson:"status" json:"status"`
	CreatedAt    time.Time           `bson:"created_at" json:"createdAt"`
	CompletedAt  *time.Time          `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CollectionId string              `bson:"collection_id" json:"collectionId"`
	Collection   CollectionRef       `bson:"collection" json:"collection"`
	Recipient    string              `bson:"recipient" json:"recipient"`
	Metadata     NFTMetadata         `bson:"metadata" json:"metadata"`
	Result       *MintResult         `bson:"result,omitempty" json:"result,omitempty"`
	Error        string              `bson:"error,omitempty" json:"error,omitempty"`

	// indexing fields, owned by the indexing monitor after confirmation
	IndexingStatus      string          `bson:"indexing_status,omitempty" json:"indexingStatus,omitempty"`
	IndexingHistory     []IndexingCheck `bson:"indexing_history,omitempty" json:"indexingHistory,omitempty"`
	PhantomReady        bool            `bson:"phantom_ready" json:"phantomReady"`
	TotalIndexingMillis int64           `bson:"total_indexing_ms,omitempty" json:"totalIndexingTime,omitempty"`
	LastChecked         *time.Time      `bson:"last_checked,omitempty" json:"lastChecked,omitempty"`
}

// IndexingCheck is one entry in the poll history of a monitoring job.
type IndexingCheck struct {
	Attempt        int64     `bson:"attempt" json:"attempt"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
	Indexed        bool      `bson:"indexed" json:"indexed"`
	ResponseMillis int64     `bson:"response_ms" json:"responseTime"`
	Error          string    `bson:"error,omitempty" json:"error,omitempty"`
}

// BatchItem tracks one element of a batch mint operation.
type BatchItem struct {
	Index     int64       `bson:"index" json:"index"`
	Recipient string      `bson:"recipient" json:"recipient"`
	Metadata  NFTMetadata `bson:"metadata" json:"metadata"`
	Status    string      `bson:"status" json:"status"`
	Result    *MintResult `bson:"result,omitempty" json:"result,omitempty"`
	Error     string      `bson:"error,omitempty" json:"error,omitempty"`
}

type BatchOperation struct {
	Id              *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OperationId     string              `bson:"operation_id" json:"operationId"`
	Status          string              `bson:"status" json:"status"`
	CreatedAt       time.Time           `bson:"created_at" json:"createdAt"`
	CompletedAt     *time.Time          `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CollectionId    string              `bson:"collection_id" json:"collectionId"`
	Collection      CollectionRef       `bson:"collection" json:"collection"`
	TotalItems      int64               `bson:"total_items" json:"totalItems"`
	ProcessedItems  int64               `bson:"processed_items" json:"processedItems"`
	SuccessfulItems int64               `bson:"successful_items" json:"successfulItems"`
	FailedItems     int64               `bson:"failed_items" json:"failedItems"`
	Items           []BatchItem         `bson:"items" json:"items"`
}

const (
	CollectionBatchOperations = "batch_operations"
)
