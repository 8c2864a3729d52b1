package model

import "encoding/json"

// RawEvent is a chain event as exported by the stream indexer.
type RawEvent struct {
	BlockNumber     uint64          `json:"block_number"`
	BlockTimestamp  json.RawMessage `json:"block_timestamp"`
	TransactionHash string          `json:"transaction_hash"`
	EventIndex      int64           `json:"event_index"`
	FromAddress     string          `json:"from_address"`
	Keys            []string        `json:"keys"`
	Data            []string        `json:"data"`
}
