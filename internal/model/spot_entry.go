package model

import (
	"math/big"

	"liquidationScope/internal/asset"
)

// SubmittedSpotEntry is one oracle price submission as stored.
type SubmittedSpotEntry struct {
	BlockTimestamp  int64        `json:"block_timestamp"`
	SourceTimestamp int64        `json:"source_timestamp"`
	EventIndex      int64        `json:"event_index"`
	Source          *big.Int     `json:"source"`
	Publisher       *big.Int     `json:"publisher"`
	TokenSymbol     asset.Symbol `json:"token_symbol"`
	Price           *big.Int     `json:"price"`
	Volume          *big.Int     `json:"volume"`
}
