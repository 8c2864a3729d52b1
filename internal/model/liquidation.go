package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"liquidationScope/internal/asset"
)

// Liquidation is a market liquidation event as stored. Amounts are raw
// on-chain integers.
type Liquidation struct {
	BlockTimestamp        int64        `json:"block_timestamp"`
	EventIndex            int64        `json:"event_index"`
	TransactionHash       common.Hash  `json:"transaction_hash"`
	LiquidatedUserAddress common.Hash  `json:"liquidated_user_address"`
	CollateralToken       asset.Symbol `json:"collateral_token"`
	CollateralTokenAmount *big.Int     `json:"collateral_token_amount"`
	DebtToken             asset.Symbol `json:"debt_token"`
	DebtTokenAmount       *big.Int     `json:"debt_token_amount"`
}

// LiquidationValuation is a liquidation with the USD value of both legs.
type LiquidationValuation struct {
	Liquidation
	CollateralTokenValue decimal.Decimal `json:"collateral_token_value"`
	DebtTokenValue       decimal.Decimal `json:"debt_token_value"`
}
