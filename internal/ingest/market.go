package ingest

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"liquidationScope/internal/asset"
	"liquidationScope/internal/model"
)

var (
	marketContract     = mustFeltHash("0x04c0a5193d58f74fbace4b74dcf65481e734ed1714121bdc571da345540efa05")
	liquidationKey     = mustFeltHash("0x0238a25785a13ab3138feb8f8f517e5a21a377cc1ad47809e9fd5e76daf01df7")
	liquidationDataLen = 7
)

// MarketDecoder decodes Liquidation events of the lending market.
type MarketDecoder struct{}

func NewMarketDecoder() *MarketDecoder {
	return &MarketDecoder{}
}

func (d *MarketDecoder) CanDecode(ev model.RawEvent) bool {
	return matches(ev, marketContract, liquidationKey)
}

// Decode reads liquidator, user, debt token, raw debt amount, face debt
// amount, collateral token and collateral amount. The face amount is stored.
func (d *MarketDecoder) Decode(ev model.RawEvent) (Event, error) {
	blockTS, txHash, err := parseHeader(ev)
	if err != nil {
		return Event{}, err
	}
	data, err := parseData(ev, liquidationDataLen)
	if err != nil {
		return Event{}, err
	}

	user := data[1]
	debtToken, err := asset.SymbolForToken(data[2])
	if err != nil {
		return Event{}, fmt.Errorf("debt token: %w", err)
	}
	collateralToken, err := asset.SymbolForToken(data[5])
	if err != nil {
		return Event{}, fmt.Errorf("collateral token: %w", err)
	}

	return Event{Liquidation: &model.Liquidation{
		BlockTimestamp:        blockTS,
		EventIndex:            ev.EventIndex,
		TransactionHash:       txHash,
		LiquidatedUserAddress: common.BigToHash(user),
		CollateralToken:       collateralToken,
		CollateralTokenAmount: data[6],
		DebtToken:             debtToken,
		DebtTokenAmount:       data[4],
	}}, nil
}
