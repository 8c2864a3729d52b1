package asset

import "fmt"

// PriceEpochBoundary is the block timestamp after which the oracle publishes
// stablecoin prices with their own decimal count.
const PriceEpochBoundary int64 = 1706608996

// DecimalProfile describes how raw on-chain integers of an asset are scaled.
type DecimalProfile struct {
	TokenDecimals            int32
	PriceDecimalsBeforeEpoch int32
	// PriceDecimalsAfterEpoch is nil when the asset never changed format.
	PriceDecimalsAfterEpoch *int32
}

func decimalsPtr(v int32) *int32 {
	return &v
}

var profiles = map[Symbol]DecimalProfile{
	ETH:    {TokenDecimals: 18, PriceDecimalsBeforeEpoch: 8},
	USDC:   {TokenDecimals: 6, PriceDecimalsBeforeEpoch: 8, PriceDecimalsAfterEpoch: decimalsPtr(6)},
	WBTC:   {TokenDecimals: 8, PriceDecimalsBeforeEpoch: 8},
	USDT:   {TokenDecimals: 6, PriceDecimalsBeforeEpoch: 8, PriceDecimalsAfterEpoch: decimalsPtr(6)},
	WSTETH: {TokenDecimals: 18, PriceDecimalsBeforeEpoch: 8},
	STRK:   {TokenDecimals: 18, PriceDecimalsBeforeEpoch: 8},
	DAI:    {TokenDecimals: 18, PriceDecimalsBeforeEpoch: 8},
}

// Profile returns the decimal profile of s.
func Profile(s Symbol) (DecimalProfile, error) {
	profile, ok := profiles[s]
	if !ok {
		return DecimalProfile{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, s)
	}
	return profile, nil
}

// PriceDecimals returns the price decimal count in effect at timestamp.
// The boundary itself still belongs to the earlier format.
func (p DecimalProfile) PriceDecimals(timestamp int64) int32 {
	if timestamp > PriceEpochBoundary && p.PriceDecimalsAfterEpoch != nil {
		return *p.PriceDecimalsAfterEpoch
	}
	return p.PriceDecimalsBeforeEpoch
}
