// Package valuation converts raw on-chain amounts and oracle prices into
// USD figures.
//
// Every scale factor is a power of ten, so amounts and prices are turned into
// decimals by shifting the exponent and then multiplied. The result is exact;
// no rounding is applied at any step.
package valuation

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"liquidationScope/internal/asset"
	"liquidationScope/internal/model"
)

// PriceDecimals returns the price decimal count of sym at timestamp.
func PriceDecimals(sym asset.Symbol, timestamp int64) (int32, error) {
	profile, err := asset.Profile(sym)
	if err != nil {
		return 0, err
	}
	return profile.PriceDecimals(timestamp), nil
}

// TokenAmount scales a raw amount by the token decimals of sym.
func TokenAmount(sym asset.Symbol, raw *big.Int) (decimal.Decimal, error) {
	if raw == nil {
		return decimal.Decimal{}, fmt.Errorf("nil %s amount", sym)
	}
	profile, err := asset.Profile(sym)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromBigInt(raw, -profile.TokenDecimals), nil
}

// TokenValue returns the USD value of a raw amount at a raw oracle price.
func TokenValue(sym asset.Symbol, raw *big.Int, price *big.Int, timestamp int64) (decimal.Decimal, error) {
	if price == nil {
		return decimal.Decimal{}, fmt.Errorf("nil %s price", sym)
	}
	amount, err := TokenAmount(sym, raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	priceDecimals, err := PriceDecimals(sym, timestamp)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Mul(decimal.NewFromBigInt(price, -priceDecimals)), nil
}

// Value prices both legs of a liquidation.
func Value(liq model.Liquidation, collateralPrice, debtPrice *big.Int) (model.LiquidationValuation, error) {
	collateral, err := TokenValue(liq.CollateralToken, liq.CollateralTokenAmount, collateralPrice, liq.BlockTimestamp)
	if err != nil {
		return model.LiquidationValuation{}, fmt.Errorf("collateral value: %w", err)
	}
	debt, err := TokenValue(liq.DebtToken, liq.DebtTokenAmount, debtPrice, liq.BlockTimestamp)
	if err != nil {
		return model.LiquidationValuation{}, fmt.Errorf("debt value: %w", err)
	}

	return model.LiquidationValuation{
		Liquidation:          liq,
		CollateralTokenValue: collateral,
		DebtTokenValue:       debt,
	}, nil
}
