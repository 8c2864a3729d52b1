package pipeline

import (
	"context"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"liquidationScope/internal/asset"
	"liquidationScope/internal/model"
)

type memSource struct {
	mu           sync.Mutex
	spots        []model.SubmittedSpotEntry
	liquidations []model.Liquidation
	pageCalls    int
	failAt       int64
	failErr      error
}

func (s *memSource) DistinctTimestamps(_ context.Context, after int64, limit int) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageCalls++

	seen := make(map[int64]struct{})
	for _, e := range s.spots {
		seen[e.BlockTimestamp] = struct{}{}
	}
	for _, l := range s.liquidations {
		seen[l.BlockTimestamp] = struct{}{}
	}

	out := make([]int64, 0, len(seen))
	for ts := range seen {
		if ts > after {
			out = append(out, ts)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memSource) SpotEntriesAt(_ context.Context, ts int64) ([]model.SubmittedSpotEntry, error) {
	if s.failErr != nil && ts == s.failAt {
		return nil, s.failErr
	}
	var out []model.SubmittedSpotEntry
	for _, e := range s.spots {
		if e.BlockTimestamp == ts {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memSource) LiquidationsAt(_ context.Context, ts int64) ([]model.Liquidation, error) {
	var out []model.Liquidation
	for _, l := range s.liquidations {
		if l.BlockTimestamp == ts {
			out = append(out, l)
		}
	}
	return out, nil
}

type sliceSink struct {
	rows []model.LiquidationValuation
}

func (s *sliceSink) Write(v model.LiquidationValuation) error {
	s.rows = append(s.rows, v)
	return nil
}

func spot(blockTS int64, index int64, sym asset.Symbol, source int64, price int64) model.SubmittedSpotEntry {
	return model.SubmittedSpotEntry{
		BlockTimestamp:  blockTS,
		SourceTimestamp: blockTS,
		EventIndex:      index,
		Source:          big.NewInt(source),
		Publisher:       big.NewInt(1),
		TokenSymbol:     sym,
		Price:           big.NewInt(price),
		Volume:          big.NewInt(0),
	}
}

func liquidation(blockTS int64, index int64, collateral asset.Symbol, collateralAmount string, debt asset.Symbol, debtAmount string) model.Liquidation {
	c, _ := new(big.Int).SetString(collateralAmount, 10)
	d, _ := new(big.Int).SetString(debtAmount, 10)
	return model.Liquidation{
		BlockTimestamp:        blockTS,
		EventIndex:            index,
		TransactionHash:       common.BigToHash(big.NewInt(blockTS*100 + index)),
		LiquidatedUserAddress: common.HexToHash("0xbeef"),
		CollateralToken:       collateral,
		CollateralTokenAmount: c,
		DebtToken:             debt,
		DebtTokenAmount:       d,
	}
}
