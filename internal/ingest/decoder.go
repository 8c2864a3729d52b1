// Package ingest turns raw chain events into rows of the two event tables.
package ingest

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"liquidationScope/internal/model"
)

// ErrNotTracked marks a well-formed event that is deliberately not stored,
// such as a price submission for an unsupported pair.
var ErrNotTracked = errors.New("event not tracked")

// Event is the result of decoding one raw event. Exactly one field is set.
type Event struct {
	Spot        *model.SubmittedSpotEntry
	Liquidation *model.Liquidation
}

// Decoder converts raw events emitted by one kind of contract.
type Decoder interface {
	CanDecode(ev model.RawEvent) bool
	Decode(ev model.RawEvent) (Event, error)
}

// Decoders returns the decoders for the oracle and the lending market.
func Decoders() []Decoder {
	return []Decoder{NewPragmaDecoder(), NewMarketDecoder()}
}

// matches reports whether ev was emitted by contract with selector as its
// first key.
func matches(ev model.RawEvent, contract, selector common.Hash) bool {
	if len(ev.Keys) == 0 {
		return false
	}
	from, err := ParseFeltHash(ev.FromAddress)
	if err != nil || from != contract {
		return false
	}
	key, err := ParseFeltHash(ev.Keys[0])
	return err == nil && key == selector
}

func parseData(ev model.RawEvent, want int) ([]*big.Int, error) {
	if len(ev.Data) != want {
		return nil, fmt.Errorf("expected %d data felts, got %d", want, len(ev.Data))
	}
	out := make([]*big.Int, len(ev.Data))
	for i, raw := range ev.Data {
		v, err := ParseFelt(raw)
		if err != nil {
			return nil, fmt.Errorf("data[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseHeader(ev model.RawEvent) (int64, common.Hash, error) {
	ts, err := ParseTimestamp(ev.BlockTimestamp)
	if err != nil {
		return 0, common.Hash{}, err
	}
	if ev.TransactionHash == "" {
		return 0, common.Hash{}, fmt.Errorf("missing transaction hash")
	}
	txHash, err := ParseFeltHash(ev.TransactionHash)
	if err != nil {
		return 0, common.Hash{}, fmt.Errorf("transaction hash: %w", err)
	}
	return ts, txHash, nil
}
