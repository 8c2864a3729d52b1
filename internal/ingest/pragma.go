package ingest

import (
	"fmt"

	"liquidationScope/internal/asset"
	"liquidationScope/internal/model"
)

// Pragma moved to a new oracle contract after this block. The new contract
// emits price and pair id in swapped positions.
const PragmaV0EndBlock = 524957

var (
	pragmaV0Contract       = mustFeltHash("0x0346c57f094d641ad94e43468628d8e9c574dcb2803ec372576ccc60a40be2c4")
	pragmaV1Contract       = mustFeltHash("0x2a85bd616f912537c50a49a4076db02c00b29b2cdc8a197ce92ed1837fa875b")
	submittedSpotEntryKey  = mustFeltHash("0x0280bb2099800026f90c334a3a23888ffe718a2920ffbbf4f44c6d3d5efb613c")
	submittedSpotEntryData = 6
)

// PragmaDecoder decodes SubmittedSpotEntry events of both oracle versions.
type PragmaDecoder struct{}

func NewPragmaDecoder() *PragmaDecoder {
	return &PragmaDecoder{}
}

// CanDecode accepts the V0 contract up to PragmaV0EndBlock and the V1
// contract after it.
func (d *PragmaDecoder) CanDecode(ev model.RawEvent) bool {
	if ev.BlockNumber <= PragmaV0EndBlock {
		return matches(ev, pragmaV0Contract, submittedSpotEntryKey)
	}
	return matches(ev, pragmaV1Contract, submittedSpotEntryKey)
}

func (d *PragmaDecoder) Decode(ev model.RawEvent) (Event, error) {
	blockTS, _, err := parseHeader(ev)
	if err != nil {
		return Event{}, err
	}
	data, err := parseData(ev, submittedSpotEntryData)
	if err != nil {
		return Event{}, err
	}

	timestamp, source, publisher := data[0], data[1], data[2]
	pairID, price := data[3], data[4]
	if ev.BlockNumber > PragmaV0EndBlock {
		price, pairID = data[3], data[4]
	}
	volume := data[5]

	sym, err := asset.SymbolForPairID(pairID)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrNotTracked, err)
	}
	if !timestamp.IsInt64() {
		return Event{}, fmt.Errorf("source timestamp %s out of range", timestamp)
	}

	return Event{Spot: &model.SubmittedSpotEntry{
		BlockTimestamp:  blockTS,
		SourceTimestamp: timestamp.Int64(),
		EventIndex:      ev.EventIndex,
		Source:          source,
		Publisher:       publisher,
		TokenSymbol:     sym,
		Price:           price,
		Volume:          volume,
	}}, nil
}
