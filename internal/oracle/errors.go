package oracle

import (
	"errors"

	"liquidationScope/internal/asset"
)

var (
	// ErrWorksheetFull means an insert would exceed MaxWorksheetSize. Fatal for a run.
	ErrWorksheetFull = errors.New("price worksheet is full")
	// ErrNoPriceEstimate means no entry is fresh enough to price an asset.
	ErrNoPriceEstimate = errors.New("no price estimate")
	// ErrUnknownAsset is returned for lookups outside the registry.
	ErrUnknownAsset = asset.ErrUnknownSymbol
)
