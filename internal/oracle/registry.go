package oracle

import (
	"fmt"
	"math/big"

	"liquidationScope/internal/asset"
)

// Registry holds one worksheet per supported asset for a single run.
type Registry struct {
	worksheets map[asset.Symbol]*Worksheet
}

// NewRegistry returns a registry with an empty worksheet per supported asset.
func NewRegistry() *Registry {
	symbols := asset.Symbols()
	r := &Registry{worksheets: make(map[asset.Symbol]*Worksheet, len(symbols))}
	for _, sym := range symbols {
		r.worksheets[sym] = NewWorksheet()
	}
	return r
}

// Worksheet returns the worksheet of sym.
func (r *Registry) Worksheet(sym asset.Symbol) (*Worksheet, error) {
	w, ok := r.worksheets[sym]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, sym)
	}
	return w, nil
}

// MedianPrice is a shorthand for Worksheet(sym).MedianPrice(current).
func (r *Registry) MedianPrice(sym asset.Symbol, current int64) (*big.Int, error) {
	w, err := r.Worksheet(sym)
	if err != nil {
		return nil, err
	}
	return w.MedianPrice(current)
}
