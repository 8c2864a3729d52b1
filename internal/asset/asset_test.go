package asset

import (
	"errors"
	"math/big"
	"testing"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input string
		want  Symbol
	}{
		{"ETH", ETH},
		{"usdc", USDC},
		{" WSTETH ", WSTETH},
		{"Dai", DAI},
	}
	for _, tt := range tests {
		got, err := ParseSymbol(tt.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("parse %q: got %s want %s", tt.input, got, tt.want)
		}
	}

	if _, err := ParseSymbol("DOGE"); !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestSymbolsAreClosedSet(t *testing.T) {
	syms := Symbols()
	if len(syms) != 7 {
		t.Fatalf("expected 7 symbols, got %d", len(syms))
	}
	for _, s := range syms {
		if !s.Valid() {
			t.Fatalf("symbol %d not valid", s)
		}
		if _, err := Profile(s); err != nil {
			t.Fatalf("profile %s: %v", s, err)
		}
	}
	if Symbol(0).Valid() || Symbol(42).Valid() {
		t.Fatalf("out of range symbols must be invalid")
	}
	if _, err := Profile(Symbol(42)); !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestPriceDecimalsEpochBoundary(t *testing.T) {
	usdc, _ := Profile(USDC)
	if got := usdc.PriceDecimals(PriceEpochBoundary); got != 8 {
		t.Fatalf("at boundary: got %d want 8", got)
	}
	if got := usdc.PriceDecimals(PriceEpochBoundary + 1); got != 6 {
		t.Fatalf("after boundary: got %d want 6", got)
	}

	eth, _ := Profile(ETH)
	if got := eth.PriceDecimals(PriceEpochBoundary + 1); got != 8 {
		t.Fatalf("eth has no post-epoch override: got %d", got)
	}
}

func TestSymbolForPairID(t *testing.T) {
	// "ETH/USD" as ASCII.
	pair := new(big.Int).SetBytes([]byte("ETH/USD"))
	got, err := SymbolForPairID(pair)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != ETH {
		t.Fatalf("got %s want ETH", got)
	}

	pair = new(big.Int).SetBytes([]byte("WSTETH/USD"))
	if got, _ := SymbolForPairID(pair); got != WSTETH {
		t.Fatalf("got %s want WSTETH", got)
	}

	if _, err := SymbolForPairID(new(big.Int).SetBytes([]byte("DOGE/USD"))); !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestSymbolForTokenBothDAIAddresses(t *testing.T) {
	for _, hex := range []string{
		"da114221cb83fa859dbdb4c44beeaa0bb37c7537ad5ae66fe5e0efd20e6eb3",
		"5574eb6b8789a91466f902c380d978e472db68170ff82a5b650b95a58ddf4ad",
	} {
		addr, _ := new(big.Int).SetString(hex, 16)
		got, err := SymbolForToken(addr)
		if err != nil {
			t.Fatalf("lookup %s: %v", hex, err)
		}
		if got != DAI {
			t.Fatalf("got %s want DAI", got)
		}
	}
}

func TestSymbolTextRoundTrip(t *testing.T) {
	text, err := STRK.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var s Symbol
	if err := s.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s != STRK {
		t.Fatalf("got %s", s)
	}
}
