package asset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSymbol is returned for symbols outside the supported asset set.
var ErrUnknownSymbol = errors.New("unknown asset symbol")

// Symbol identifies one of the supported assets.
type Symbol uint8

const (
	ETH Symbol = iota + 1
	USDC
	WBTC
	USDT
	WSTETH
	STRK
	DAI
)

var symbolNames = map[Symbol]string{
	ETH:    "ETH",
	USDC:   "USDC",
	WBTC:   "WBTC",
	USDT:   "USDT",
	WSTETH: "WSTETH",
	STRK:   "STRK",
	DAI:    "DAI",
}

// Symbols returns every supported asset in declaration order.
func Symbols() []Symbol {
	return []Symbol{ETH, USDC, WBTC, USDT, WSTETH, STRK, DAI}
}

// ParseSymbol converts a ticker such as "wsteth" into a Symbol.
func ParseSymbol(input string) (Symbol, error) {
	name := strings.ToUpper(strings.TrimSpace(input))
	for sym, known := range symbolNames {
		if known == name {
			return sym, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, input)
}

// Valid reports whether s is part of the supported set.
func (s Symbol) Valid() bool {
	_, ok := symbolNames[s]
	return ok
}

func (s Symbol) String() string {
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Symbol(%d)", uint8(s))
}

// MarshalText encodes the ticker.
func (s Symbol) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSymbol, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a ticker.
func (s *Symbol) UnmarshalText(text []byte) error {
	parsed, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
