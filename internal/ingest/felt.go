package ingest

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Field elements are below 2^252.
const feltBits = 252

// ParseFelt parses a 0x-prefixed hex field element. Leading zeros are allowed.
func ParseFelt(input string) (*big.Int, error) {
	s := strings.TrimSpace(input)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, fmt.Errorf("invalid felt %q: missing 0x prefix", input)
	}
	s = s[2:]
	if s == "" {
		return nil, fmt.Errorf("invalid felt %q: empty", input)
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("invalid felt %q", input)
	}
	if v.BitLen() > feltBits {
		return nil, fmt.Errorf("invalid felt %q: exceeds %d bits", input, feltBits)
	}
	return v, nil
}

// ParseFeltHash parses a field element into its 32-byte big-endian form.
func ParseFeltHash(input string) (common.Hash, error) {
	v, err := ParseFelt(input)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BigToHash(v), nil
}

func mustFeltHash(input string) common.Hash {
	h, err := ParseFeltHash(input)
	if err != nil {
		panic(err)
	}
	return h
}
