package asset

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Oracle pair ids are the ASCII pair name packed into a felt, e.g. "ETH/USD".
var pairIDs = map[common.Hash]Symbol{
	common.HexToHash("0x000000000000000000000000000000000000000000000000004554482f555344"): ETH,
	common.HexToHash("0x000000000000000000000000000000000000000000000000555344432f555344"): USDC,
	common.HexToHash("0x000000000000000000000000000000000000000000000000004254432f555344"): WBTC,
	common.HexToHash("0x000000000000000000000000000000000000000000000000555344542f555344"): USDT,
	common.HexToHash("0x000000000000000000000000000000000000000000005753544554482f555344"): WSTETH,
	common.HexToHash("0x0000000000000000000000000000000000000000000000005354524b2f555344"): STRK,
	common.HexToHash("0x000000000000000000000000000000000000000000000000004441492f555344"): DAI,
}

var tokenAddresses = map[common.Hash]Symbol{
	common.HexToHash("0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7"): ETH,
	common.HexToHash("0x053c91253bc9682c04929ca02ed00b3e423f6710d2ee7e0d5ebb06f3ecf368a8"): USDC,
	common.HexToHash("0x03fe2b97c1fd336e750087d68b9b867997fd64a2661ff3ca5a7c771641e8e7ac"): WBTC,
	common.HexToHash("0x068f5c6a61780768455de69077e07e89787839bf8166decfbf92b645209c0fb8"): USDT,
	common.HexToHash("0x042b8f0484674ca266ac5d08e4ac6a3fe65bd3129795def2dca5c34ecc5f96d2"): WSTETH,
	common.HexToHash("0x04718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d"): STRK,
	// DAI v0 and DAI
	common.HexToHash("0x00da114221cb83fa859dbdb4c44beeaa0bb37c7537ad5ae66fe5e0efd20e6eb3"): DAI,
	common.HexToHash("0x05574eb6b8789a91466f902c380d978e472db68170ff82a5b650b95a58ddf4ad"): DAI,
}

// SymbolForPairID resolves an oracle pair id felt.
func SymbolForPairID(pairID *big.Int) (Symbol, error) {
	if pairID == nil {
		return 0, fmt.Errorf("%w: nil pair id", ErrUnknownSymbol)
	}
	sym, ok := pairIDs[common.BigToHash(pairID)]
	if !ok {
		return 0, fmt.Errorf("%w: pair id %#x", ErrUnknownSymbol, pairID)
	}
	return sym, nil
}

// SymbolForToken resolves a token contract address felt.
func SymbolForToken(address *big.Int) (Symbol, error) {
	if address == nil {
		return 0, fmt.Errorf("%w: nil token address", ErrUnknownSymbol)
	}
	sym, ok := tokenAddresses[common.BigToHash(address)]
	if !ok {
		return 0, fmt.Errorf("%w: token %#x", ErrUnknownSymbol, address)
	}
	return sym, nil
}
