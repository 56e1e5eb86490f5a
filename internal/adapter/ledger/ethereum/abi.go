package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// marketplaceABI covers the contract surface the gateway calls.
const marketplaceABI = `[
  {"type":"function","name":"itemCount","stateMutability":"view","inputs":[],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"items","stateMutability":"view",
   "inputs":[{"name":"","type":"uint256"}],
   "outputs":[
     {"name":"id","type":"uint256"},
     {"name":"name","type":"string"},
     {"name":"image","type":"string"},
     {"name":"price","type":"uint256"},
     {"name":"seller","type":"address"},
     {"name":"owner","type":"address"},
     {"name":"isSold","type":"bool"}]},
  {"type":"function","name":"getItemsByOwner","stateMutability":"view",
   "inputs":[{"name":"owner","type":"address"}],
   "outputs":[{"name":"","type":"uint256[]"}]},
  {"type":"function","name":"listItem","stateMutability":"nonpayable",
   "inputs":[{"name":"name","type":"string"},{"name":"image","type":"string"},{"name":"price","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"purchaseItem","stateMutability":"payable",
   "inputs":[{"name":"id","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"transferItem","stateMutability":"nonpayable",
   "inputs":[{"name":"id","type":"uint256"},{"name":"to","type":"address"}],
   "outputs":[]}
]`

// Contract method names.
const (
	methodItemCount    = "itemCount"
	methodItems        = "items"
	methodItemsByOwner = "getItemsByOwner"
	methodListItem     = "listItem"
	methodPurchaseItem = "purchaseItem"
	methodTransferItem = "transferItem"
)

// ParsedABI is the parsed marketplace contract ABI.
var ParsedABI = mustParseABI()

func mustParseABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(marketplaceABI))
	if err != nil {
		panic("ethereum: invalid marketplace ABI: " + err.Error())
	}
	return parsed
}
