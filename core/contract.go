package core

import (
	"encoding/binary"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"

	"nft-ticket-market/core/model"
)

// WeiPerToken is the base-unit scale: 10^18 subunits per whole token.
var WeiPerToken = big.NewInt(1_000_000_000_000_000_000)

var deployNonce uint64

// newContractAddress assigns a process-unique address to a deployed
// component, playing the role of a chain's CREATE address. Holders grant
// token allowances and ticket approvals against it.
func newContractAddress(kind string) common.Address {
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], atomic.AddUint64(&deployNonce, 1))

	return common.BytesToAddress(model.Keccak256([]byte(kind), nonce[:]).Bytes()[12:])
}

func validAmount(amount *big.Int) bool {
	return amount != nil && amount.Sign() >= 0
}
