package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// MintEvent records one primary issuance.
type MintEvent struct {
	Buyer     common.Address
	TicketID  uint64
	Price     *big.Int
	Timestamp uint64
}

// TradeEvent records one settled secondary sale.
type TradeEvent struct {
	Seller    common.Address
	Buyer     common.Address
	OrderID   OrderID
	TicketID  uint64
	Price     *big.Int
	Timestamp uint64
}
