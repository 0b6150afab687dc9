package model

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// OrderID is the replay-guard handle of a signed sale authorization. Any
// 32-byte value works; DeriveOrderID is the recommended construction.
type OrderID [32]byte

func (id OrderID) Hex() string {
	return fmt.Sprintf("0x%x", id[:])
}

// DeriveOrderID builds an order id from the seller, the ticket, and an
// explicit nonce. The nonce is the seller's to manage (a per-ticket counter
// or random salt); two orders with distinct nonces never collide, unlike a
// timestamp-derived id.
func DeriveOrderID(seller common.Address, ticketID uint64, nonce uint64) OrderID {
	var fields [16]byte
	binary.BigEndian.PutUint64(fields[:8], ticketID)
	binary.BigEndian.PutUint64(fields[8:], nonce)

	return OrderID(Keccak256(seller.Bytes(), fields[:]))
}

// Order is a seller's intent to sell one ticket at one price. It has no
// ledger-side existence until fulfillment; the settlement engine rebuilds it
// from caller-supplied fields and checks the signature against Hash().
type Order struct {
	ID       OrderID
	TicketID uint64
	Price    *big.Int
	Seller   common.Address
}

func (o *Order) Hash() common.Hash {
	return MessageHash(o.ID, o.TicketID, o.Price)
}
