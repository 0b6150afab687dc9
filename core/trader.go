package core

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"nft-ticket-market/core/model"
	"nft-ticket-market/monitoring"
)

// PaymentLedger is the fungible-token surface settlement needs.
type PaymentLedger interface {
	BalanceOf(account common.Address) *big.Int
	Allowance(owner, spender common.Address) *big.Int
	Approve(owner, spender common.Address, amount *big.Int) error
	Transfer(from, to common.Address, amount *big.Int) error
	TransferFrom(spender, from, to common.Address, amount *big.Int) error
}

// TicketRegistry is the unique-asset surface settlement needs.
type TicketRegistry interface {
	OwnerOf(id uint64) (common.Address, error)
	GetApproved(id uint64) (common.Address, error)
	IsApprovedForAll(owner, operator common.Address) bool
	TransferFrom(operator, from, to common.Address, id uint64) error
}

// resale cap: price may not exceed 110% of the original issuance price
var (
	capPriceFactor = big.NewInt(10)
	capBaseFactor  = big.NewInt(11)
)

// Trader settles seller-signed resale orders: it verifies the authorization,
// enforces the price cap against the fixed issuance price, swaps payment for
// ticket, and consumes the order id so the same authorization can never
// settle twice. Binding it to a Coin and a Ticket at construction covers
// both deployment shapes: standalone, or composed next to the Ticket.
type Trader struct {
	mu sync.Mutex

	addr      common.Address
	payment   PaymentLedger
	tickets   TicketRegistry
	basePrice *big.Int
	verifier  model.Verifier

	consumed map[model.OrderID]struct{}
	trades   []model.TradeEvent
}

func NewTrader(payment PaymentLedger, tickets TicketRegistry, basePrice *big.Int) *Trader {
	t := &Trader{
		addr:      newContractAddress("trader"),
		payment:   payment,
		tickets:   tickets,
		basePrice: new(big.Int).Set(basePrice),
		verifier:  model.EthVerifier{},
		consumed:  make(map[model.OrderID]struct{}),
	}

	logrus.Infof("deployed trader at %s, base price %s", t.addr, basePrice)

	return t
}

// Address is what buyers approve as payment spender and sellers approve as
// ticket operator.
func (t *Trader) Address() common.Address { return t.addr }

// GetMessageHash exposes the order codec with contract-ABI parity; sellers
// sign this hash (prefixed) off-platform.
func (t *Trader) GetMessageHash(orderID model.OrderID, ticketID uint64, price *big.Int) common.Hash {
	return model.MessageHash(orderID, ticketID, price)
}

func (t *Trader) Consumed(orderID model.OrderID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.consumed[orderID]
	return ok
}

// Trades returns the settlement log.
func (t *Trader) Trades() []model.TradeEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]model.TradeEvent(nil), t.trades...)
}

// FulfillTicketSale redeems a seller-signed order for the calling buyer.
// Checks run strictly before effects: signature, replay, price cap, then
// ownership and operator approval. Payment settles through escrow: it is
// pulled from the buyer to the trader's own address, and only forwarded to
// the seller once the ticket leg commits. If the ticket transfer fails
// (ownership raced away after the check), the refund comes from trader-held
// funds, which the seller cannot drain, so no partial effect survives. The
// order id is recorded only after both legs commit.
func (t *Trader) FulfillTicketSale(buyer common.Address, orderID model.OrderID, price *big.Int, seller common.Address, ticketID uint64, sig []byte) error {
	if !validAmount(price) {
		return ErrorInvalidAmount
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	hash := model.MessageHash(orderID, ticketID, price)
	signer, err := t.verifier.RecoverSigner(hash, sig)
	if err != nil || signer != seller {
		monitoring.Trades.WithLabelValues("rejected").Inc()
		logrus.Warnf("order %s: signature does not recover to %s", orderID.Hex(), seller)
		return ErrorInvalidSignature
	}

	if _, ok := t.consumed[orderID]; ok {
		monitoring.Trades.WithLabelValues("rejected").Inc()
		logrus.Warnf("order %s: already consumed", orderID.Hex())
		return ErrorOrderConsumed
	}

	// 10*price > 11*basePrice, integer form of price > 1.10*basePrice
	scaledPrice := new(big.Int).Mul(price, capPriceFactor)
	scaledCap := new(big.Int).Mul(t.basePrice, capBaseFactor)
	if scaledPrice.Cmp(scaledCap) > 0 {
		monitoring.Trades.WithLabelValues("rejected").Inc()
		logrus.Warnf("order %s: price %s over resale cap", orderID.Hex(), price)
		return ErrorPriceCapExceeded
	}

	owner, err := t.tickets.OwnerOf(ticketID)
	if err != nil {
		monitoring.Trades.WithLabelValues("rejected").Inc()
		return err
	}
	approved, err := t.tickets.GetApproved(ticketID)
	if err != nil {
		monitoring.Trades.WithLabelValues("rejected").Inc()
		return err
	}
	if owner != seller || (approved != t.addr && !t.tickets.IsApprovedForAll(seller, t.addr)) {
		monitoring.Trades.WithLabelValues("rejected").Inc()
		logrus.Warnf("order %s: %s is not owner of ticket %d or trader not approved", orderID.Hex(), seller, ticketID)
		return ErrorNotOwnerOrNotApproved
	}

	if err := t.payment.TransferFrom(t.addr, buyer, t.addr, price); err != nil {
		monitoring.Trades.WithLabelValues("rejected").Inc()
		logrus.Warnf("order %s: payment of %s from %s failed: %v", orderID.Hex(), price, buyer, err)
		return err
	}

	if err := t.tickets.TransferFrom(t.addr, seller, buyer, ticketID); err != nil {
		// ownership changed between check and transfer; the escrowed payment
		// goes back to the buyer from the trader's own balance
		if refundErr := t.payment.Transfer(t.addr, buyer, price); refundErr != nil {
			logrus.Errorf("order %s: refund of %s to %s failed: %v", orderID.Hex(), price, buyer, refundErr)
		}
		monitoring.Trades.WithLabelValues("rejected").Inc()
		return err
	}

	if err := t.payment.Transfer(t.addr, seller, price); err != nil {
		// unreachable with a well-formed ledger: the pull above left the
		// escrow funded for exactly this forward
		logrus.Errorf("order %s: escrow payout of %s to %s failed: %v", orderID.Hex(), price, seller, err)
		return err
	}

	t.consumed[orderID] = struct{}{}
	t.trades = append(t.trades, model.TradeEvent{
		Seller:    seller,
		Buyer:     buyer,
		OrderID:   orderID,
		TicketID:  ticketID,
		Price:     new(big.Int).Set(price),
		Timestamp: uint64(time.Now().Unix()),
	})

	monitoring.Trades.WithLabelValues("settled").Inc()
	monitoring.AddTradeVolume(price)
	logrus.Infof("order %s: ticket %d sold by %s to %s for %s", orderID.Hex(), ticketID, seller, buyer, price)

	return nil
}
