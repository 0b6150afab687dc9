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

// RoyaltyDenominator is the fixed basis for the royalty fraction.
const RoyaltyDenominator uint32 = 10000

// Ticket is the unique-asset registry together with primary issuance and
// the royalty read. Identifiers are 1-based and dense: the k-th successful
// purchase mints ticket k, up to maxSupply, and tickets are never burned.
type Ticket struct {
	mu sync.RWMutex

	name   string
	symbol string
	addr   common.Address
	owner  common.Address

	payment          PaymentLedger
	basePrice        *big.Int
	royaltyNumerator uint32
	maxSupply        uint64

	issued            uint64
	owners            map[uint64]common.Address
	holdings          map[common.Address]uint64
	tokenApprovals    map[uint64]common.Address
	operatorApprovals map[common.Address]map[common.Address]bool

	mints []model.MintEvent
}

func NewTicket(name, symbol string, payment PaymentLedger, basePrice *big.Int, owner common.Address, royaltyNumerator uint32, maxSupply uint64) *Ticket {
	t := &Ticket{
		name:              name,
		symbol:            symbol,
		addr:              newContractAddress("ticket:" + symbol),
		owner:             owner,
		payment:           payment,
		basePrice:         new(big.Int).Set(basePrice),
		royaltyNumerator:  royaltyNumerator,
		maxSupply:         maxSupply,
		owners:            make(map[uint64]common.Address),
		holdings:          make(map[common.Address]uint64),
		tokenApprovals:    make(map[uint64]common.Address),
		operatorApprovals: make(map[common.Address]map[common.Address]bool),
	}

	logrus.Infof("deployed ticket %s (%s) at %s, base price %s, supply %d, royalty %d/%d",
		name, symbol, t.addr, basePrice, maxSupply, royaltyNumerator, RoyaltyDenominator)

	return t
}

func (t *Ticket) Name() string            { return t.name }
func (t *Ticket) Symbol() string          { return t.symbol }
func (t *Ticket) Address() common.Address { return t.addr }

func (t *Ticket) BasePrice() *big.Int { return new(big.Int).Set(t.basePrice) }

func (t *Ticket) Issued() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.issued
}

func (t *Ticket) BalanceOf(account common.Address) uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.holdings[account]
}

func (t *Ticket) OwnerOf(id uint64) (common.Address, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	owner, ok := t.owners[id]
	if !ok {
		return common.Address{}, ErrorUnknownTicket
	}
	return owner, nil
}

// BuyFreshTicket sells the next sequential ticket to buyer at the base
// price. The buyer must have approved this contract's address on the payment
// ledger beforehand. Supply is checked before payment is pulled, so a failed
// call mints nothing and moves nothing.
func (t *Ticket) BuyFreshTicket(buyer common.Address) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.issued >= t.maxSupply {
		return 0, ErrorInsufficientSupply
	}

	if err := t.payment.TransferFrom(t.addr, buyer, t.owner, t.basePrice); err != nil {
		return 0, err
	}

	t.issued++
	id := t.issued
	t.owners[id] = buyer
	t.holdings[buyer]++
	t.mints = append(t.mints, model.MintEvent{
		Buyer:     buyer,
		TicketID:  id,
		Price:     new(big.Int).Set(t.basePrice),
		Timestamp: uint64(time.Now().Unix()),
	})

	monitoring.TicketsMinted.Inc()
	logrus.Infof("minted ticket %d to %s", id, buyer)

	return id, nil
}

// Mints returns the issuance log.
func (t *Ticket) Mints() []model.MintEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]model.MintEvent(nil), t.mints...)
}

// Approve grants operator transfer rights over one ticket. Only the current
// owner may grant; the approval clears on transfer.
func (t *Ticket) Approve(owner, operator common.Address, id uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	holder, ok := t.owners[id]
	if !ok {
		return ErrorUnknownTicket
	}
	if holder != owner {
		return ErrorNotOwnerOrNotApproved
	}
	t.tokenApprovals[id] = operator

	return nil
}

func (t *Ticket) GetApproved(id uint64) (common.Address, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if _, ok := t.owners[id]; !ok {
		return common.Address{}, ErrorUnknownTicket
	}
	return t.tokenApprovals[id], nil
}

func (t *Ticket) SetApprovalForAll(owner, operator common.Address, approved bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.operatorApprovals[owner]; !ok {
		t.operatorApprovals[owner] = make(map[common.Address]bool)
	}
	t.operatorApprovals[owner][operator] = approved
}

func (t *Ticket) IsApprovedForAll(owner, operator common.Address) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.operatorApprovals[owner][operator]
}

// TransferFrom moves ticket id from `from` to `to`, driven by operator. The
// operator must be the owner, the ticket's approved operator, or approved
// for all of the owner's tickets. Per-ticket approval clears on transfer.
func (t *Ticket) TransferFrom(operator, from, to common.Address, id uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	holder, ok := t.owners[id]
	if !ok {
		return ErrorUnknownTicket
	}
	if holder != from {
		return ErrorNotOwnerOrNotApproved
	}
	if operator != holder && t.tokenApprovals[id] != operator && !t.operatorApprovals[holder][operator] {
		return ErrorNotOwnerOrNotApproved
	}

	delete(t.tokenApprovals, id)
	t.owners[id] = to
	t.holdings[from]--
	t.holdings[to]++

	return nil
}

// RoyaltyInfo reports the collection's secondary-sale fee fraction. It is a
// pure read for integrators; settlement does not deduct it.
func (t *Ticket) RoyaltyInfo() (numerator, denominator uint32) {
	return t.royaltyNumerator, RoyaltyDenominator
}

// RoyaltyAmount computes the fee an integrator owes on a sale price.
func (t *Ticket) RoyaltyAmount(salePrice *big.Int) *big.Int {
	fee := new(big.Int).Mul(salePrice, big.NewInt(int64(t.royaltyNumerator)))
	return fee.Div(fee, big.NewInt(int64(RoyaltyDenominator)))
}
