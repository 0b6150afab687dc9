package main

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"

	"nft-ticket-market/config"
	"nft-ticket-market/core"
	"nft-ticket-market/core/model"
)

func main() {
	cfg := config.Load()

	owner := mustKey()
	seller := mustKey()
	buyer := mustKey()

	ownerAddr := crypto.PubkeyToAddress(owner.PublicKey)
	sellerAddr := crypto.PubkeyToAddress(seller.PublicKey)
	buyerAddr := crypto.PubkeyToAddress(buyer.PublicKey)

	coin := core.NewCoin(cfg.CoinName, cfg.CoinSymbol, ownerAddr)
	ticket := core.NewTicket(cfg.TicketName, cfg.TicketSymbol, coin, cfg.BasePrice, ownerAddr, cfg.RoyaltyNumerator, cfg.MaxSupply)
	trader := core.NewTrader(coin, ticket, cfg.BasePrice)

	// fund the seller for the whole primary supply and let them buy it out
	supplyCost := new(big.Int).Mul(cfg.BasePrice, new(big.Int).SetUint64(cfg.MaxSupply))
	must(coin.Transfer(ownerAddr, sellerAddr, supplyCost))
	must(coin.Approve(sellerAddr, ticket.Address(), supplyCost))

	for i := uint64(0); i < cfg.MaxSupply; i++ {
		if _, err := ticket.BuyFreshTicket(sellerAddr); err != nil {
			logrus.Fatalf("primary purchase %d failed: %v", i+1, err)
		}
	}
	logrus.Infof("seller holds %d tickets", ticket.BalanceOf(sellerAddr))

	if _, err := ticket.BuyFreshTicket(sellerAddr); err != nil {
		logrus.Infof("purchase past max supply rejected: %v", err)
	} else {
		logrus.Fatal("purchase past max supply unexpectedly succeeded")
	}

	// resale at the cap: 110% of the issuance price
	resalePrice := new(big.Int).Div(new(big.Int).Mul(cfg.BasePrice, big.NewInt(11)), big.NewInt(10))
	resaleTicket := cfg.MaxSupply

	must(coin.Transfer(ownerAddr, buyerAddr, resalePrice))
	must(coin.Approve(buyerAddr, trader.Address(), resalePrice))
	ticket.SetApprovalForAll(sellerAddr, trader.Address(), true)

	order := &model.Order{
		ID:       model.DeriveOrderID(sellerAddr, resaleTicket, 1),
		TicketID: resaleTicket,
		Price:    resalePrice,
		Seller:   sellerAddr,
	}
	sig, err := model.SignOrder(seller, order)
	if err != nil {
		logrus.Fatalf("sign order: %v", err)
	}

	must(trader.FulfillTicketSale(buyerAddr, order.ID, order.Price, sellerAddr, order.TicketID, sig))

	newOwner, err := ticket.OwnerOf(resaleTicket)
	must(err)
	logrus.Infof("ticket %d now owned by %s (buyer %s)", resaleTicket, newOwner, buyerAddr)

	// over-cap resale must be rejected even with a valid signature
	overPrice := new(big.Int).Mul(cfg.BasePrice, big.NewInt(2))
	overOrder := &model.Order{
		ID:       model.DeriveOrderID(sellerAddr, 99, 2),
		TicketID: 99,
		Price:    overPrice,
		Seller:   sellerAddr,
	}
	overSig, err := model.SignOrder(seller, overOrder)
	if err != nil {
		logrus.Fatalf("sign order: %v", err)
	}
	if err := trader.FulfillTicketSale(buyerAddr, overOrder.ID, overOrder.Price, sellerAddr, overOrder.TicketID, overSig); err != nil {
		logrus.Infof("over-cap resale rejected: %v", err)
	} else {
		logrus.Fatal("over-cap resale unexpectedly settled")
	}

	num, den := ticket.RoyaltyInfo()
	logrus.Infof("royalty %d/%d, fee on last sale %s", num, den, ticket.RoyaltyAmount(resalePrice))
}

func mustKey() *ecdsa.PrivateKey {
	key, err := crypto.GenerateKey()
	if err != nil {
		logrus.Fatalf("generate key: %v", err)
	}
	return key
}

func must(err error) {
	if err != nil {
		logrus.Fatal(err)
	}
}
