package core

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

// initialSupplyTokens is minted to the deployer, in whole tokens.
const initialSupplyTokens = 50000

// Coin is the fungible payment ledger: balances plus allowance-gated
// delegated transfers. Every method names its caller explicitly; there is no
// ambient transaction sender here. One lock serializes all mutation.
type Coin struct {
	mu sync.RWMutex

	name   string
	symbol string
	addr   common.Address

	totalSupply *big.Int
	balances    map[common.Address]*big.Int
	allowances  map[common.Address]map[common.Address]*big.Int
}

func NewCoin(name, symbol string, deployer common.Address) *Coin {
	supply := new(big.Int).Mul(big.NewInt(initialSupplyTokens), WeiPerToken)
	c := &Coin{
		name:        name,
		symbol:      symbol,
		addr:        newContractAddress("coin:" + symbol),
		totalSupply: supply,
		balances:    map[common.Address]*big.Int{deployer: supply},
		allowances:  make(map[common.Address]map[common.Address]*big.Int),
	}

	logrus.Infof("deployed coin %s (%s) at %s, minted %s to %s", name, symbol, c.addr, supply, deployer)

	return c
}

func (c *Coin) Name() string            { return c.name }
func (c *Coin) Symbol() string          { return c.symbol }
func (c *Coin) Address() common.Address { return c.addr }

func (c *Coin) TotalSupply() *big.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return new(big.Int).Set(c.totalSupply)
}

func (c *Coin) BalanceOf(account common.Address) *big.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if bal, ok := c.balances[account]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

func (c *Coin) Allowance(owner, spender common.Address) *big.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if allowed, ok := c.allowances[owner][spender]; ok {
		return new(big.Int).Set(allowed)
	}
	return new(big.Int)
}

// Approve sets spender's allowance over owner's balance, replacing any
// previous value.
func (c *Coin) Approve(owner, spender common.Address, amount *big.Int) error {
	if !validAmount(amount) {
		return ErrorInvalidAmount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.allowances[owner]; !ok {
		c.allowances[owner] = make(map[common.Address]*big.Int)
	}
	c.allowances[owner][spender] = new(big.Int).Set(amount)

	return nil
}

func (c *Coin) Transfer(from, to common.Address, amount *big.Int) error {
	if !validAmount(amount) {
		return ErrorInvalidAmount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.move(from, to, amount)
}

// TransferFrom moves amount from `from` to `to` on behalf of spender,
// debiting spender's allowance. Allowance and balance are checked before
// anything is written, so a failed call leaves the ledger untouched.
func (c *Coin) TransferFrom(spender, from, to common.Address, amount *big.Int) error {
	if !validAmount(amount) {
		return ErrorInvalidAmount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	allowed, ok := c.allowances[from][spender]
	if !ok || allowed.Cmp(amount) < 0 {
		return ErrorInsufficientAllowance
	}
	if err := c.move(from, to, amount); err != nil {
		return err
	}
	c.allowances[from][spender] = new(big.Int).Sub(allowed, amount)

	return nil
}

// move requires c.mu held.
func (c *Coin) move(from, to common.Address, amount *big.Int) error {
	fromBalance, ok := c.balances[from]
	if !ok || fromBalance.Cmp(amount) < 0 {
		return ErrorInsufficientBalance
	}
	if from == to {
		return nil
	}

	toBalance, ok := c.balances[to]
	if !ok {
		toBalance = new(big.Int)
	}

	c.balances[from] = new(big.Int).Sub(fromBalance, amount)
	c.balances[to] = new(big.Int).Add(toBalance, amount)

	return nil
}
