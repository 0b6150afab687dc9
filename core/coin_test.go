package core

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	deployerAcct = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	aliceAcct    = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	bobAcct      = common.HexToAddress("0x00000000000000000000000000000000000000a3")
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), WeiPerToken)
}

func TestCoinDeploymentMintsToDeployer(t *testing.T) {
	coin := NewCoin("Simple Token", "SIMP", deployerAcct)

	assert.Equal(t, "Simple Token", coin.Name())
	assert.Equal(t, "SIMP", coin.Symbol())
	assert.Equal(t, tokens(50000), coin.TotalSupply())
	assert.Equal(t, tokens(50000), coin.BalanceOf(deployerAcct))
	assert.Zero(t, coin.BalanceOf(aliceAcct).Sign())
}

func TestCoinTransfer(t *testing.T) {
	coin := NewCoin("Simple Token", "SIMP", deployerAcct)

	require.NoError(t, coin.Transfer(deployerAcct, aliceAcct, tokens(1000)))
	assert.Equal(t, tokens(1000), coin.BalanceOf(aliceAcct))
	assert.Equal(t, tokens(49000), coin.BalanceOf(deployerAcct))

	err := coin.Transfer(aliceAcct, bobAcct, tokens(1001))
	assert.ErrorIs(t, err, ErrorInsufficientBalance)
	assert.Equal(t, tokens(1000), coin.BalanceOf(aliceAcct))
	assert.Zero(t, coin.BalanceOf(bobAcct).Sign())
}

func TestCoinTransferRejectsBadAmount(t *testing.T) {
	coin := NewCoin("Simple Token", "SIMP", deployerAcct)

	assert.ErrorIs(t, coin.Transfer(deployerAcct, aliceAcct, nil), ErrorInvalidAmount)
	assert.ErrorIs(t, coin.Transfer(deployerAcct, aliceAcct, big.NewInt(-1)), ErrorInvalidAmount)
}

func TestCoinTransferFrom(t *testing.T) {
	coin := NewCoin("Simple Token", "SIMP", deployerAcct)
	spender := common.HexToAddress("0x00000000000000000000000000000000000000c0")

	// no allowance yet
	err := coin.TransferFrom(spender, deployerAcct, aliceAcct, tokens(1))
	assert.ErrorIs(t, err, ErrorInsufficientAllowance)

	require.NoError(t, coin.Approve(deployerAcct, spender, tokens(10)))
	assert.Equal(t, tokens(10), coin.Allowance(deployerAcct, spender))

	require.NoError(t, coin.TransferFrom(spender, deployerAcct, aliceAcct, tokens(4)))
	assert.Equal(t, tokens(4), coin.BalanceOf(aliceAcct))
	assert.Equal(t, tokens(6), coin.Allowance(deployerAcct, spender))

	// allowance exhausted before balance
	err = coin.TransferFrom(spender, deployerAcct, aliceAcct, tokens(7))
	assert.ErrorIs(t, err, ErrorInsufficientAllowance)
	assert.Equal(t, tokens(6), coin.Allowance(deployerAcct, spender))
}

func TestCoinTransferFromChecksBalance(t *testing.T) {
	coin := NewCoin("Simple Token", "SIMP", deployerAcct)
	spender := common.HexToAddress("0x00000000000000000000000000000000000000c0")

	require.NoError(t, coin.Transfer(deployerAcct, aliceAcct, tokens(2)))
	require.NoError(t, coin.Approve(aliceAcct, spender, tokens(5)))

	err := coin.TransferFrom(spender, aliceAcct, bobAcct, tokens(3))
	assert.ErrorIs(t, err, ErrorInsufficientBalance)
	// failed pull must not burn allowance
	assert.Equal(t, tokens(5), coin.Allowance(aliceAcct, spender))
	assert.Equal(t, tokens(2), coin.BalanceOf(aliceAcct))
}
