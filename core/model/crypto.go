package model

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// signedMessagePrefix is the eth_sign prefix for a 32-byte payload. Sellers
// sign the prefixed digest of the order message hash, so signatures produced
// by any standard wallet verify here unchanged.
const signedMessagePrefix = "\x19Ethereum Signed Message:\n32"

var ErrorMalformedSignature = errors.New("malformed signature")

func Keccak256(data ...[]byte) common.Hash {
	hasher := sha3.NewLegacyKeccak256()

	for _, d := range data {
		hasher.Write(d)
	}

	var hash common.Hash
	hasher.Sum(hash[:0])

	return hash
}

// MessageHash is the canonical preimage a seller authorizes: the keccak256
// of orderID || uint256(ticketID) || uint256(price), each field 32 bytes.
// Field order and widths are a wire contract shared with every signer. A nil
// price encodes as zero, like an empty uint256 slot.
func MessageHash(orderID OrderID, ticketID uint64, price *big.Int) common.Hash {
	if price == nil {
		price = new(big.Int)
	}
	return Keccak256(
		orderID[:],
		common.BigToHash(new(big.Int).SetUint64(ticketID)).Bytes(),
		common.BigToHash(price).Bytes(),
	)
}

func prefixedDigest(hash common.Hash) common.Hash {
	return Keccak256([]byte(signedMessagePrefix), hash.Bytes())
}

// Verifier recovers the account that signed a message hash. Settlement takes
// it as a capability so tests can swap in a deterministic signer.
type Verifier interface {
	RecoverSigner(hash common.Hash, sig []byte) (common.Address, error)
}

// EthVerifier recovers secp256k1 personal-message signatures, the scheme
// wallet signMessage calls produce.
type EthVerifier struct{}

func (EthVerifier) RecoverSigner(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrorMalformedSignature
	}

	// wallets encode the recovery id as 27/28
	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(prefixedDigest(hash).Bytes(), normalized)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// SignOrder authorizes the order's (orderID, ticketID, price) triple with
// the seller's key. This happens off-platform; no ledger state is touched.
func SignOrder(priv *ecdsa.PrivateKey, order *Order) ([]byte, error) {
	sig, err := crypto.Sign(prefixedDigest(order.Hash()).Bytes(), priv)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27

	return sig, nil
}
