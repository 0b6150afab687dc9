package config

import (
	"math/big"
	"os"
	"strconv"
)

// Config carries the deployment parameters. All of them are immutable once
// the contracts are constructed.
type Config struct {
	CoinName   string
	CoinSymbol string

	TicketName   string
	TicketSymbol string

	// BasePrice is the primary issuance price in token base units.
	BasePrice *big.Int

	MaxSupply uint64

	// RoyaltyNumerator over the fixed denominator 10000.
	RoyaltyNumerator uint32
}

func Load() *Config {
	return &Config{
		CoinName:   getEnv("COIN_NAME", "Simple Token"),
		CoinSymbol: getEnv("COIN_SYMBOL", "SIMP"),

		TicketName:   getEnv("TICKET_NAME", "Tickets"),
		TicketSymbol: getEnv("TICKET_SYMBOL", "TKT"),

		BasePrice: getEnvAsBigInt("TICKET_BASE_PRICE_WEI", "1000000000000000000"),
		MaxSupply: getEnvAsUint64("TICKET_MAX_SUPPLY", 1000),

		RoyaltyNumerator: uint32(getEnvAsUint64("ROYALTY_NUMERATOR", 1000)),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBigInt(key, defaultValue string) *big.Int {
	raw := getEnv(key, defaultValue)
	if parsed, ok := new(big.Int).SetString(raw, 10); ok && parsed.Sign() >= 0 {
		return parsed
	}
	parsed, _ := new(big.Int).SetString(defaultValue, 10)
	return parsed
}
