package monitoring

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TicketsMinted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_minted_total",
			Help: "Tickets sold from primary supply",
		},
	)

	Trades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_trades_total",
			Help: "Secondary-sale settlement attempts by outcome",
		},
		[]string{"status"},
	)

	tradeVolume = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticket_trade_volume_wei_total",
			Help: "Settled secondary-sale volume in payment-token base units",
		},
	)
)

// AddTradeVolume records a settled sale price. Counters take float64, which
// is lossy above 2^53 wei; acceptable for a monitoring signal.
func AddTradeVolume(price *big.Int) {
	v, _ := new(big.Float).SetInt(price).Float64()
	tradeVolume.Add(v)
}
