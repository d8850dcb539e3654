package service

import "github.com/prometheus/client_golang/prometheus"

var (
	ledgerMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fragment_ledger_mutations_total",
			Help: "Fragment ledger entries written, by transaction type",
		},
		[]string{"type"},
	)

	redemptionResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reward_redemptions_total",
			Help: "Reward redemption attempts, by result",
		},
		[]string{"result"},
	)

	lotteryDraws = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lottery_draws_total",
			Help: "Completed lottery draws, by rarity tier",
		},
		[]string{"tier"},
	)
)

func init() {
	prometheus.MustRegister(ledgerMutations, redemptionResults, lotteryDraws)
}

// resultLabel 业务错误按 Kind 归类，其余记为 error
func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	if kind := KindOf(err); kind != KindUnknown {
		return kind.String()
	}
	return "error"
}
