package vault

import "go.uber.org/atomic"

// Metrics counts operations since process start. Failures covers every
// rejected operation regardless of kind.
type Metrics struct {
	Inits       atomic.Uint64
	Deposits    atomic.Uint64
	Withdrawals atomic.Uint64
	Queries     atomic.Uint64
	Failures    atomic.Uint64
}

type MetricsSnapshot struct {
	Inits       uint64 `json:"inits"`
	Deposits    uint64 `json:"deposits"`
	Withdrawals uint64 `json:"withdrawals"`
	Queries     uint64 `json:"queries"`
	Failures    uint64 `json:"failures"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Inits:       m.Inits.Load(),
		Deposits:    m.Deposits.Load(),
		Withdrawals: m.Withdrawals.Load(),
		Queries:     m.Queries.Load(),
		Failures:    m.Failures.Load(),
	}
}
