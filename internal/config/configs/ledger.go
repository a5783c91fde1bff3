package configs

// Ledger seeds the simulated engagement metrics.
type Ledger struct {
	Seed int64 `env:"SEED" envDefault:"42"`
}
