package sched

// Config is the engine-facing configuration, already resolved from flags,
// settings file and workload header.
type Config struct {
	Policy     Policy // SJF (by default)
	Preemptive bool   // only affects SJF, PH and PL
	Quantum    int    // round-robin slice, minimum effective value 1
	TickMS     int    // 0 (by default) runs as fast as possible
}

// DefaultConfig is shortest job first, non-preemptive, quantum 1.
func DefaultConfig() Config {
	return Config{
		Policy:  ShortestJobFirst,
		Quantum: 1,
	}
}

// normalize applies the sanity clamps and rejects what cannot be clamped.
func (c Config) normalize() (Config, error) {
	if _, err := c.Policy.ordering(); err != nil {
		return c, err
	}
	if c.Quantum < 1 {
		c.Quantum = 1
	}
	if c.TickMS < 0 {
		c.TickMS = 0
	}
	return c, nil
}
