package configs

import "fmt"

// Segment holds the k-means defaults.
type Segment struct {
	// Clusters is the cluster count used when a request does not set k.
	Clusters int   `env:"CLUSTERS" envDefault:"5"`
	Seed     int64 `env:"SEED" envDefault:"42"`
}

func (c Segment) Validate() error {
	if c.Clusters < 2 {
		return fmt.Errorf("SEGMENT_CLUSTERS must be at least 2, got %d", c.Clusters)
	}
	return nil
}
