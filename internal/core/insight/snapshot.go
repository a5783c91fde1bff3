package insight

import (
	"campaign-insights/internal/core/domain"
)

// Snapshot is everything a report may read. Datasets are published
// read-only, so a snapshot can be used outside the owner's lock.
type Snapshot struct {
	Dataset  *domain.Dataset
	Segments []domain.ClusterProfile
	Email    domain.EmailReport
}

// HasData reports whether a non-empty dataset is loaded.
func (s Snapshot) HasData() bool { return s.Dataset.Len() > 0 }
