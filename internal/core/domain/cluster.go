package domain

// ClusterAssignment holds one cluster label per dataset row, index-aligned
// with the dataset at the time it was computed.
type ClusterAssignment struct {
	K         int      `json:"k"`
	Labels    []int    `json:"labels"`
	Features  []string `json:"features"`
	Inertia   float64  `json:"inertia"`
	DatasetID string   `json:"dataset_id"`
	Revision  uint64   `json:"revision"`
}

// Stale reports whether ds changed since the assignment was computed.
func (a ClusterAssignment) Stale(ds *Dataset) bool {
	return ds == nil ||
		ds.ID() != a.DatasetID ||
		ds.Revision() != a.Revision ||
		ds.Len() != len(a.Labels)
}

// ClusterProfile summarizes the members of one cluster.
type ClusterProfile struct {
	Label int               `json:"label"`
	Count int               `json:"count"`
	Means map[string]Number `json:"means"`
}
