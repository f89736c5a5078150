package domain

// Company is a target employer the aggregator actively searches for.
type Company struct {
	ID        int64
	Name      string
	CareerURL string
	Active    bool
}
