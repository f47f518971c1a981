package background

import (
	"github.com/bitmark-inc/immunity-api/metrics"
)

// Background is a struct to maintain common clients
// and functions for all background workers
type Background struct {
	Metrics *metrics.Metrics
}
