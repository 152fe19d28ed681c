package conflicts

import (
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/pkg/metrics"
)

func testutilCount(m *metrics.Metrics, resolution domain.Resolution) float64 {
	return testutil.ToFloat64(m.ConflictsResolved.WithLabelValues(string(resolution)))
}
