package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	EntityOrganization = "organization"
	EntityEmployee     = "employee"
)

var (
	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staffdir",
		Name:      "import_rows_total",
		Help:      "Rows seen by bulk imports, by entity and outcome (accepted, skipped).",
	}, []string{"entity", "outcome"})

	ImportBatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staffdir",
		Name:      "import_batches_total",
		Help:      "Bulk import uploads, by entity and result (success, failure).",
	}, []string{"entity", "result"})
)

// ObserveImport records the outcome of one bulk import.
func ObserveImport(entity string, accepted, skipped int, err error) {
	if err != nil {
		ImportBatches.WithLabelValues(entity, "failure").Inc()
		return
	}
	ImportBatches.WithLabelValues(entity, "success").Inc()
	ImportRows.WithLabelValues(entity, "accepted").Add(float64(accepted))
	ImportRows.WithLabelValues(entity, "skipped").Add(float64(skipped))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
