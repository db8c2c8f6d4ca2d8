package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var datasetRows = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "insightlens_dataset_rows",
		Help: "Number of rows currently held for a dataset.",
	},
	[]string{"dataset"},
)
